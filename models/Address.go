package models

import "gorm.io/gorm"

type Address struct {
	gorm.Model
	PropertyID    uint     `json:"propertyID" gorm:"not null;uniqueIndex"`
	StreetAddress string   `json:"streetAddress" gorm:"size:255"`
	City          string   `json:"city" gorm:"size:100;index"`
	PostalCode    string   `json:"postalCode" gorm:"size:20"`
	District      string   `json:"district" gorm:"size:100"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// FullAddress joins the non-empty address parts.
func (a *Address) FullAddress() string {
	parts := []string{a.StreetAddress, a.District, a.City, a.PostalCode}
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
