package models

import "gorm.io/gorm"

const (
	AmenityCategoryComfort      = "COMFORT"
	AmenityCategorySecurity     = "SECURITY"
	AmenityCategoryConnectivity = "CONNECTIVITY"
	AmenityCategoryExterior     = "EXTERIOR"
)

type Amenity struct {
	gorm.Model
	Name     string `json:"name" gorm:"size:100;uniqueIndex"`
	Icon     string `json:"icon" gorm:"size:50"`
	Category string `json:"category" gorm:"type:varchar(20);index"` // COMFORT, SECURITY, CONNECTIVITY, EXTERIOR

	Properties []Property `json:"-" gorm:"many2many:property_amenities;"`
}
