package models

import "gorm.io/gorm"

type Photo struct {
	gorm.Model
	PropertyID uint   `json:"propertyID" gorm:"not null;index"`
	URL        string `json:"url" gorm:"size:512"`
	IsPrimary  bool   `json:"isPrimary" gorm:"default:false"`
	SortOrder  int    `json:"order" gorm:"default:0"`
}
