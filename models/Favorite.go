package models

import "gorm.io/gorm"

type Favorite struct {
	gorm.Model
	UserID     uint `json:"userID" gorm:"not null;uniqueIndex:idx_favorites_user_property"`
	PropertyID uint `json:"propertyID" gorm:"not null;uniqueIndex:idx_favorites_user_property"`

	User     User     `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;references:ID"`
}
