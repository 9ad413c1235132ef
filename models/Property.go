package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PropertyStatusDraft     = "DRAFT"
	PropertyStatusPending   = "PENDING"
	PropertyStatusApproved  = "APPROVED"
	PropertyStatusRejected  = "REJECTED"
	PropertyStatusPublished = "PUBLISHED"
	PropertyStatusRented    = "RENTED"
	PropertyStatusDeleted   = "DELETED"
)

type Property struct {
	gorm.Model
	LandlordID uint   `json:"landlordID" gorm:"not null;index"`
	Title      string `json:"title" gorm:"size:200"`
	Description string `json:"description" gorm:"type:text"`
	Type       string `json:"type" gorm:"type:varchar(20);index"` // HOUSE, APARTMENT, STUDIO, ROOM

	Surface           float64 `json:"surface"`
	NumberOfRooms     int     `json:"numberOfRooms"`
	NumberOfBedrooms  int     `json:"numberOfBedrooms"`
	NumberOfBathrooms int     `json:"numberOfBathrooms"`
	Floor             *int    `json:"floor"`
	Furnished         bool    `json:"furnished" gorm:"default:false"`

	MonthlyRent     float64 `json:"monthlyRent"`
	Charges         float64 `json:"charges" gorm:"default:0"`
	ChargesIncluded bool    `json:"chargesIncluded" gorm:"default:false"`
	Deposit         float64 `json:"deposit" gorm:"default:0"`
	AgencyFees      float64 `json:"agencyFees" gorm:"default:0"`

	Status      string     `json:"status" gorm:"type:varchar(20);default:'DRAFT';index"` // DRAFT, PENDING, APPROVED, REJECTED, PUBLISHED, RENTED, DELETED
	ViewCount   int        `json:"viewCount" gorm:"default:0"`
	PublishedAt *time.Time `json:"publishedAt"`

	// populated per requesting user, never stored
	IsFavorite bool `json:"isFavorite" gorm:"-"`

	Landlord  User      `json:"landlord,omitempty" gorm:"foreignKey:LandlordID;references:ID"`
	Address   *Address  `json:"address,omitempty" gorm:"foreignKey:PropertyID"`
	Photos    []Photo   `json:"photos,omitempty" gorm:"foreignKey:PropertyID"`
	Amenities []Amenity `json:"amenities,omitempty" gorm:"many2many:property_amenities;"`
}
