package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleVisitor  = "VISITOR"
	RoleTenant   = "TENANT"
	RoleLandlord = "LANDLORD"
	RoleAdmin    = "ADMIN"
)

const (
	UserStatusActive    = "ACTIVE"
	UserStatusSuspended = "SUSPENDED"
	UserStatusDeleted   = "DELETED"
)

type User struct {
	gorm.Model
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email" gorm:"uniqueIndex;size:256"`
	Phone         string     `json:"phone" gorm:"size:20"`
	Password      string     `json:"-"`
	Role          string     `json:"role" gorm:"type:varchar(20);default:'TENANT';index"`   // VISITOR, TENANT, LANDLORD, ADMIN
	Status        string     `json:"status" gorm:"type:varchar(20);default:'ACTIVE';index"` // ACTIVE, SUSPENDED, DELETED
	EmailVerified bool       `json:"emailVerified" gorm:"default:false"`
	LastLoginAt   *time.Time `json:"lastLoginAt"`

	Properties []Property `json:"properties,omitempty" gorm:"foreignKey:LandlordID;references:ID"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// MaskedPhone hides all but the last four digits.
func (u *User) MaskedPhone() string {
	if len(u.Phone) < 4 {
		return u.Phone
	}
	return "XX XX XX " + u.Phone[len(u.Phone)-4:]
}
