package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReportReasonFraud         = "FRAUD"
	ReportReasonInappropriate = "INAPPROPRIATE"
	ReportReasonDuplicate     = "DUPLICATE"
	ReportReasonOther         = "OTHER"
)

const (
	ReportStatusPending   = "PENDING"
	ReportStatusReviewed  = "REVIEWED"
	ReportStatusResolved  = "RESOLVED"
	ReportStatusDismissed = "DISMISSED"
)

// Report targets exactly one of PropertyID or ReportedUserID.
type Report struct {
	gorm.Model
	ReporterID     uint   `json:"reporterID" gorm:"not null;index"`
	PropertyID     *uint  `json:"propertyID" gorm:"index"`
	ReportedUserID *uint  `json:"reportedUserID" gorm:"index"`
	Reason         string `json:"reason" gorm:"type:varchar(20)"` // FRAUD, INAPPROPRIATE, DUPLICATE, OTHER
	Description    string `json:"description" gorm:"type:text"`

	Status     string     `json:"status" gorm:"type:varchar(20);default:'PENDING';index"` // PENDING, REVIEWED, RESOLVED, DISMISSED
	ResolvedAt *time.Time `json:"resolvedAt"`

	Reporter     User      `json:"reporter,omitempty" gorm:"foreignKey:ReporterID;references:ID"`
	Property     *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;references:ID"`
	ReportedUser *User     `json:"reportedUser,omitempty" gorm:"foreignKey:ReportedUserID;references:ID"`
}
