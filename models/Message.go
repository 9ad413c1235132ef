package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	PropertyID  uint   `json:"propertyID" gorm:"not null;index"`
	SenderID    uint   `json:"senderID" gorm:"not null;index"`
	RecipientID uint   `json:"recipientID" gorm:"not null;index"`
	Subject     string `json:"subject" gorm:"size:200"`
	Content     string `json:"content" gorm:"type:text"`

	IsRead bool       `json:"isRead" gorm:"default:false;index"`
	ReadAt *time.Time `json:"readAt"`

	Sender    User     `json:"sender,omitempty" gorm:"foreignKey:SenderID;references:ID"`
	Recipient User     `json:"recipient,omitempty" gorm:"foreignKey:RecipientID;references:ID"`
	Property  Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;references:ID"`
}
