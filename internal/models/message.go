package models

import "time"

// ContactMessage is a contact-form submission. Read is stored but nothing
// sets it yet.
type ContactMessage struct {
	ID      string    `json:"id" gorm:"primaryKey;size:36"`
	Name    string    `json:"name" gorm:"size:255;not null" validate:"required"`
	Email   string    `json:"email" gorm:"size:255;not null" validate:"required,email"`
	Phone   string    `json:"phone" gorm:"size:50"`
	Message string    `json:"message" gorm:"type:text;not null" validate:"required"`
	Date    time.Time `json:"date" gorm:"index"`
	Read    bool      `json:"read" gorm:"not null;default:false"`
}

func (ContactMessage) TableName() string {
	return "messages"
}
