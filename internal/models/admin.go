package models

import "time"

// AdminUser is the single account allowed into the admin panel.
type AdminUser struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
