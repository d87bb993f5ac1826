package models

import "time"

// DefaultGalleryCategory is applied when an item is created without one.
const DefaultGalleryCategory = "General"

// GalleryItem is a captioned image shown on the gallery page.
type GalleryItem struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	URL       string    `json:"url" gorm:"type:text;not null" validate:"required"`
	Caption   string    `json:"caption" gorm:"type:text"`
	Category  string    `json:"category" gorm:"size:100"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (GalleryItem) TableName() string {
	return "gallery_items"
}
