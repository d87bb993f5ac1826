package models

import "time"

// ProjectStatus is the construction stage shown on the public site.
type ProjectStatus string

const (
	StatusUpcoming  ProjectStatus = "Upcoming"
	StatusOngoing   ProjectStatus = "Ongoing"
	StatusCompleted ProjectStatus = "Completed"
)

// Valid reports whether s is one of the known stages.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// Project represents a real-estate development listed on the site. It owns
// its units: they are written, replaced and deleted together with it.
type Project struct {
	ID                string        `json:"id" gorm:"primaryKey;size:36"`
	Title             string        `json:"title" gorm:"size:255;not null" validate:"required"`
	Location          string        `json:"location" gorm:"size:255;not null" validate:"required"`
	Price             *string       `json:"price,omitempty" gorm:"size:255"`
	Description       string        `json:"description" gorm:"type:text;not null" validate:"required"`
	Status            ProjectStatus `json:"status" gorm:"size:50;not null" validate:"required,oneof=Upcoming Ongoing Completed"`
	ImageURL          string        `json:"imageUrl" gorm:"type:text;not null" validate:"required"`
	LogoURL           *string       `json:"logoUrl,omitempty" gorm:"type:text"`
	BuildingAmenities StringList    `json:"buildingAmenities" gorm:"type:text"`
	Order             int64         `json:"order" gorm:"column:sort_order;not null;default:0;index"`
	Units             []Unit        `json:"units" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" validate:"dive"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}
