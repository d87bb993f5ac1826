package models

// Unit is a floor-plan variant that exists only inside its project.
type Unit struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	ProjectID      string     `json:"projectId" gorm:"size:36;not null;index"`
	Name           string     `json:"name" gorm:"size:100;not null" validate:"required"`
	Size           string     `json:"size" gorm:"size:100;not null" validate:"required"`
	Bedrooms       int        `json:"bedrooms" gorm:"not null" validate:"gte=0"`
	Bathrooms      int        `json:"bathrooms" gorm:"not null" validate:"gte=0"`
	Balconies      int        `json:"balconies" gorm:"not null" validate:"gte=0"`
	Features       StringList `json:"features" gorm:"type:text"`
	FloorPlanImage *string    `json:"floorPlanImage,omitempty" gorm:"type:text"`
	Position       int        `json:"-" gorm:"not null;default:0"`
}

func (Unit) TableName() string {
	return "project_units"
}
