package migration

import (
	"time"

	"gorm.io/gorm"
)

// Migration represents a single schema change
type Migration struct {
	Version   string // Unique version identifier (e.g., timestamp)
	Name      string // Human-readable name of the migration
	CreatedAt time.Time
	Up        func(*gorm.DB) error
	Down      func(*gorm.DB) error
}

// MigrationRecord represents a record of an applied migration
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey;size:32"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// Status pairs a known migration with whether it has been applied.
type Status struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt *time.Time
}
