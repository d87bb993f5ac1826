package migration

import (
	"gorm.io/gorm"

	"github.com/uhudbuilders/sitecms/internal/models"
)

// Schema returns the migrations that build the sitecms schema.
func Schema() []*Migration {
	return []*Migration{
		{
			Version: "20250110000001",
			Name:    "create_content_tables",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(
					&models.Project{},
					&models.Unit{},
					&models.GalleryItem{},
					&models.ContactMessage{},
					&models.SiteSettings{},
				)
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(
					&models.Unit{},
					&models.Project{},
					&models.GalleryItem{},
					&models.ContactMessage{},
					&models.SiteSettings{},
				)
			},
		},
		{
			Version: "20250110000002",
			Name:    "create_admin_users",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.AdminUser{})
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(&models.AdminUser{})
			},
		},
	}
}
