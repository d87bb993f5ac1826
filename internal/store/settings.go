package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/uhudbuilders/sitecms/internal/models"
)

// GetSettings returns the stored settings document, or an empty one.
func (s *Store) GetSettings(ctx context.Context) (models.SettingsDocument, error) {
	var row models.SiteSettings
	err := s.db.WithContext(ctx).Where("id = ?", models.SettingsID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SettingsDocument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if row.Settings == nil {
		return models.SettingsDocument{}, nil
	}
	return row.Settings, nil
}

// PutSettings replaces the settings document, creating the row on first use.
func (s *Store) PutSettings(ctx context.Context, doc models.SettingsDocument) (models.SettingsDocument, error) {
	if doc == nil {
		return nil, invalid("settings must be a JSON object")
	}
	row := models.SiteSettings{ID: models.SettingsID, Settings: doc, UpdatedAt: s.now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return doc, nil
}
