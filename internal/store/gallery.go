package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/uhudbuilders/sitecms/internal/models"
)

// GalleryInput is a new gallery entry.
type GalleryInput struct {
	URL      string `json:"url"`
	Caption  string `json:"caption"`
	Category string `json:"category"`
}

// ListGallery returns gallery items, newest first.
func (s *Store) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	items := make([]models.GalleryItem, 0)
	err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery: %w", err)
	}
	return items, nil
}

// CreateGalleryItem stores a new gallery entry.
func (s *Store) CreateGalleryItem(ctx context.Context, in GalleryInput) (*models.GalleryItem, error) {
	item := models.GalleryItem{
		ID:        s.newID(),
		URL:       strings.TrimSpace(in.URL),
		Caption:   strings.TrimSpace(in.Caption),
		Category:  strings.TrimSpace(in.Category),
		CreatedAt: s.now(),
	}
	if item.Category == "" {
		item.Category = models.DefaultGalleryCategory
	}
	if err := validateStruct(&item); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create gallery item: %w", err)
	}
	return &item, nil
}

// DeleteGalleryItem removes a gallery entry.
func (s *Store) DeleteGalleryItem(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GalleryItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete gallery item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
