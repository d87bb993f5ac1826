package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/uhudbuilders/sitecms/internal/models"
)

// ContactInput is a contact-form submission.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ListMessages returns contact messages, newest first.
func (s *Store) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	msgs := make([]models.ContactMessage, 0)
	err := s.db.WithContext(ctx).Order("date DESC").Order("id DESC").Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// CreateMessage stores a submission stamped with the current time.
func (s *Store) CreateMessage(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		ID:      s.newID(),
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Message: strings.TrimSpace(in.Message),
		Date:    s.now(),
	}
	if err := validateStruct(&msg); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &msg, nil
}

// DeleteMessage removes a contact message.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactMessage{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
