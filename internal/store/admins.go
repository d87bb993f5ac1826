package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/uhudbuilders/sitecms/internal/models"
)

// GetAdminByEmail looks up the admin account for a login attempt.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return s.getAdmin(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// GetAdmin looks up the admin account behind a session.
func (s *Store) GetAdmin(ctx context.Context, id string) (*models.AdminUser, error) {
	return s.getAdmin(ctx, "id = ?", id)
}

func (s *Store) getAdmin(ctx context.Context, query string, arg string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := s.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &u, nil
}

// SetAdminPassword creates the admin account or resets its password and name.
// The returned flag reports whether a new account was created.
func (s *Store) SetAdminPassword(ctx context.Context, email, name, passwordHash string) (*models.AdminUser, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, invalid("email is required")
	}
	if passwordHash == "" {
		return nil, false, invalid("password is required")
	}
	if strings.TrimSpace(name) == "" {
		name = "Admin User"
	}

	var (
		user    models.AdminUser
		created bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.AdminUser{ID: s.newID(), Email: email, Name: name, PasswordHash: passwordHash}
			created = true
			return tx.Create(&user).Error
		case err != nil:
			return err
		}
		user.Name = name
		user.PasswordHash = passwordHash
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to save admin: %w", err)
	}
	return &user, created, nil
}
