package migration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// ErrNothingToRevert is returned by Down when no migration has been applied.
var ErrNothingToRevert = errors.New("no migrations to revert")

// Migrator handles the execution of migrations
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

// NewMigrator creates a Migrator for the given migrations, kept in version order.
func NewMigrator(db *gorm.DB, migrations ...*Migration) *Migrator {
	m := &Migrator{db: db}
	for _, mr := range migrations {
		m.Register(mr)
	}
	return m
}

// Register adds a migration to the migrator
func (m *Migrator) Register(mr *Migration) {
	m.migrations = append(m.migrations, mr)
	sort.SliceStable(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

// Migrations returns the registered migrations in version order.
func (m *Migrator) Migrations() []*Migration {
	out := make([]*Migration, len(m.migrations))
	copy(out, m.migrations)
	return out
}

// ensureVersionTable creates the version tracking table if it doesn't exist
func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	return m.db.WithContext(ctx).AutoMigrate(&MigrationRecord{})
}

// GetAppliedVersions returns a map of applied migration versions
func (m *Migrator) GetAppliedVersions(ctx context.Context) (map[string]MigrationRecord, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migration table: %w", err)
	}

	var records []MigrationRecord
	if err := m.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	versions := make(map[string]MigrationRecord, len(records))
	for _, record := range records {
		versions[record.Version] = record
	}
	return versions, nil
}

// Pending returns the migrations that have not been applied yet.
func (m *Migrator) Pending(ctx context.Context) ([]*Migration, error) {
	applied, err := m.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var pending []*Migration
	for _, mr := range m.migrations {
		if _, ok := applied[mr.Version]; !ok {
			pending = append(pending, mr)
		}
	}
	return pending, nil
}

// Up applies all pending migrations, each in its own transaction, and
// returns the ones it applied.
func (m *Migrator) Up(ctx context.Context) ([]*Migration, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}

	var done []*Migration
	for _, mr := range pending {
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mr.Up(tx); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", mr.Name, err)
			}
			record := MigrationRecord{
				Version:   mr.Version,
				Name:      mr.Name,
				AppliedAt: time.Now().UTC(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", mr.Name, err)
			}
			return nil
		})
		if err != nil {
			return done, err
		}
		done = append(done, mr)
	}
	return done, nil
}

// Down rolls back the last applied migration
func (m *Migrator) Down(ctx context.Context) (*Migration, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migration table: %w", err)
	}

	var lastRecord MigrationRecord
	err := m.db.WithContext(ctx).Order("applied_at DESC").Order("version DESC").First(&lastRecord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNothingToRevert
	}
	if err != nil {
		return nil, err
	}

	var target *Migration
	for _, mr := range m.migrations {
		if mr.Version == lastRecord.Version {
			target = mr
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("migration for version %s not found", lastRecord.Version)
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return fmt.Errorf("failed to revert migration %s: %w", target.Name, err)
		}
		if err := tx.Delete(&lastRecord).Error; err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// Status reports every registered migration and whether it is applied.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	applied, err := m.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(m.migrations))
	for _, mr := range m.migrations {
		s := Status{Version: mr.Version, Name: mr.Name}
		if rec, ok := applied[mr.Version]; ok {
			s.Applied = true
			at := rec.AppliedAt
			s.AppliedAt = &at
		}
		out = append(out, s)
	}
	return out, nil
}

// History returns applied migrations, most recent first.
func (m *Migrator) History(ctx context.Context) ([]MigrationRecord, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migration table: %w", err)
	}

	var records []MigrationRecord
	if err := m.db.WithContext(ctx).Order("applied_at DESC").Order("version DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get migration history: %w", err)
	}
	return records, nil
}
