// Package store persists site content through GORM. A Store is opened once
// per process and shared by all requests; every write that touches more than
// one row runs in a single transaction.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config selects the database driver and connection string.
type Config struct {
	Driver string // sqlite, postgres or mysql
	DSN    string
	Debug  bool // log every SQL statement
}

// Store is the content repository.
type Store struct {
	db    *gorm.DB
	now   func() time.Time
	newID func() string
}

// Open connects to the configured database. The connection is not pinged so a
// server can start while the database is still down; see Ping.
func Open(cfg Config) (*Store, error) {
	dialector, err := dialectorFor(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(level),
		NowFunc:              func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}
	return New(db), nil
}

// New wraps an existing connection.
func New(db *gorm.DB) *Store {
	return &Store{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set in environment or .env file")
	}
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		return sqlite.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DB exposes the underlying connection for migrations and schema tooling.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks that a live connection is available.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
