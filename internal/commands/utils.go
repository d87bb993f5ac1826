// Package commands holds the sitecms command line: the HTTP server and the
// maintenance tasks run against the same database.
package commands

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/uhudbuilders/sitecms/internal/config"
	"github.com/uhudbuilders/sitecms/internal/store"
	"github.com/uhudbuilders/sitecms/migration"
)

// getStore opens the configured database. An empty DATABASE_URL is rejected
// by store.Open.
func getStore(cfg *config.Config, debug bool) (*store.Store, error) {
	return store.Open(store.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.URL,
		Debug:  debug || cfg.Database.Debug,
	})
}

// openStore loads the configuration and opens the database in one step.
func openStore(debug bool) (*config.Config, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	st, err := getStore(cfg, debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

func getMigrator(st *store.Store) *migration.Migrator {
	return migration.NewMigrator(st.DB(), migration.Schema()...)
}

// newLogger writes human readable logs to stderr at the named level. An
// unknown level falls back to info.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
