// Package repo implements Postgres persistence for events, registrations,
// notifications and users. Referential integrity across the three record
// collections is owned by the callers, not by the schema.
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmailTaken           = errors.New("email already in use")
)

// DB bundles the pooled connection and the migration runner shared by the
// per-entity repositories.
type DB struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func New(db *dbpg.DB, log *zerolog.Logger) (*DB, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &DB{db: db, log: log}, nil
}

func (d *DB) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := d.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	d.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}
