// Package migrations embeds the goose migrations of the sync server
// (postgres) and of the terminal outbox (sqlite).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql
var postgresMigrations embed.FS

//go:embed sqlite/*.sql
var sqliteMigrations embed.FS

var ErrNilDB = errors.New("migration error: db is nil")

// goose keeps its base FS and dialect in package globals.
var mu sync.Mutex

// MigratePostgres applies the server schema. Goose output goes to log at
// debug level; a nil log discards it.
func MigratePostgres(db *sql.DB, log *logger.Logger) error {
	return migrate(db, postgresMigrations, "pgx", "postgres", log)
}

// MigrateSQLite applies the terminal outbox schema.
func MigrateSQLite(db *sql.DB, log *logger.Logger) error {
	return migrate(db, sqliteMigrations, "sqlite3", "sqlite", log)
}

func migrate(db *sql.DB, fsys embed.FS, dialect, dir string, log *logger.Logger) error {
	if db == nil {
		return ErrNilDB
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(newGooseLogger(log))

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
