// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"bytes"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

func TestMigratePostgres_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the db itself; no expectations means every query fails

	err = MigratePostgres(db, nil)
	if err == nil {
		t.Fatal("expected error from MigratePostgres, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	for name, fn := range map[string]func(*sql.DB, *logger.Logger) error{
		"postgres": MigratePostgres,
		"sqlite":   MigrateSQLite,
	} {
		t.Run(name, func(t *testing.T) {
			err := fn(db, nil)
			if !errors.Is(err, ErrNilDB) {
				t.Fatalf("expected ErrNilDB, got %v", err)
			}
			if !strings.Contains(err.Error(), "db is nil") {
				t.Errorf("expected 'db is nil' error, got: %v", err)
			}
		})
	}
}

func TestMigrateSQLite_CreatesOutbox(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "outbox.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	if err := MigrateSQLite(db, nil); err != nil {
		t.Fatalf("MigrateSQLite: %v", err)
	}
	// applying twice is a no-op
	if err := MigrateSQLite(db, nil); err != nil {
		t.Fatalf("second MigrateSQLite: %v", err)
	}

	var name string
	row := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'outbox'`)
	if err := row.Scan(&name); err != nil {
		t.Fatalf("outbox table not found: %v", err)
	}
}

func TestMigrateSQLite_LogsThroughZerolog(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "outbox.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}

	if err := MigrateSQLite(db, log); err != nil {
		t.Fatalf("MigrateSQLite: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "00001_outbox.sql") {
		t.Errorf("expected applied migration in log output, got: %q", out)
	}
	if !strings.Contains(out, `"component":"migrations"`) {
		t.Errorf("expected migrations component field, got: %q", out)
	}
}
