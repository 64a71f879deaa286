// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
)

// terminalRepository is the PostgreSQL-backed implementation of
// [TerminalRepository]. It reads and updates the "terminals" table.
type terminalRepository struct {
	*DB
	logger *logger.Logger
}

// NewTerminalRepository constructs a [TerminalRepository] backed by db.
func NewTerminalRepository(db *DB, logger *logger.Logger) TerminalRepository {
	logger.Debug().Msg("creating terminal repository")
	return &terminalRepository{
		DB:     db,
		logger: logger,
	}
}

// FindTerminal returns the registration of terminalID or
// [ErrTerminalNotFound].
func (r *terminalRepository) FindTerminal(ctx context.Context, terminalID string) (models.Terminal, error) {
	log := logger.FromContext(ctx)

	var (
		terminal   models.Terminal
		lastAuthAt sql.NullTime
		lastSeenAt sql.NullTime
	)

	err := r.DB.QueryRowContext(ctx, findTerminalQuery, terminalID).Scan(
		&terminal.TerminalID,
		&terminal.Name,
		&terminal.SharedKeyHash,
		&terminal.Active,
		&terminal.Version,
		&terminal.LastIP,
		&lastAuthAt,
		&lastSeenAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", "terminalRepository.FindTerminal").
			Str("terminal_id", terminalID).
			Msg("terminal is not registered")
		return models.Terminal{}, ErrTerminalNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "terminalRepository.FindTerminal").
			Str("terminal_id", terminalID).
			Msg("failed to find terminal")
		return models.Terminal{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}

	if lastAuthAt.Valid {
		terminal.LastAuthAt = &lastAuthAt.Time
	}
	if lastSeenAt.Valid {
		terminal.LastSeenAt = &lastSeenAt.Time
	}

	return terminal, nil
}

// TouchAuth records the version and address a terminal authenticated with.
func (r *terminalRepository) TouchAuth(ctx context.Context, terminalID, version, ip string, at time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, touchTerminalAuthQuery, terminalID, version, ip, at)
	if err != nil {
		log.Err(err).
			Str("func", "terminalRepository.TouchAuth").
			Str("terminal_id", terminalID).
			Msg("failed to record terminal authentication")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}

	return expectOneRow(res, terminalID)
}

// SaveHeartbeat stores the latest liveness report of a terminal.
func (r *terminalRepository) SaveHeartbeat(ctx context.Context, heartbeat models.HeartbeatRequest, at time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, saveHeartbeatQuery,
		heartbeat.TerminalID,
		at,
		heartbeat.CurrentUser,
		heartbeat.PrinterOnline,
		heartbeat.ScannerOnline,
		heartbeat.CashDrawerOnline,
		heartbeat.DailySalesCount,
		heartbeat.DailySalesTotal,
		heartbeat.PendingOutbox,
	)
	if err != nil {
		log.Err(err).
			Str("func", "terminalRepository.SaveHeartbeat").
			Str("terminal_id", heartbeat.TerminalID).
			Msg("failed to save heartbeat")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}

	return expectOneRow(res, heartbeat.TerminalID)
}

func expectOneRow(res sql.Result, terminalID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrTerminalNotFound, terminalID)
	}
	return nil
}
