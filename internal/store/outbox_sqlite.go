// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	appendOutboxQuery = `INSERT INTO outbox (id, kind, payload, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING;`

	peekOutboxQuery = `SELECT id, kind, payload, created_at FROM outbox ORDER BY seq LIMIT ?;`

	countOutboxQuery = `SELECT COUNT(*) FROM outbox;`
)

// sqliteOutbox is the durable [OutboxStorage] of a terminal. Entries are
// kept in insertion order and survive process restarts.
type sqliteOutbox struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteOutbox opens the outbox database at path.
func NewSQLiteOutbox(ctx context.Context, path string, log *logger.Logger) (OutboxStorage, error) {
	db, err := NewConnectSQLite(ctx, path, log)
	if err != nil {
		return nil, err
	}
	return &sqliteOutbox{DB: db, logger: log}, nil
}

// Append stores entries atomically. Re-appending a known id is a no-op.
func (o *sqliteOutbox) Append(ctx context.Context, entries ...models.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := o.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, entry := range entries {
		payload, payloadErr := entry.Payload()
		if payloadErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidOutboxEntry, entry.ID, payloadErr)
		}

		if _, err = tx.ExecContext(ctx, appendOutboxQuery, entry.ID, string(entry.Kind), payload, entry.CreatedAt.UTC()); err != nil {
			o.logger.Err(err).
				Str("func", "sqliteOutbox.Append").
				Str("outbox_id", entry.ID).
				Msg("failed to append outbox entry")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// Peek returns up to limit oldest entries without removing them.
func (o *sqliteOutbox) Peek(ctx context.Context, limit int) ([]models.OutboxEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := o.DB.QueryContext(ctx, peekOutboxQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.OutboxEntry, 0)
	for rows.Next() {
		var (
			entry     models.OutboxEntry
			kind      string
			payload   []byte
			createdAt time.Time
		)
		if err = rows.Scan(&entry.ID, &kind, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		entry.Kind = models.OutboxKind(kind)
		entry.CreatedAt = createdAt
		// undecodable rows come back without payload so the caller can drop them
		if err = entry.SetPayload(payload); err != nil {
			o.logger.Err(err).
				Str("func", "sqliteOutbox.Peek").
				Str("outbox_id", entry.ID).
				Msg("undecodable outbox entry")
			entry.Sale, entry.Movement, entry.Event = nil, nil, nil
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return entries, nil
}

// Remove deletes exactly the given ids. Unknown ids are ignored.
func (o *sqliteOutbox) Remove(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sq.Delete("outbox").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = o.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (o *sqliteOutbox) Len(ctx context.Context) (int, error) {
	var n int
	if err := o.DB.QueryRowContext(ctx, countOutboxQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func (o *sqliteOutbox) Close() error {
	return o.DB.Close()
}
