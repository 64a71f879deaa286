// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
)

// ingestRepository is the PostgreSQL-backed implementation of
// [IngestRepository].
//
// Every push batch is stored inside one transaction. Duplicates are detected
// by the unique constraints on sales.ticket_number,
// stock_movements.idempotency_key and terminal_events.event_id through
// ON CONFLICT DO NOTHING, so resubmitting a batch never double counts.
//
// Stock movements tied to a ticket that another terminal already stored are
// skipped: the server never recorded that sale, so its stock must not move.
type ingestRepository struct {
	*DB
	logger *logger.Logger
}

// NewIngestRepository constructs an [IngestRepository] backed by db.
func NewIngestRepository(db *DB, logger *logger.Logger) IngestRepository {
	return &ingestRepository{
		DB:     db,
		logger: logger,
	}
}

// Ingest stores the batch. Any failure rolls the whole batch back.
//
// A unique violation surfacing despite ON CONFLICT aborts the postgres
// transaction, so it is reported as [ErrConcurrentIngest] and the terminal
// resubmits the batch.
func (r *ingestRepository) Ingest(ctx context.Context, req models.PushRequest) (models.IngestResult, error) {
	log := logger.FromContext(ctx)
	result := models.IngestResult{DuplicateTickets: make([]string, 0)}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "ingestRepository.Ingest").
			Str("terminal_id", req.TerminalID).
			Msg("failed to begin transaction")
		return models.IngestResult{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, r.classify(err))
	}
	defer tx.Rollback()

	foreignTickets := make(map[string]struct{})
	for idx, sale := range req.Sales {
		inserted, saleErr := r.insertSale(ctx, tx, sale)
		if saleErr != nil {
			log.Err(saleErr).
				Str("func", "ingestRepository.Ingest").
				Int("iteration", idx+1).
				Str("ticket_number", sale.TicketNumber).
				Msg("failed to insert sale")
			return models.IngestResult{}, r.wrapIngestError(saleErr)
		}
		if !inserted {
			owner, ownerErr := r.saleOwner(ctx, tx, sale.TicketNumber)
			if ownerErr != nil {
				log.Err(ownerErr).
					Str("func", "ingestRepository.Ingest").
					Str("ticket_number", sale.TicketNumber).
					Msg("failed to look up duplicate ticket owner")
				return models.IngestResult{}, r.wrapIngestError(ownerErr)
			}
			if owner != req.TerminalID {
				foreignTickets[sale.TicketNumber] = struct{}{}
			}

			log.Info().
				Str("func", "ingestRepository.Ingest").
				Str("terminal_id", req.TerminalID).
				Str("owner_terminal_id", owner).
				Str("ticket_number", sale.TicketNumber).
				Msg("duplicate ticket skipped")
			result.DuplicateTickets = append(result.DuplicateTickets, sale.TicketNumber)
			continue
		}
		result.SalesInserted++
	}

	for idx, movement := range req.StockMovements {
		if _, foreign := foreignTickets[movement.TicketNumber]; foreign {
			log.Info().
				Str("func", "ingestRepository.Ingest").
				Str("idempotency_key", movement.IdempotencyKey).
				Str("ticket_number", movement.TicketNumber).
				Msg("movement of a foreign duplicate ticket skipped")
			result.DuplicateOther++
			continue
		}

		inserted, movementErr := r.insertMovement(ctx, tx, req.TerminalID, movement)
		if movementErr != nil {
			log.Err(movementErr).
				Str("func", "ingestRepository.Ingest").
				Int("iteration", idx+1).
				Str("idempotency_key", movement.IdempotencyKey).
				Msg("failed to insert stock movement")
			return models.IngestResult{}, r.wrapIngestError(movementErr)
		}
		if !inserted {
			result.DuplicateOther++
			continue
		}
		result.MovementsInserted++
	}

	for idx, event := range req.Events {
		inserted, eventErr := r.insertEvent(ctx, tx, req.TerminalID, event)
		if eventErr != nil {
			log.Err(eventErr).
				Str("func", "ingestRepository.Ingest").
				Int("iteration", idx+1).
				Str("event_id", event.EventID).
				Msg("failed to insert terminal event")
			return models.IngestResult{}, r.wrapIngestError(eventErr)
		}
		if !inserted {
			result.DuplicateOther++
			continue
		}
		result.EventsInserted++
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "ingestRepository.Ingest").
			Str("terminal_id", req.TerminalID).
			Msg("failed to commit transaction")
		return models.IngestResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, r.wrapIngestError(commitErr))
	}

	log.Info().
		Str("func", "ingestRepository.Ingest").
		Str("terminal_id", req.TerminalID).
		Int("processed", result.Processed()).
		Int("duplicates", result.Duplicates()).
		Msg("push batch stored")

	return result, nil
}

// insertSale stores the sale header and its lines. It reports false when the
// ticket number is already stored.
func (r *ingestRepository) insertSale(ctx context.Context, tx *sql.Tx, sale models.Sale) (bool, error) {
	var saleID int64
	err := tx.QueryRowContext(ctx, insertSaleQuery,
		sale.TicketNumber,
		sale.TerminalID,
		sale.Cashier,
		sale.Total,
		sale.Discount,
		sale.PaymentMethod,
		sale.SoldAt,
	).Scan(&saleID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(sale.Lines) == 0 {
		return true, nil
	}

	query, args, err := buildSaleLinesInsert(saleID, sale.Lines)
	if err != nil {
		return false, err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return true, nil
}

// saleOwner returns the terminal that stored ticketNumber.
func (r *ingestRepository) saleOwner(ctx context.Context, tx *sql.Tx, ticketNumber string) (string, error) {
	var owner string
	if err := tx.QueryRowContext(ctx, saleOwnerQuery, ticketNumber).Scan(&owner); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return owner, nil
}

// insertMovement stores a stock movement and applies it to the product's
// stock. It reports false when the idempotency key is already stored.
func (r *ingestRepository) insertMovement(ctx context.Context, tx *sql.Tx, terminalID string, movement models.StockMovement) (bool, error) {
	var movementID int64
	err := tx.QueryRowContext(ctx, insertMovementQuery,
		movement.IdempotencyKey,
		terminalID,
		movement.ProductID,
		movement.Quantity,
		movement.Kind,
		movement.Reason,
		movement.TicketNumber,
		movement.OccurredAt,
	).Scan(&movementID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, applyMovementQuery, movement.ProductID, movement.Quantity); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return true, nil
}

func (r *ingestRepository) insertEvent(ctx context.Context, tx *sql.Tx, terminalID string, event models.TerminalEvent) (bool, error) {
	var eventID int64
	err := tx.QueryRowContext(ctx, insertEventQuery,
		event.EventID,
		terminalID,
		event.Kind,
		event.Cashier,
		event.Detail,
		event.OccurredAt,
	).Scan(&eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return true, nil
}

func (r *ingestRepository) wrapIngestError(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrConcurrentIngest, err)
	}
	return r.classify(err)
}
