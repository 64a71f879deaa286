// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
)

// catalogRepository is the PostgreSQL-backed implementation of
// [CatalogRepository].
type catalogRepository struct {
	*DB
	logger *logger.Logger
}

// NewCatalogRepository constructs a [CatalogRepository] backed by db.
func NewCatalogRepository(db *DB, logger *logger.Logger) CatalogRepository {
	return &catalogRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// GetChanges reads every requested entity type with its own watermark.
// Unknown types were already dropped by req.Types().
func (c *catalogRepository) GetChanges(ctx context.Context, req models.ChangeRequest, limit int) (models.ChangeBatch, error) {
	log := logger.FromContext(ctx)

	batch := models.ChangeBatch{
		Products:   make([]models.Product, 0),
		Services:   make([]models.Service, 0),
		Promotions: make([]models.Promotion, 0),
		Configs:    make([]models.ConfigEntry, 0),
	}

	for _, entityType := range req.Types() {
		var (
			more bool
			err  error
		)
		since := req.WatermarkFor(entityType)

		switch entityType {
		case models.EntityProducts:
			batch.Products, more, err = readFeed[models.Product, int64](ctx, c.DB, feedTables[entityType], since, limit, scanProduct)
		case models.EntityServices:
			batch.Services, more, err = readFeed[models.Service, int64](ctx, c.DB, feedTables[entityType], since, limit, scanService)
		case models.EntityPromotions:
			batch.Promotions, more, err = readFeed[models.Promotion, int64](ctx, c.DB, feedTables[entityType], since, limit, scanPromotion)
		case models.EntityConfigs:
			batch.Configs, more, err = readFeed[models.ConfigEntry, string](ctx, c.DB, feedTables[entityType], since, limit, scanConfig)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
		}
		if err != nil {
			log.Err(err).
				Str("func", "catalogRepository.GetChanges").
				Str("entity_type", string(entityType)).
				Time("since", since).
				Msg("failed to read change feed")
			return models.ChangeBatch{}, err
		}

		batch.HasMore = batch.HasMore || more
	}

	log.Debug().
		Str("func", "catalogRepository.GetChanges").
		Str("terminal_id", req.TerminalID).
		Int("rows", batch.Len()).
		Bool("has_more", batch.HasMore).
		Msg("change feed read")

	return batch, nil
}

// readFeed reads one page of a feed table. When the page is full the rows
// sharing the last row's timestamp are appended and more is reported.
func readFeed[T models.CatalogEntry[K], K comparable](
	ctx context.Context,
	db *DB,
	table feedTable,
	since time.Time,
	limit int,
	scan func(rowScanner) (T, error),
) ([]T, bool, error) {
	query, args, err := buildChangesQuery(table, since, limit)
	if err != nil {
		return nil, false, err
	}

	page, err := queryEntries(ctx, db, query, args, scan)
	if err != nil {
		return nil, false, err
	}

	if limit <= 0 || len(page) < limit {
		return page, false, nil
	}

	last := page[len(page)-1]
	query, args, err = buildTieQuery(table, last.Updated(), last.EntryKey())
	if err != nil {
		return nil, false, err
	}

	ties, err := queryEntries(ctx, db, query, args, scan)
	if err != nil {
		return nil, false, err
	}

	return append(page, ties...), true, nil
}

func queryEntries[T any](ctx context.Context, db *DB, query string, args []any, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, db.classify(err))
	}
	defer rows.Close()

	entries := make([]T, 0)
	for rows.Next() {
		entry, scanErr := scan(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, db.classify(err))
	}

	return entries, nil
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Code, &p.Barcode, &p.Name, &p.Price, &p.Stock, &p.Deleted, &p.LastUpdated)
	return p, err
}

func scanService(row rowScanner) (models.Service, error) {
	var s models.Service
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Price, &s.Deleted, &s.LastUpdated)
	return s, err
}

func scanPromotion(row rowScanner) (models.Promotion, error) {
	var (
		p         models.Promotion
		productID sql.NullInt64
		startsAt  sql.NullTime
		endsAt    sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Name, &productID, &p.DiscountPercent, &startsAt, &endsAt, &p.Deleted, &p.LastUpdated)
	if err != nil {
		return p, err
	}

	if productID.Valid {
		p.ProductID = &productID.Int64
	}
	if startsAt.Valid {
		p.StartsAt = &startsAt.Time
	}
	if endsAt.Valid {
		p.EndsAt = &endsAt.Time
	}
	return p, nil
}

func scanConfig(row rowScanner) (models.ConfigEntry, error) {
	var c models.ConfigEntry
	err := row.Scan(&c.Key, &c.Value, &c.Deleted, &c.LastUpdated)
	return c, err
}
