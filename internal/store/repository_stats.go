package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
)

type statsRepository struct {
	*DB
	logger *logger.Logger
}

// NewStatsRepository constructs a [StatsRepository] backed by db.
func NewStatsRepository(db *DB, logger *logger.Logger) StatsRepository {
	return &statsRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *statsRepository) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Statistics counts visible catalog rows, sales since dayStart and
// terminals seen since onlineSince.
func (s *statsRepository) Statistics(ctx context.Context, dayStart, onlineSince time.Time) (models.Statistics, error) {
	var stats models.Statistics

	err := s.DB.QueryRowContext(ctx, statisticsQuery, dayStart, onlineSince, time.Now()).Scan(
		&stats.Products,
		&stats.Services,
		&stats.Promotions,
		&stats.SalesToday,
		&stats.Terminals,
		&stats.TerminalsOnline,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "statsRepository.Statistics").
			Msg("failed to read statistics")
		return models.Statistics{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stats, nil
}
