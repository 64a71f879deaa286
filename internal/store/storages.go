package store

import (
	"context"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
)

// Storages groups the server-side repositories. Liveness is nil when no
// Redis address is configured.
type Storages struct {
	TerminalRepository TerminalRepository
	CatalogRepository  CatalogRepository
	IngestRepository   IngestRepository
	StatsRepository    StatsRepository
	Liveness           LivenessRegistry

	db *DB
}

// NewStorages connects to postgres (and Redis when configured) and builds
// every repository on the shared connection pool.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	storages := &Storages{
		TerminalRepository: NewTerminalRepository(db, log),
		CatalogRepository:  NewCatalogRepository(db, log),
		IngestRepository:   NewIngestRepository(db, log),
		StatsRepository:    NewStatsRepository(db, log),
		db:                 db,
	}

	if cfg.Redis.Address != "" {
		liveness, redisErr := NewRedisLiveness(ctx, cfg.Redis, log)
		if redisErr != nil {
			db.Close()
			return nil, redisErr
		}
		storages.Liveness = liveness
	}

	return storages, nil
}

// Close releases the database pool and the Redis client.
func (s *Storages) Close() error {
	if s.Liveness != nil {
		_ = s.Liveness.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
