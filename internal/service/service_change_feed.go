package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

type changeFeedService struct {
	catalogRepository store.CatalogRepository
	pageSize          int
	serverID          string

	now    func() time.Time
	logger *logger.Logger
}

func NewChangeFeedService(catalogRepository store.CatalogRepository, cfg *config.StructuredConfig, logger *logger.Logger) ChangeFeedService {
	return &changeFeedService{
		catalogRepository: catalogRepository,
		pageSize:          cfg.Server.FeedPageSize,
		serverID:          cfg.App.ServerID,
		now:               time.Now,
		logger:            logger,
	}
}

// GetChanges returns the catalog rows changed after the request watermarks.
// GeneratedAt is taken before the query so that it never runs ahead of the
// rows the batch carries.
func (s *changeFeedService) GetChanges(ctx context.Context, request models.ChangeRequest) (models.ChangeBatch, error) {
	log := logger.FromContext(ctx)
	generatedAt := s.now()

	batch, err := s.catalogRepository.GetChanges(ctx, request, s.pageSize)
	if err != nil {
		log.Err(err).Str("terminal_id", request.TerminalID).Msg("reading change feed failed")
		return models.ChangeBatch{}, fmt.Errorf("reading change feed failed: %w", err)
	}

	batch.Result = models.OK(fmt.Sprintf("%d changes", batch.Len()))
	batch.GeneratedAt = generatedAt
	batch.ServerID = s.serverID

	log.Debug().
		Str("terminal_id", request.TerminalID).
		Time("last_sync", request.LastSync).
		Int("products", len(batch.Products)).
		Int("services", len(batch.Services)).
		Int("promotions", len(batch.Promotions)).
		Int("configs", len(batch.Configs)).
		Bool("has_more", batch.HasMore).
		Msg("change feed served")

	return batch, nil
}
