package service

import (
	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
)

type Services struct {
	AuthService       AuthService
	ChangeFeedService ChangeFeedService
	IngestService     IngestService
	HeartbeatService  HeartbeatService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(storages.StatsRepository, storages.Liveness, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: NewAuthService(storages.TerminalRepository, cfg, logger),
		ChangeFeedService: NewChangeFeedValidationService().
			Wrap(NewChangeFeedService(storages.CatalogRepository, cfg, logger)),
		IngestService: NewIngestValidationService().
			Wrap(NewIngestService(storages.IngestRepository, logger)),
		HeartbeatService: NewHeartbeatService(storages.TerminalRepository, storages.Liveness, logger),
		AppInfoService:   appInfoService,
	}, nil
}
