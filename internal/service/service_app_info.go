package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

type appInfoService struct {
	appVersion string
	serverID   string

	statsRepository store.StatsRepository
	liveness        store.LivenessRegistry

	// onlineWindow is how far back a heartbeat counts as "online".
	onlineWindow  time.Duration
	configuration models.ServerConfiguration

	now    func() time.Time
	logger *logger.Logger
}

func NewAppInfoService(statsRepository store.StatsRepository, liveness store.LivenessRegistry, cfg *config.StructuredConfig, logger *logger.Logger) (AppInfoService, error) {
	if cfg.App.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	if cfg.App.ServerID == "" {
		return nil, ErrServerIDNotSpecified
	}

	onlineWindow := 2 * cfg.Workers.HeartbeatInterval
	if liveness != nil && cfg.Storage.Redis.LivenessTTL > 0 {
		onlineWindow = cfg.Storage.Redis.LivenessTTL
	}

	return &appInfoService{
		appVersion:      cfg.App.Version,
		serverID:        cfg.App.ServerID,
		statsRepository: statsRepository,
		liveness:        liveness,
		onlineWindow:    onlineWindow,
		configuration: models.ServerConfiguration{
			PollInterval:      models.Duration(cfg.Workers.SyncInterval),
			HeartbeatInterval: models.Duration(cfg.Workers.HeartbeatInterval),
			FeedPageSize:      cfg.Server.FeedPageSize,
			TokenDuration:     models.Duration(cfg.App.TokenDuration),
		},
		now:    time.Now,
		logger: logger,
	}, nil
}

func (s *appInfoService) Ping(ctx context.Context) models.PingResponse {
	return models.PingResponse{
		Result:    models.OK("pong"),
		Server:    s.serverID,
		Timestamp: s.now(),
		Version:   s.appVersion,
		Status:    models.StatusOK,
	}
}

// Health probes the database and gathers statistics. A database failure is
// reported in the body with success=false; statistics are omitted then.
func (s *appInfoService) Health(ctx context.Context) models.HealthResponse {
	log := logger.FromContext(ctx)
	now := s.now()

	response := models.HealthResponse{
		Server:        s.serverID,
		Timestamp:     now,
		Version:       s.appVersion,
		Configuration: s.configuration,
	}

	started := time.Now()
	err := s.statsRepository.Ping(ctx)
	response.Database.Latency = models.Duration(time.Since(started))
	if err != nil {
		log.Err(err).Msg("database health check failed")
		response.Result = models.Fail(models.StatusDegraded)
		response.Database.Status = models.StatusDegraded
		response.Database.Error = err.Error()
		return response
	}
	response.Database.Status = models.StatusOK

	stats, err := s.statsRepository.Statistics(ctx, startOfDay(now), now.Add(-s.onlineWindow))
	if err != nil {
		log.Err(err).Msg("collecting statistics failed")
		response.Result = models.Fail(models.StatusDegraded)
		return response
	}

	if s.liveness != nil {
		alive, livenessErr := s.liveness.CountAlive(ctx, now.Add(-s.onlineWindow))
		if livenessErr != nil {
			log.Warn().Err(livenessErr).Msg("liveness registry unavailable, using database counter")
		} else {
			stats.TerminalsOnline = alive
		}
	}

	response.Statistics = stats
	response.Result = models.OK(models.StatusOK)
	return response
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
