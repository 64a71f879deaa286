package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/internal/validators"
	"github.com/MKhiriev/go-pos-sync/models"
)

// heartbeatService persists terminal liveness to the terminals table and,
// when a registry is configured, to the Redis liveness set.
type heartbeatService struct {
	terminalRepository store.TerminalRepository
	liveness           store.LivenessRegistry
	validator          validators.Validator

	now    func() time.Time
	logger *logger.Logger
}

// NewHeartbeatService builds a HeartbeatService. liveness may be nil.
func NewHeartbeatService(terminalRepository store.TerminalRepository, liveness store.LivenessRegistry, logger *logger.Logger) HeartbeatService {
	return &heartbeatService{
		terminalRepository: terminalRepository,
		liveness:           liveness,
		validator:          validators.NewSyncValidator(),
		now:                time.Now,
		logger:             logger,
	}
}

// Beat records the heartbeat. A Redis failure is logged and does not fail
// the request; the postgres row is the source of truth.
func (s *heartbeatService) Beat(ctx context.Context, request models.HeartbeatRequest) (models.HeartbeatResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request, validators.FieldTerminalID, validators.FieldCounters); err != nil {
		return models.HeartbeatResponse{}, fmt.Errorf("%w: heartbeat: %w", ErrValidation, err)
	}

	now := s.now()
	if err := s.terminalRepository.SaveHeartbeat(ctx, request, now); err != nil {
		log.Err(err).Str("terminal_id", request.TerminalID).Msg("saving heartbeat failed")
		return models.HeartbeatResponse{}, fmt.Errorf("saving heartbeat failed: %w", err)
	}

	if s.liveness != nil {
		if err := s.liveness.MarkAlive(ctx, request.TerminalID, now); err != nil {
			log.Warn().Err(err).Str("terminal_id", request.TerminalID).Msg("liveness registry unavailable")
		}
	}

	return models.HeartbeatResponse{
		Result:     models.OK("heartbeat received"),
		ServerTime: now,
	}, nil
}
