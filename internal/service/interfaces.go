package service

import (
	"context"

	"github.com/MKhiriev/go-pos-sync/models"
)

// AuthService authenticates terminals and manages their session tokens.
type AuthService interface {
	Authenticate(ctx context.Context, request models.AuthRequest) (models.AuthResponse, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ChangeFeedService serves catalog changes to terminals.
type ChangeFeedService interface {
	GetChanges(ctx context.Context, request models.ChangeRequest) (models.ChangeBatch, error)
}

// IngestService stores sales, stock movements and events pushed by terminals.
type IngestService interface {
	Ingest(ctx context.Context, request models.PushRequest) (models.PushResponse, error)
}

// HeartbeatService records terminal liveness reports.
type HeartbeatService interface {
	Beat(ctx context.Context, request models.HeartbeatRequest) (models.HeartbeatResponse, error)
}

// AppInfoService answers the unauthenticated ping and health probes.
type AppInfoService interface {
	Ping(ctx context.Context) models.PingResponse
	Health(ctx context.Context) models.HealthResponse
}

// IngestServiceWrapper defines middleware composition for IngestService.
// Implementations wrap an existing IngestService to add behavior such as
// validation.
type IngestServiceWrapper interface {
	Wrap(IngestService) IngestService // returns a decorated IngestService applying additional behavior
}

// ChangeFeedServiceWrapper is the ChangeFeedService counterpart of
// IngestServiceWrapper.
type ChangeFeedServiceWrapper interface {
	Wrap(ChangeFeedService) ChangeFeedService
}
