package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pos-sync/models"
)

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// TerminalRepository manages terminal registrations.
type TerminalRepository interface {
	FindTerminal(ctx context.Context, terminalID string) (models.Terminal, error)
	TouchAuth(ctx context.Context, terminalID, version, ip string, at time.Time) error
	SaveHeartbeat(ctx context.Context, heartbeat models.HeartbeatRequest, at time.Time) error
}

// CatalogRepository serves the change feed.
type CatalogRepository interface {
	// GetChanges returns, for every type in req.Types(), at most limit rows
	// (plus rows sharing the last row's timestamp) changed after the type's
	// watermark. HasMore is set when a page was full.
	GetChanges(ctx context.Context, req models.ChangeRequest, limit int) (models.ChangeBatch, error)
}

// IngestRepository stores push batches.
type IngestRepository interface {
	// Ingest stores req in one transaction. Already stored sales, movements
	// and events are skipped and reported in the result.
	Ingest(ctx context.Context, req models.PushRequest) (models.IngestResult, error)
}

// StatsRepository backs the health endpoint.
type StatsRepository interface {
	Ping(ctx context.Context) error
	Statistics(ctx context.Context, dayStart, onlineSince time.Time) (models.Statistics, error)
}

// LivenessRegistry records terminal heartbeats outside the relational store.
type LivenessRegistry interface {
	MarkAlive(ctx context.Context, terminalID string, at time.Time) error
	CountAlive(ctx context.Context, since time.Time) (int64, error)
	Close() error
}

// OutboxStorage is the terminal's durable queue of unacknowledged writes.
type OutboxStorage interface {
	Append(ctx context.Context, entries ...models.OutboxEntry) error
	Peek(ctx context.Context, limit int) ([]models.OutboxEntry, error)
	Remove(ctx context.Context, ids []string) error
	Len(ctx context.Context) (int, error)
	Close() error
}
