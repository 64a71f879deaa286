package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

type fakeTerminalRepository struct {
	mu         sync.Mutex
	terminals  map[string]models.Terminal
	findErr    error
	touchErr   error
	beatErr    error
	touched    []string
	heartbeats []models.HeartbeatRequest
}

func (f *fakeTerminalRepository) FindTerminal(_ context.Context, terminalID string) (models.Terminal, error) {
	if f.findErr != nil {
		return models.Terminal{}, f.findErr
	}
	terminal, ok := f.terminals[terminalID]
	if !ok {
		return models.Terminal{}, store.ErrTerminalNotFound
	}
	return terminal, nil
}

func (f *fakeTerminalRepository) TouchAuth(_ context.Context, terminalID, _, _ string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, terminalID)
	return f.touchErr
}

func (f *fakeTerminalRepository) SaveHeartbeat(_ context.Context, heartbeat models.HeartbeatRequest, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.beatErr != nil {
		return f.beatErr
	}
	f.heartbeats = append(f.heartbeats, heartbeat)
	return nil
}

type fakeCatalogRepository struct {
	batch     models.ChangeBatch
	err       error
	lastLimit int
	lastReq   models.ChangeRequest
}

func (f *fakeCatalogRepository) GetChanges(_ context.Context, req models.ChangeRequest, limit int) (models.ChangeBatch, error) {
	f.lastReq, f.lastLimit = req, limit
	return f.batch, f.err
}

type fakeIngestRepository struct {
	result  models.IngestResult
	err     error
	calls   int
	lastReq models.PushRequest
}

func (f *fakeIngestRepository) Ingest(_ context.Context, req models.PushRequest) (models.IngestResult, error) {
	f.calls++
	f.lastReq = req
	return f.result, f.err
}

type fakeStatsRepository struct {
	pingErr  error
	stats    models.Statistics
	statsErr error
}

func (f *fakeStatsRepository) Ping(context.Context) error { return f.pingErr }

func (f *fakeStatsRepository) Statistics(context.Context, time.Time, time.Time) (models.Statistics, error) {
	return f.stats, f.statsErr
}

type fakeLiveness struct {
	marked   []string
	markErr  error
	alive    int64
	countErr error
}

func (f *fakeLiveness) MarkAlive(_ context.Context, terminalID string, _ time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, terminalID)
	return nil
}

func (f *fakeLiveness) CountAlive(context.Context, time.Time) (int64, error) {
	return f.alive, f.countErr
}

func (f *fakeLiveness) Close() error { return nil }
