package terminal

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

// OpenOutbox opens the terminal outbox. An empty path keeps entries in
// memory only; otherwise they are stored in the sqlite file at path.
func OpenOutbox(ctx context.Context, path string, log *logger.Logger) (store.OutboxStorage, error) {
	if path == "" {
		log.Warn().Msg("outbox path is not set, unsent sales will be lost on restart")
		return NewMemoryOutbox(), nil
	}
	return store.NewSQLiteOutbox(ctx, path, log)
}

// memoryOutbox is a process-local [store.OutboxStorage].
type memoryOutbox struct {
	mu      sync.Mutex
	entries []models.OutboxEntry
	ids     map[string]struct{}
}

// NewMemoryOutbox returns an empty in-memory outbox.
func NewMemoryOutbox() store.OutboxStorage {
	return &memoryOutbox{ids: make(map[string]struct{})}
}

func (o *memoryOutbox) Append(_ context.Context, entries ...models.OutboxEntry) error {
	for _, entry := range entries {
		if entry.ID == "" {
			return store.ErrInvalidOutboxEntry
		}
		if _, err := entry.Payload(); err != nil {
			return store.ErrInvalidOutboxEntry
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for _, entry := range entries {
		if _, ok := o.ids[entry.ID]; ok {
			continue
		}
		o.ids[entry.ID] = struct{}{}
		o.entries = append(o.entries, entry)
	}
	return nil
}

func (o *memoryOutbox) Peek(_ context.Context, limit int) ([]models.OutboxEntry, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if limit <= 0 || limit > len(o.entries) {
		limit = len(o.entries)
	}
	return slices.Clone(o.entries[:limit]), nil
}

// Remove deletes exactly the given ids; unknown ids are ignored.
func (o *memoryOutbox) Remove(_ context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = slices.DeleteFunc(o.entries, func(e models.OutboxEntry) bool {
		_, ok := drop[e.ID]
		return ok
	})
	for id := range drop {
		delete(o.ids, id)
	}
	return nil
}

func (o *memoryOutbox) Len(context.Context) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries), nil
}

func (o *memoryOutbox) Close() error {
	return nil
}
