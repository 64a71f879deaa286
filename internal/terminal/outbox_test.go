package terminal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleEntry(id, ticket string) models.OutboxEntry {
	return models.OutboxEntry{
		ID:        id,
		Kind:      models.OutboxSale,
		Sale:      &models.Sale{TicketNumber: ticket},
		CreatedAt: at(1),
	}
}

func TestMemoryOutbox_AppendPeekRemove(t *testing.T) {
	ctx := context.Background()
	outbox := NewMemoryOutbox()

	require.NoError(t, outbox.Append(ctx, saleEntry("a", "1"), saleEntry("b", "2")))
	require.NoError(t, outbox.Append(ctx, saleEntry("c", "3"), saleEntry("a", "1")))

	n, err := outbox.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	head, err := outbox.Peek(ctx, 2)
	require.NoError(t, err)
	require.Len(t, head, 2)
	assert.Equal(t, "a", head[0].ID)
	assert.Equal(t, "b", head[1].ID)

	// a new entry arriving after the peek must survive the removal
	require.NoError(t, outbox.Append(ctx, saleEntry("d", "4")))
	require.NoError(t, outbox.Remove(ctx, []string{"a", "b"}))

	rest, err := outbox.Peek(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "c", rest[0].ID)
	assert.Equal(t, "d", rest[1].ID)
}

func TestMemoryOutbox_PeekReturnsCopy(t *testing.T) {
	ctx := context.Background()
	outbox := NewMemoryOutbox()
	require.NoError(t, outbox.Append(ctx, saleEntry("a", "1")))

	head, _ := outbox.Peek(ctx, 10)
	head[0].ID = "mutated"

	again, _ := outbox.Peek(ctx, 10)
	assert.Equal(t, "a", again[0].ID)
}

func TestMemoryOutbox_RejectsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	outbox := NewMemoryOutbox()

	err := outbox.Append(ctx, saleEntry("ok", "1"), models.OutboxEntry{Kind: models.OutboxSale})
	assert.ErrorIs(t, err, store.ErrInvalidOutboxEntry)

	err = outbox.Append(ctx, models.OutboxEntry{ID: "x", Kind: "refund"})
	assert.ErrorIs(t, err, store.ErrInvalidOutboxEntry)

	n, _ := outbox.Len(ctx)
	assert.Zero(t, n)
}

func TestOpenOutbox(t *testing.T) {
	ctx := context.Background()

	mem, err := OpenOutbox(ctx, "", logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memoryOutbox{}, mem)
	assert.NoError(t, mem.Close())

	durable, err := OpenOutbox(ctx, filepath.Join(t.TempDir(), "outbox.db"), logger.Nop())
	require.NoError(t, err)
	defer durable.Close()

	require.NoError(t, durable.Append(ctx, saleEntry("a", "1")))
	n, err := durable.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
