package terminal

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-pos-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	kind, cashier, detail string
}

type fakeRecorder struct {
	events []recordedEvent
	err    error
}

func (f *fakeRecorder) RecordEvent(_ context.Context, kind, cashier, detail string) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, recordedEvent{kind, cashier, detail})
	return nil
}

type fakeTotals struct{ snapshot TotalsSnapshot }

func (f fakeTotals) Totals() TotalsSnapshot { return f.snapshot }

type fakeCarts struct{ pending bool }

func (f *fakeCarts) HasPendingCart() bool { return f.pending }

func TestShiftCloser_OpenClose(t *testing.T) {
	ctx := context.Background()
	carts := &fakeCarts{}
	recorder := &fakeRecorder{}
	shift := NewShiftCloser(carts, recorder, fakeTotals{TotalsSnapshot{Count: 12, Total: 45_000}})

	require.NoError(t, shift.Open(ctx, "ana"))
	assert.ErrorIs(t, shift.Open(ctx, "luis"), ErrShiftAlreadyOpen)

	cashier, open := shift.Current()
	assert.True(t, open)
	assert.Equal(t, "ana", cashier)

	carts.pending = true
	_, err := shift.Close(ctx)
	assert.ErrorIs(t, err, ErrPendingCart)

	carts.pending = false
	summary, err := shift.Close(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana", summary.Cashier)
	assert.Equal(t, 12, summary.Totals.Count)

	assert.Equal(t, []recordedEvent{
		{models.EventShiftOpened, "ana", ""},
		{models.EventShiftClosed, "ana", "sales=12 total=45000"},
	}, recorder.events)

	_, err = shift.Close(ctx)
	assert.ErrorIs(t, err, ErrShiftNotOpen)
}

func TestShiftCloser_RecorderFailureKeepsShiftOpen(t *testing.T) {
	ctx := context.Background()
	recorder := &fakeRecorder{}
	shift := NewShiftCloser(nil, recorder, fakeTotals{})
	require.NoError(t, shift.Open(ctx, "ana"))

	recorder.err = errors.New("disk full")
	_, err := shift.Close(ctx)

	assert.Error(t, err)
	_, open := shift.Current()
	assert.True(t, open)
}
