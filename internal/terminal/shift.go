package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-pos-sync/models"
)

// EventRecorder queues terminal events.
type EventRecorder interface {
	RecordEvent(ctx context.Context, kind, cashier, detail string) error
}

// TotalsSource reports the sales counters of the current day.
type TotalsSource interface {
	Totals() TotalsSnapshot
}

// ShiftSummary is returned when a shift is closed.
type ShiftSummary struct {
	Cashier  string
	OpenedAt time.Time
	ClosedAt time.Time
	Totals   TotalsSnapshot
}

// ShiftCloser opens and closes cashier shifts. A shift cannot be closed
// while the front end still holds an unfinished cart.
type ShiftCloser struct {
	carts    PendingCartProvider
	recorder EventRecorder
	totals   TotalsSource

	mu       sync.Mutex
	open     bool
	cashier  string
	openedAt time.Time

	now func() time.Time
}

func NewShiftCloser(carts PendingCartProvider, recorder EventRecorder, totals TotalsSource) *ShiftCloser {
	return &ShiftCloser{carts: carts, recorder: recorder, totals: totals, now: time.Now}
}

// Open starts a shift for cashier and queues a shift_opened event.
func (s *ShiftCloser) Open(ctx context.Context, cashier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return fmt.Errorf("%w: opened by %s", ErrShiftAlreadyOpen, s.cashier)
	}
	if err := s.recorder.RecordEvent(ctx, models.EventShiftOpened, cashier, ""); err != nil {
		return fmt.Errorf("open shift: %w", err)
	}

	s.open = true
	s.cashier = cashier
	s.openedAt = s.now()
	return nil
}

// Close ends the current shift and queues a shift_closed event carrying the
// day's totals.
func (s *ShiftCloser) Close(ctx context.Context) (ShiftSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ShiftSummary{}, ErrShiftNotOpen
	}
	if s.carts != nil && s.carts.HasPendingCart() {
		return ShiftSummary{}, ErrPendingCart
	}

	summary := ShiftSummary{
		Cashier:  s.cashier,
		OpenedAt: s.openedAt,
		ClosedAt: s.now(),
		Totals:   s.totals.Totals(),
	}
	detail := fmt.Sprintf("sales=%d total=%d", summary.Totals.Count, summary.Totals.Total)
	if err := s.recorder.RecordEvent(ctx, models.EventShiftClosed, s.cashier, detail); err != nil {
		return ShiftSummary{}, fmt.Errorf("close shift: %w", err)
	}

	s.open = false
	s.cashier = ""
	return summary, nil
}

// Current returns the cashier of the open shift.
func (s *ShiftCloser) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cashier, s.open
}
