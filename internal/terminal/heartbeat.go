package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

// SessionSource exposes the current terminal session.
type SessionSource interface {
	Session() (models.Session, bool)
}

// HeartbeatReporter periodically tells the server the terminal is alive and
// how its day is going. It never affects the sync state: a failed heartbeat
// is only logged.
type HeartbeatReporter struct {
	terminalID  string
	adapter     adapter.ServerAdapter
	sessions    SessionSource
	totals      *DailyTotals
	outbox      store.OutboxStorage
	peripherals PeripheralStatusProvider
	fallback    time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewHeartbeatReporter creates a reporter. fallback is the interval used
// until the server issues one; peripherals may be nil.
func NewHeartbeatReporter(
	terminalID string,
	serverAdapter adapter.ServerAdapter,
	sessions SessionSource,
	totals *DailyTotals,
	outbox store.OutboxStorage,
	peripherals PeripheralStatusProvider,
	fallback time.Duration,
	logger *logger.Logger,
) *HeartbeatReporter {
	return &HeartbeatReporter{
		terminalID:  terminalID,
		adapter:     serverAdapter,
		sessions:    sessions,
		totals:      totals,
		outbox:      outbox,
		peripherals: peripherals,
		fallback:    fallback,
		now:         time.Now,
		logger:      logger.WithComponent("heartbeat"),
	}
}

// Interval returns the heartbeat period, preferring the server-issued value.
func (h *HeartbeatReporter) Interval() time.Duration {
	if session, ok := h.sessions.Session(); ok {
		if d := session.Config.HeartbeatInterval.Std(); d > 0 {
			return d
		}
	}
	return h.fallback
}

// Beat sends one heartbeat. Without a valid session it does nothing.
func (h *HeartbeatReporter) Beat(ctx context.Context) error {
	session, ok := h.sessions.Session()
	if !ok {
		return nil
	}

	request := h.Request(ctx)
	resp, err := h.adapter.Heartbeat(ctx, request)
	if err != nil {
		return fmt.Errorf("heartbeat to %s: %w", session.ServerID, err)
	}

	h.logger.Debug().
		Time("server_time", resp.ServerTime).
		Int("pending_outbox", request.PendingOutbox).
		Msg("heartbeat acknowledged")
	return nil
}

// Request builds the heartbeat body from the current counters.
func (h *HeartbeatReporter) Request(ctx context.Context) models.HeartbeatRequest {
	now := h.now()
	totals := h.totals.Snapshot(now)

	request := models.HeartbeatRequest{
		TerminalID:      h.terminalID,
		LastActivity:    totals.LastActivity,
		CurrentUser:     totals.CurrentUser,
		DailySalesCount: totals.Count,
		DailySalesTotal: totals.Total,
		SentAt:          now,
	}
	if h.peripherals != nil {
		status := h.peripherals.PeripheralStatus()
		request.PrinterOnline = status.PrinterOnline
		request.ScannerOnline = status.ScannerOnline
		request.CashDrawerOnline = status.CashDrawerOnline
	}
	if pending, err := h.outbox.Len(ctx); err == nil {
		request.PendingOutbox = pending
	}
	return request
}
