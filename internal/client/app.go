package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/internal/terminal"
	"github.com/MKhiriev/go-pos-sync/models"
)

type App struct {
	cfg          *config.TerminalConfig
	outbox       store.OutboxStorage
	orchestrator *terminal.Orchestrator
	shifts       *terminal.ShiftCloser
	logger       *logger.Logger
}

// NewApp opens the outbox and wires the orchestrator to the sync server
// named in cfg. Status changes are printed to stdout.
func NewApp(ctx context.Context, cfg *config.TerminalConfig, log *logger.Logger) (*App, error) {
	outbox, err := terminal.OpenOutbox(ctx, cfg.Storage.OutboxPath, log)
	if err != nil {
		return nil, fmt.Errorf("open outbox: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		_ = outbox.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	orchestrator := terminal.NewOrchestrator(terminal.Config{
		Identity: models.TerminalIdentity{
			TerminalID: cfg.Identity.ID,
			SharedKey:  cfg.Identity.SharedKey,
			IP:         cfg.Identity.IP,
			Version:    cfg.Identity.Version,
		},
		PollInterval:      cfg.Workers.SyncInterval,
		HeartbeatInterval: cfg.Workers.HeartbeatInterval,
		BackoffBase:       cfg.Workers.BackoffBase,
		BackoffMax:        cfg.Workers.BackoffMax,
		PushBatchSize:     cfg.Workers.PushBatchSize,
	}, serverAdapter, terminal.NewCache(), outbox, nil, log)
	orchestrator.AddObserver(terminal.NewStatusLine(os.Stdout))

	return &App{
		cfg:          cfg,
		outbox:       outbox,
		orchestrator: orchestrator,
		shifts:       terminal.NewShiftCloser(nil, orchestrator, orchestrator),
		logger:       log,
	}, nil
}

// Orchestrator exposes the sync runtime to the POS front end for recording
// sales and reading the catalog snapshot.
func (a *App) Orchestrator() *terminal.Orchestrator {
	return a.orchestrator
}

// Shifts returns the cashier shift tracker.
func (a *App) Shifts() *terminal.ShiftCloser {
	return a.shifts
}

// Run syncs until SIGTERM, SIGINT or SIGQUIT, then stops the orchestrator
// and closes the outbox. Queued entries stay on disk for the next start.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	a.logger.Info().
		Str("terminal_id", a.cfg.Identity.ID).
		Str("server", a.cfg.Adapter.HTTPAddress).
		Msg("terminal starting")

	a.orchestrator.Start(ctx)
	<-ctx.Done()

	a.logger.Info().Dur("grace", a.cfg.Workers.ShutdownGrace).Msg("terminal stopping")
	a.orchestrator.Stop(a.cfg.Workers.ShutdownGrace)

	pending, err := a.outbox.Len(context.Background())
	if err == nil && pending > 0 {
		a.logger.Warn().Int("pending", pending).Msg("outbox not empty at shutdown")
	}

	if err = a.outbox.Close(); err != nil {
		return fmt.Errorf("close outbox: %w", err)
	}
	return nil
}
