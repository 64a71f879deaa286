package config

import (
	"fmt"
	"time"
)

// TerminalIdentity holds the identity a terminal presents on authentication.
type TerminalIdentity struct {
	ID        string
	SharedKey string
	IP        string
	Version   string
}

// TerminalAdapter holds network settings used by the terminal transport.
type TerminalAdapter struct {
	// HTTPAddress is the sync server base address.
	HTTPAddress string
	// RequestTimeout is the timeout for every outbound request.
	RequestTimeout time.Duration
	// RetryCount is the number of transport-level retries per request.
	RetryCount int
}

// TerminalStorage holds the terminal's local persistence settings.
type TerminalStorage struct {
	// OutboxPath is the sqlite file of the durable outbox; empty keeps the
	// outbox in memory.
	OutboxPath string
}

// TerminalWorkers contains the terminal scheduled task settings.
type TerminalWorkers struct {
	SyncInterval      time.Duration
	HeartbeatInterval time.Duration
	BackoffBase       time.Duration
	BackoffMax        time.Duration
	ShutdownGrace     time.Duration
	PushBatchSize     int
}

// TerminalConfig is the terminal runtime configuration assembled from
// [StructuredConfig].
type TerminalConfig struct {
	Identity TerminalIdentity
	Adapter  TerminalAdapter
	Storage  TerminalStorage
	Workers  TerminalWorkers
	LogFile  string
}

// GetTerminalConfig builds and validates the terminal view of the merged
// structured configuration.
func GetTerminalConfig() (*TerminalConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	terminalCfg := cfg.TerminalView()
	if err = terminalCfg.validate(); err != nil {
		return nil, err
	}

	return terminalCfg, nil
}

// TerminalView maps the fields relevant to the terminal runtime.
func (cfg *StructuredConfig) TerminalView() *TerminalConfig {
	return &TerminalConfig{
		Identity: TerminalIdentity{
			ID:        cfg.Terminal.ID,
			SharedKey: cfg.Terminal.SharedKey,
			IP:        cfg.Terminal.IP,
			Version:   cfg.App.Version,
		},
		Adapter: TerminalAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RetryCount:     cfg.Adapter.RetryCount,
		},
		Storage: TerminalStorage{
			OutboxPath: cfg.Storage.Outbox.Path,
		},
		Workers: TerminalWorkers{
			SyncInterval:      cfg.Workers.SyncInterval,
			HeartbeatInterval: cfg.Workers.HeartbeatInterval,
			BackoffBase:       cfg.Workers.BackoffBase,
			BackoffMax:        cfg.Workers.BackoffMax,
			ShutdownGrace:     cfg.Workers.ShutdownGrace,
			PushBatchSize:     cfg.Workers.PushBatchSize,
		},
		LogFile: cfg.App.LogFile,
	}
}
