// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks invariants that hold for every role. Role-specific
// requirements are checked by [StructuredConfig.validateServer] and
// [TerminalConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.FeedPageSize < 0 || cfg.Workers.PushBatchSize < 0 || cfg.Adapter.RetryCount < 0 {
		return fmt.Errorf("%w: negative sizes are not allowed", ErrInvalidConfig)
	}

	if cfg.App.MaxDiscountPercent < 0 || cfg.App.MaxDiscountPercent > 100 {
		return fmt.Errorf("%w: max discount percent must be within 0..100", ErrInvalidAppConfigs)
	}

	if cfg.Workers.BackoffMax != 0 && cfg.Workers.BackoffMax < cfg.Workers.BackoffBase {
		return fmt.Errorf("%w: backoff max is lower than backoff base", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 || cfg.App.ServerID == "" {
		return fmt.Errorf("%w: token sign key, token duration and server id are required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: listen address is required", ErrInvalidServerConfigs)
	}

	return nil
}

func (cfg *TerminalConfig) validate() error {
	if cfg.Identity.ID == "" || cfg.Identity.SharedKey == "" {
		return fmt.Errorf("%w: terminal id and shared key are required", ErrInvalidTerminalConfigs)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.HeartbeatInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
