// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client defines the lifecycle contract of the terminal runtime.
type Client interface {
	// Run starts syncing and blocks until a stop signal arrives.
	Run() error
}

var _ Client = (*App)(nil)
