// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the terminal process runtime.
//
// It wires the durable outbox, the HTTP server adapter and the sync
// orchestrator into a single process lifecycle driven by OS signals.
package client
