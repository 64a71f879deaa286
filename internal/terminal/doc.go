// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package terminal implements the cash-register side of catalog and sales
// synchronization.
//
// A terminal sells from an in-memory catalog [Cache] that is refreshed by
// pulling the server change feed, and queues every sale, stock movement and
// operational event in an outbox until the server acknowledges it. The
// [Orchestrator] drives authentication, bootstrap, incremental pulls and
// outbox pushes as a small state machine on top of [workers.Job] timers, so
// the point-of-sale front end never waits for the network.
package terminal
