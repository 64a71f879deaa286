// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// HeartbeatRequest is the body of POST /api/sync/heartbeat.
type HeartbeatRequest struct {
	TerminalID       string    `json:"terminalId"`
	LastActivity     time.Time `json:"lastActivity,omitzero"`
	CurrentUser      string    `json:"currentUser,omitempty"`
	PrinterOnline    bool      `json:"printerOnline"`
	ScannerOnline    bool      `json:"scannerOnline"`
	CashDrawerOnline bool      `json:"cashDrawerOnline"`
	DailySalesCount  int       `json:"dailySalesCount"`
	DailySalesTotal  int64     `json:"dailySalesTotal"`
	PendingOutbox    int       `json:"pendingOutbox"`
	SentAt           time.Time `json:"sentAt"`
}

// HeartbeatResponse acknowledges a heartbeat.
type HeartbeatResponse struct {
	Result

	ServerTime time.Time `json:"serverTime"`
}

// PeripheralStatus carries the state of the devices attached to a terminal.
type PeripheralStatus struct {
	PrinterOnline    bool
	ScannerOnline    bool
	CashDrawerOnline bool
}
