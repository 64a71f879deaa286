// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Movement kinds.
const (
	MovementSale       = "sale"
	MovementReturn     = "return"
	MovementAdjustment = "adjustment"
)

// Terminal event kinds.
const (
	EventShiftOpened = "shift_opened"
	EventShiftClosed = "shift_closed"
	EventDrawerOpen  = "drawer_opened"
)

// Sale is a completed ticket recorded on a terminal. TicketNumber is the
// system-wide unique business key used for idempotent ingestion.
// Monetary fields are in minor currency units.
type Sale struct {
	TicketNumber  string     `json:"ticketNumber"`
	TerminalID    string     `json:"terminalId"`
	Cashier       string     `json:"cashier"`
	Lines         []SaleLine `json:"lines"`
	Total         int64      `json:"total"`
	Discount      int64      `json:"discount"`
	PaymentMethod string     `json:"paymentMethod"`
	SoldAt        time.Time  `json:"soldAt"`
}

// SaleLine is one ticket line. Exactly one of ProductID and ServiceID is set.
type SaleLine struct {
	ProductID *int64  `json:"productId,omitempty"`
	ServiceID *int64  `json:"serviceId,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice int64   `json:"unitPrice"`
	Subtotal  int64   `json:"subtotal"`
}

// StockMovement is a signed stock change for one product. IdempotencyKey is
// assigned by the terminal and is unique on the server, so resubmitting the
// same movement never double-counts inventory.
type StockMovement struct {
	IdempotencyKey string    `json:"idempotencyKey"`
	ProductID      int64     `json:"productId"`
	Quantity       float64   `json:"quantity"`
	Kind           string    `json:"kind"`
	Reason         string    `json:"reason,omitempty"`
	TicketNumber   string    `json:"ticketNumber,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// TerminalEvent is an operational fact reported by a terminal (shift
// opened/closed, drawer opened, etc.). EventID is terminal-assigned.
type TerminalEvent struct {
	EventID    string    `json:"eventId"`
	Kind       string    `json:"kind"`
	Cashier    string    `json:"cashier,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
