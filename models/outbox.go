// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// OutboxKind tells which payload an [OutboxEntry] carries.
type OutboxKind string

const (
	OutboxSale     OutboxKind = "sale"
	OutboxMovement OutboxKind = "movement"
	OutboxEvent    OutboxKind = "event"
)

// OutboxEntry is a terminal-originated write awaiting server
// acknowledgment. Exactly one of Sale, Movement and Event is set,
// according to Kind.
type OutboxEntry struct {
	ID        string         `json:"id"`
	Kind      OutboxKind     `json:"kind"`
	Sale      *Sale          `json:"sale,omitempty"`
	Movement  *StockMovement `json:"movement,omitempty"`
	Event     *TerminalEvent `json:"event,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Payload returns the JSON encoding of the entry's payload.
func (e OutboxEntry) Payload() ([]byte, error) {
	switch e.Kind {
	case OutboxSale:
		return json.Marshal(e.Sale)
	case OutboxMovement:
		return json.Marshal(e.Movement)
	case OutboxEvent:
		return json.Marshal(e.Event)
	default:
		return nil, fmt.Errorf("unknown outbox kind %q", e.Kind)
	}
}

// SetPayload decodes data into the payload field selected by e.Kind.
func (e *OutboxEntry) SetPayload(data []byte) error {
	switch e.Kind {
	case OutboxSale:
		e.Sale = new(Sale)
		return json.Unmarshal(data, e.Sale)
	case OutboxMovement:
		e.Movement = new(StockMovement)
		return json.Unmarshal(data, e.Movement)
	case OutboxEvent:
		e.Event = new(TerminalEvent)
		return json.Unmarshal(data, e.Event)
	default:
		return fmt.Errorf("unknown outbox kind %q", e.Kind)
	}
}

// BuildPushRequest assembles a push batch from outbox entries preserving
// their order. The returned ids are the identities of the entries sent.
func BuildPushRequest(terminalID string, entries []OutboxEntry, now time.Time) (PushRequest, []string) {
	req := PushRequest{
		TerminalID:     terminalID,
		GeneratedAt:    now,
		Sales:          make([]Sale, 0),
		StockMovements: make([]StockMovement, 0),
		Events:         make([]TerminalEvent, 0),
	}
	ids := make([]string, 0, len(entries))

	for _, e := range entries {
		switch {
		case e.Kind == OutboxSale && e.Sale != nil:
			req.Sales = append(req.Sales, *e.Sale)
		case e.Kind == OutboxMovement && e.Movement != nil:
			req.StockMovements = append(req.StockMovements, *e.Movement)
		case e.Kind == OutboxEvent && e.Event != nil:
			req.Events = append(req.Events, *e.Event)
		default:
			continue
		}
		ids = append(ids, e.ID)
	}

	return req, ids
}
