// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PushRequest is the body of POST /api/sync/recibir-cambios.
type PushRequest struct {
	TerminalID     string          `json:"terminalId"`
	GeneratedAt    time.Time       `json:"generatedAt"`
	Sales          []Sale          `json:"sales"`
	StockMovements []StockMovement `json:"stockMovements"`
	Events         []TerminalEvent `json:"events"`
}

// Len returns the number of entities in the batch.
func (r PushRequest) Len() int {
	return len(r.Sales) + len(r.StockMovements) + len(r.Events)
}

// PushResponse reports the outcome of one ingestion batch.
//
// ProcessedCount counts newly stored entities. Duplicates counts entities
// that were already stored and were skipped; they are not errors.
type PushResponse struct {
	Result

	ProcessedCount   int      `json:"processedCount"`
	ErrorCount       int      `json:"errorCount"`
	Errors           []string `json:"errors"`
	Duplicates       int      `json:"duplicates"`
	DuplicateTickets []string `json:"duplicateTickets,omitempty"`
}

// IngestResult is the storage-level outcome of a committed push batch.
type IngestResult struct {
	SalesInserted     int
	MovementsInserted int
	EventsInserted    int
	DuplicateTickets  []string
	DuplicateOther    int
}

// Processed returns the number of newly stored entities.
func (r IngestResult) Processed() int {
	return r.SalesInserted + r.MovementsInserted + r.EventsInserted
}

// Duplicates returns the number of skipped entities.
func (r IngestResult) Duplicates() int {
	return len(r.DuplicateTickets) + r.DuplicateOther
}
