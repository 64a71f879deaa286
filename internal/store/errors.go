// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrTerminalNotFound is returned when no terminal is registered under
	// the requested terminal id.
	ErrTerminalNotFound = errors.New("terminal was not found")

	// ErrConcurrentIngest is returned when a push batch lost a uniqueness
	// race against another batch committed at the same moment. The whole
	// batch was rolled back; resubmitting it skips the already stored rows.
	ErrConcurrentIngest = errors.New("concurrent ingestion conflict")

	// ErrRetryable wraps driver failures classified as transient
	// (connection loss, serialization failure, deadlock).
	ErrRetryable = errors.New("transient database failure")

	// ErrInvalidOutboxEntry is returned when an outbox entry cannot be
	// encoded or decoded.
	ErrInvalidOutboxEntry = errors.New("invalid outbox entry")

	// ErrUnknownEntityType is returned when a change feed is requested for
	// an entity type without a backing table.
	ErrUnknownEntityType = errors.New("unknown entity type")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
