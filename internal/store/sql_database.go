package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
)

// DB wraps a *sql.DB with the logger and the driver-specific error
// classifier used by repositories.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// classify wraps err with [ErrRetryable] when the classifier considers it
// transient.
func (db *DB) classify(err error) error {
	if err == nil || db.errorClassificator == nil {
		return err
	}
	if db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrRetryable, err)
	}
	return err
}
