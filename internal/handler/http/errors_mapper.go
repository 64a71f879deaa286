package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/app"
	"github.com/MKhiriev/go-pos-sync/internal/service"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
)

// errorStatusMap is ordered: the first matching error decides the status.
// Transient failures come first because they may wrap a low-level error too.
var errorStatusMap = []struct {
	err    error
	status int
}{
	{store.ErrConcurrentIngest, http.StatusServiceUnavailable},
	{store.ErrRetryable, http.StatusServiceUnavailable},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTerminalInactive, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},
	{ErrTerminalMismatch, http.StatusForbidden},
	{ErrInvalidBody, http.StatusBadRequest},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},

	{store.ErrTerminalNotFound, http.StatusUnauthorized},
	{store.ErrUnknownEntityType, http.StatusBadRequest},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError writes the bare failed envelope for err. Server-side
// failures never leak their details to the terminal.
func writeServiceError(w http.ResponseWriter, err error) int {
	status := statusFromError(err)
	message := err.Error()
	switch {
	case status == http.StatusServiceUnavailable:
		message = app.MsgServiceUnavailable
	case status >= http.StatusInternalServerError:
		message = app.MsgInternalServerError
	}

	utils.WriteError(w, message, status)
	return status
}
