package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnavailable         = errors.New("server unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected status")
	ErrTransport           = errors.New("server unreachable")
	ErrMalformedResponse   = errors.New("malformed server response")
	ErrRejected            = errors.New("request rejected by server")
)

// ErrorKind tells the terminal runtime how to react to a failed call.
type ErrorKind int

const (
	// KindNone is returned for a nil error.
	KindNone ErrorKind = iota
	// KindConnectivity covers unreachable servers, timeouts and gateway
	// statuses. The call is retried after a backoff.
	KindConnectivity
	// KindAuth means the session was rejected and a new token is needed.
	KindAuth
	// KindValidation means the server refused the payload. The batch is kept
	// and retried unchanged.
	KindValidation
	// KindDuplicate means the server reported a conflicting write. The batch
	// is resubmitted and the server skips what it already stored.
	KindDuplicate
	// KindPersistence means the server failed to store the batch.
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConnectivity:
		return "connectivity"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Classify folds an error returned by a [ServerAdapter] into an [ErrorKind].
// Errors that carry no status sentinel (dial failures, timeouts, cancelled
// contexts, undecodable bodies) are treated as connectivity failures.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return KindAuth
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrNotFound):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindDuplicate
	case errors.Is(err, ErrInternalServerError), errors.Is(err, ErrRejected), errors.Is(err, ErrUnexpectedStatus):
		return KindPersistence
	}

	return KindConnectivity
}
