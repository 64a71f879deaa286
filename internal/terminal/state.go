package terminal

import (
	"time"

	"github.com/MKhiriev/go-pos-sync/internal/adapter"
	"github.com/MKhiriev/go-pos-sync/models"
)

// State is the orchestrator lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateAuthenticating
	StateBootstrapping
	StateSteady
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateAuthenticating:
		return "authenticating"
	case StateBootstrapping:
		return "bootstrapping"
	case StateSteady:
		return "steady"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// StatusEvent is published to observers on every state transition.
type StatusEvent struct {
	State State

	// Err is the failure that caused a transition to Degraded.
	Err  error
	Kind adapter.ErrorKind

	// Pending is the number of outbox entries awaiting acknowledgment, or -1
	// when the outbox could not be read.
	Pending int

	// UserVisible is false for authentication failures until they repeat
	// enough times in a row to be worth showing to the cashier.
	UserVisible bool

	At time.Time
}

// StatusObserver receives status events. Implementations must not block.
type StatusObserver interface {
	OnStatus(event StatusEvent)
}

// StatusObserverFunc adapts a function to [StatusObserver].
type StatusObserverFunc func(event StatusEvent)

func (f StatusObserverFunc) OnStatus(event StatusEvent) { f(event) }

// PendingCartProvider reports whether the front end holds an unfinished cart.
type PendingCartProvider interface {
	HasPendingCart() bool
}

// PeripheralStatusProvider reports the state of attached devices.
type PeripheralStatusProvider interface {
	PeripheralStatus() models.PeripheralStatus
}
