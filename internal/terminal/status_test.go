package terminal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		event       StatusEvent
		contains    []string
		notContains []string
	}{
		{
			name:     "steady",
			event:    StatusEvent{State: StateSteady, At: at(0)},
			contains: []string{"ONLINE", "08:00:00"},
		},
		{
			name:     "degraded with pending sales",
			event:    StatusEvent{State: StateDegraded, Pending: 3, Err: errors.New("server unreachable"), UserVisible: true, At: at(0)},
			contains: []string{"NO CONNECTION", "pending: 3", "server unreachable"},
		},
		{
			name:        "hidden auth failure",
			event:       StatusEvent{State: StateDegraded, Err: errors.New("invalid credentials"), At: at(0)},
			contains:    []string{"NO CONNECTION"},
			notContains: []string{"invalid credentials", "pending"},
		},
		{
			name:     "unknown state",
			event:    StatusEvent{State: State(42), At: at(0)},
			contains: []string{"UNKNOWN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.event)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestStatusLine_WritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	line := NewStatusLine(&buf)

	line.OnStatus(StatusEvent{State: StateAuthenticating, At: at(0)})
	line.OnStatus(StatusEvent{State: StateBootstrapping, At: at(1)})

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), "LOADING CATALOG")
}
