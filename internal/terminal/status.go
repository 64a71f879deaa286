package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	badgeStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	pendingStyle = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	stateColors = map[State]lipgloss.Color{
		StateDisconnected:   lipgloss.Color("8"),
		StateAuthenticating: lipgloss.Color("12"),
		StateBootstrapping:  lipgloss.Color("12"),
		StateSteady:         lipgloss.Color("10"),
		StateDegraded:       lipgloss.Color("11"),
	}

	stateLabels = map[State]string{
		StateDisconnected:   "OFFLINE",
		StateAuthenticating: "CONNECTING",
		StateBootstrapping:  "LOADING CATALOG",
		StateSteady:         "ONLINE",
		StateDegraded:       "NO CONNECTION",
	}
)

// StatusLine renders status events as a one-line console indicator.
type StatusLine struct {
	mu sync.Mutex
	w  io.Writer
}

func NewStatusLine(w io.Writer) *StatusLine {
	return &StatusLine{w: w}
}

// OnStatus implements [StatusObserver].
func (s *StatusLine) OnStatus(event StatusEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.w, Render(event))
}

// Render formats event as "[STATE] pending: N  error". The error is shown
// only when the event is user visible.
func Render(event StatusEvent) string {
	label, ok := stateLabels[event.State]
	if !ok {
		label = strings.ToUpper(event.State.String())
	}

	parts := []string{
		badgeStyle.Foreground(stateColors[event.State]).Render(label),
		event.At.Format("15:04:05"),
	}
	if event.Pending > 0 {
		parts = append(parts, pendingStyle.Render(fmt.Sprintf("pending: %d", event.Pending)))
	}
	if event.Err != nil && event.UserVisible {
		parts = append(parts, errorStyle.Render(event.Err.Error()))
	}

	return strings.Join(parts, "  ")
}
