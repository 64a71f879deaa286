package migrations

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/pressly/goose/v3"
)

// gooseLogger routes goose output to zerolog instead of stdout.
type gooseLogger struct {
	log *logger.Logger
}

func newGooseLogger(log *logger.Logger) goose.Logger {
	if log == nil {
		return goose.NopLogger()
	}
	return gooseLogger{log: log.WithComponent("migrations")}
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level only; migrate reports failures through its
// returned error.
func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
