package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers used for idempotency keys,
// event ids and fallback ticket numbers.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random v4 when the
// clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// TicketNumber returns a terminal-scoped ticket number of the form
// "<terminalID>-<uuid>".
func (g *UUIDGenerator) TicketNumber(terminalID string) string {
	return terminalID + "-" + g.Generate()
}
