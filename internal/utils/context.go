// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// TerminalIDCtxKey is the key used to store the authenticated terminal
// identifier in the request context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.TerminalIDCtxKey, "T-01")
var TerminalIDCtxKey = contextKey("terminalID")

// GetTerminalIDFromContext retrieves the authenticated terminal identifier
// from the context.
//
// ok is false when the value is missing, empty or has an unexpected type.
func GetTerminalIDFromContext(ctx context.Context) (string, bool) {
	terminalID, ok := ctx.Value(TerminalIDCtxKey).(string)
	return terminalID, ok && terminalID != ""
}

// WithTerminalID returns a copy of ctx carrying terminalID.
func WithTerminalID(ctx context.Context, terminalID string) context.Context {
	return context.WithValue(ctx, TerminalIDCtxKey, terminalID)
}
