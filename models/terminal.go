// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TerminalIdentity identifies a cash-register process to the server.
// It is read from local configuration and stays fixed for the process lifetime.
type TerminalIdentity struct {
	TerminalID string
	SharedKey  string
	IP         string
	Version    string
}

// TerminalConfig is the operating configuration the server hands out on
// successful authentication.
type TerminalConfig struct {
	// PollInterval is how often the terminal runs a pull/push cycle.
	PollInterval Duration `json:"pollInterval"`

	// HeartbeatInterval is how often the terminal reports liveness.
	HeartbeatInterval Duration `json:"heartbeatInterval"`

	// MaxDiscountPercent caps the manual discount a cashier may apply.
	MaxDiscountPercent float64 `json:"maxDiscountPercent"`

	// FeatureFlags toggles optional terminal features by name.
	FeatureFlags map[string]bool `json:"featureFlags,omitempty"`
}

// Session is the authenticated state of a terminal. It lives only in the
// terminal process memory and is replaced on every re-authentication.
type Session struct {
	Token     string
	ExpiresAt time.Time
	ServerID  string
	Config    TerminalConfig
}

// Valid reports whether the session holds a token that has not expired at now.
func (s Session) Valid(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}

// Terminal is the server-side registration record of a terminal.
type Terminal struct {
	TerminalID    string
	Name          string
	SharedKeyHash string
	Active        bool
	Version       string
	LastIP        string
	LastAuthAt    *time.Time
	LastSeenAt    *time.Time
}
