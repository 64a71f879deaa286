// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuthRequest is the body of POST /api/sync/auth.
type AuthRequest struct {
	TerminalID  string    `json:"terminalId"`
	SharedKey   string    `json:"sharedKey"`
	Version     string    `json:"version"`
	IP          string    `json:"ip"`
	RequestTime time.Time `json:"requestTime"`
}

// AuthResponse is returned by POST /api/sync/auth.
//
// On failure Authorized is false, Token is empty and Message explains the
// reason. TerminalConfig is only populated on success.
type AuthResponse struct {
	Result

	Authorized     bool            `json:"authorized"`
	Token          string          `json:"token,omitempty"`
	ExpiresAt      time.Time       `json:"expiresAt,omitzero"`
	ServerID       string          `json:"serverId,omitempty"`
	TerminalConfig *TerminalConfig `json:"terminalConfig,omitempty"`
}

// NewAuthRequest builds the authentication request for identity at time now.
func NewAuthRequest(identity TerminalIdentity, now time.Time) AuthRequest {
	return AuthRequest{
		TerminalID:  identity.TerminalID,
		SharedKey:   identity.SharedKey,
		Version:     identity.Version,
		IP:          identity.IP,
		RequestTime: now,
	}
}

// Session converts a successful response into a terminal session.
func (r AuthResponse) Session() Session {
	s := Session{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		ServerID:  r.ServerID,
	}
	if r.TerminalConfig != nil {
		s.Config = *r.TerminalConfig
	}
	return s
}
