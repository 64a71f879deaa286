// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrTerminalMismatch is returned when the terminal id in a request body
	// differs from the terminal the session token was issued to.
	ErrTerminalMismatch = errors.New("terminal id does not match session token")

	// ErrInvalidBody is returned when the request body is not valid JSON for
	// the endpoint.
	ErrInvalidBody = errors.New("invalid JSON was passed")
)
