// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the fixed response messages of the sync API.
//
// Failures caused by the terminal carry the error text of the service layer.
// Failures on the server side are answered with one of the messages below so
// that storage details never reach a terminal.
package app

const (
	// MsgInternalServerError answers every unexpected server-side failure.
	MsgInternalServerError = "internal server error"

	// MsgServiceUnavailable answers transient failures (lost connection,
	// serialization conflict, ticket race). The terminal keeps its batch and
	// retries.
	MsgServiceUnavailable = "service temporarily unavailable, retry later"

	// MsgRouteNotFound answers paths that match no sync route.
	MsgRouteNotFound = "route not found"

	// MsgMethodNotAllowed answers a known path requested with the wrong
	// method.
	MsgMethodNotAllowed = "method not allowed"
)
