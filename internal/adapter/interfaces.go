// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the terminal's transport to the sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the terminal
// runtime from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Non-2xx responses are mapped to the sentinel errors in errors.go by
// mapHTTPError, and [Classify] folds any adapter error into an [ErrorKind]
// that tells the caller how to react (retry, re-authenticate, keep the
// batch, and so on).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pos-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the sync
// server. Implementations are responsible for serialisation, bearer token
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request. An empty token clears the session.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if none is set.
	Token() string

	// Authenticate presents the terminal credentials. On success the issued
	// token is stored via SetToken. On rejection the server response is
	// returned together with an error wrapping [ErrUnauthorized].
	Authenticate(ctx context.Context, request models.AuthRequest) (models.AuthResponse, error)

	// PullChanges requests catalog rows changed after the request watermarks.
	PullChanges(ctx context.Context, request models.ChangeRequest) (models.ChangeBatch, error)

	// PushChanges uploads a batch of outbox entries. A nil error means the
	// server committed the whole batch; duplicates are reported in the
	// response, not as an error.
	PushChanges(ctx context.Context, request models.PushRequest) (models.PushResponse, error)

	// Heartbeat reports terminal liveness and daily counters.
	Heartbeat(ctx context.Context, request models.HeartbeatRequest) (models.HeartbeatResponse, error)

	// Ping checks that the server is reachable. It needs no token.
	Ping(ctx context.Context) (models.PingResponse, error)
}
