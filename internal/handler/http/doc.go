// Package http implements the sync server's HTTP surface.
//
// It exposes the /api/sync routes used by terminals (authentication, change
// feed pull, outbox push, heartbeat) and the unauthenticated ping and health
// probes. Cross-cutting concerns such as bearer-token authentication, request
// tracing, access logging and gzip compression are handled in this package
// before requests are delegated to the service layer. Every response body is
// a JSON object embedding the {success, message} envelope.
package http
