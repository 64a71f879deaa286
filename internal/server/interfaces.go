package server

import "context"

// Server defines the lifecycle contract of the sync server.
type Server interface {
	// RunServer serves requests and blocks until a stop signal arrives.
	RunServer()

	// Run serves requests until ctx is cancelled.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
