// Package server runs the sync server's HTTP listener.
//
// It owns startup, signal handling and graceful shutdown bounded by the
// configured shutdown timeout.
package server
