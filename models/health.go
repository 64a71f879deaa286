package models

import "time"

// Server status values reported by ping and health.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// PingResponse is returned by GET /api/sync/ping.
type PingResponse struct {
	Result

	Server    string    `json:"server"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Status    string    `json:"status"`
}

// HealthResponse is returned by GET /api/sync/health.
type HealthResponse struct {
	Result

	Server        string              `json:"server"`
	Timestamp     time.Time           `json:"timestamp"`
	Version       string              `json:"version"`
	Database      DatabaseStatus      `json:"database"`
	Statistics    Statistics          `json:"statistics"`
	Configuration ServerConfiguration `json:"configuration"`
}

// DatabaseStatus describes database reachability.
type DatabaseStatus struct {
	Status  string   `json:"status"`
	Latency Duration `json:"latency"`
	Error   string   `json:"error,omitempty"`
}

// Statistics are aggregate counters shown on the health endpoint.
type Statistics struct {
	Products        int64 `json:"products"`
	Services        int64 `json:"services"`
	Promotions      int64 `json:"promotions"`
	SalesToday      int64 `json:"salesToday"`
	Terminals       int64 `json:"terminals"`
	TerminalsOnline int64 `json:"terminalsOnline"`
}

// ServerConfiguration is the subset of server settings exposed on health.
type ServerConfiguration struct {
	PollInterval      Duration `json:"pollInterval"`
	HeartbeatInterval Duration `json:"heartbeatInterval"`
	FeedPageSize      int      `json:"feedPageSize"`
	TokenDuration     Duration `json:"tokenDuration"`
}
