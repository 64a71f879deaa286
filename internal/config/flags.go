package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line flags from args.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-server-id server instance id
//	-token-sign-key token signing key
//	-token-duration token duration (e.g., "24h")
//	-request-timeout server request timeout (e.g., "30s")
//	-feed-page-size max rows per entity type in one pull
//	-redis redis address for the liveness registry
//	-server-url sync server base URL used by a terminal
//	-terminal-id terminal identifier
//	-shared-key terminal shared key
//	-outbox terminal outbox sqlite file
//	-sync-interval terminal pull/push interval
//	-heartbeat-interval terminal heartbeat interval
//	-log-file terminal log file
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("pos-sync", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, jsonConfigPath, serverID, tokenSignKey, redisAddress string
	var serverURL, terminalID, sharedKey, outboxPath, logFile string
	var tokenDuration, requestTimeout, syncInterval, heartbeatInterval time.Duration
	var feedPageSize int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&serverID, "server-id", "", "Server instance id")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.IntVar(&feedPageSize, "feed-page-size", 0, "Max rows per entity type in one pull")
	fs.StringVar(&redisAddress, "redis", "", "Redis address for terminal liveness")
	fs.StringVar(&serverURL, "server-url", "", "Sync server base URL")
	fs.StringVar(&terminalID, "terminal-id", "", "Terminal id")
	fs.StringVar(&sharedKey, "shared-key", "", "Terminal shared key")
	fs.StringVar(&outboxPath, "outbox", "", "Terminal outbox sqlite file")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Pull/push interval")
	fs.DurationVar(&heartbeatInterval, "heartbeat-interval", 0, "Heartbeat interval")
	fs.StringVar(&logFile, "log-file", "", "Terminal log file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			ServerID:      serverID,
			TokenSignKey:  tokenSignKey,
			TokenDuration: tokenDuration,
			LogFile:       logFile,
		},
		Storage: Storage{
			DB:     DB{DSN: databaseDSN},
			Outbox: Outbox{Path: outboxPath},
			Redis:  Redis{Address: redisAddress},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			FeedPageSize:   feedPageSize,
		},
		Adapter: Adapter{
			HTTPAddress: serverURL,
		},
		Workers: Workers{
			SyncInterval:      syncInterval,
			HeartbeatInterval: heartbeatInterval,
		},
		Terminal: Terminal{
			ID:        terminalID,
			SharedKey: sharedKey,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
