package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with snake_case JSON keys
// and string durations.
type StructuredJSONConfig struct {
	App struct {
		ServerID           string          `json:"server_id"`
		TokenSignKey       string          `json:"token_sign_key"`
		TokenDuration      Duration        `json:"token_duration"`
		Version            string          `json:"version"`
		MaxDiscountPercent float64         `json:"max_discount_percent"`
		FeatureFlags       map[string]bool `json:"feature_flags"`
		LogFile            string          `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Outbox struct {
			Path string `json:"path"`
		} `json:"outbox,omitempty"`

		Redis struct {
			Address     string   `json:"address"`
			Password    string   `json:"password"`
			DB          int      `json:"db"`
			LivenessTTL Duration `json:"liveness_ttl"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		FeedPageSize    int      `json:"feed_page_size"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval      Duration `json:"sync_interval"`
		HeartbeatInterval Duration `json:"heartbeat_interval"`
		BackoffBase       Duration `json:"backoff_base"`
		BackoffMax        Duration `json:"backoff_max"`
		ShutdownGrace     Duration `json:"shutdown_grace"`
		PushBatchSize     int      `json:"push_batch_size"`
	} `json:"workers,omitempty"`

	Terminal struct {
		ID        string `json:"id"`
		SharedKey string `json:"shared_key"`
		IP        string `json:"ip"`
	} `json:"terminal,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ServerID:           jsonCfg.App.ServerID,
			TokenSignKey:       jsonCfg.App.TokenSignKey,
			TokenDuration:      time.Duration(jsonCfg.App.TokenDuration),
			Version:            jsonCfg.App.Version,
			MaxDiscountPercent: jsonCfg.App.MaxDiscountPercent,
			FeatureFlags:       jsonCfg.App.FeatureFlags,
			LogFile:            jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB:     DB{DSN: jsonCfg.Storage.DB.DSN},
			Outbox: Outbox{Path: jsonCfg.Storage.Outbox.Path},
			Redis: Redis{
				Address:     jsonCfg.Storage.Redis.Address,
				Password:    jsonCfg.Storage.Redis.Password,
				DB:          jsonCfg.Storage.Redis.DB,
				LivenessTTL: time.Duration(jsonCfg.Storage.Redis.LivenessTTL),
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			FeedPageSize:    jsonCfg.Server.FeedPageSize,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RetryCount:     jsonCfg.Adapter.RetryCount,
		},
		Workers: Workers{
			SyncInterval:      time.Duration(jsonCfg.Workers.SyncInterval),
			HeartbeatInterval: time.Duration(jsonCfg.Workers.HeartbeatInterval),
			BackoffBase:       time.Duration(jsonCfg.Workers.BackoffBase),
			BackoffMax:        time.Duration(jsonCfg.Workers.BackoffMax),
			ShutdownGrace:     time.Duration(jsonCfg.Workers.ShutdownGrace),
			PushBatchSize:     jsonCfg.Workers.PushBatchSize,
		},
		Terminal: Terminal{
			ID:        jsonCfg.Terminal.ID,
			SharedKey: jsonCfg.Terminal.SharedKey,
			IP:        jsonCfg.Terminal.IP,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
