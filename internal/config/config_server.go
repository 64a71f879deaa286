package config

import "fmt"

// GetServerConfig loads the structured configuration and validates the
// settings required by the sync server.
func GetServerConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	if err = cfg.validateServer(); err != nil {
		return nil, err
	}

	return cfg, nil
}
