// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime configuration of the grantledger service. Every
// field can be set through an environment variable prefixed with
// GRANTLEDGER_, e.g. GRANTLEDGER_API_PORT.
type Config struct {
	APIHost  string `envconfig:"API_HOST" default:"0.0.0.0"`
	APIPort  int    `envconfig:"API_PORT" default:"8080"`
	DataDir  string `envconfig:"DATA_DIR" default:"./grantledger-data"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// Owner is the hex address granted the owner role when the ledger is
	// first initialized. Ignored on later runs.
	Owner string `envconfig:"OWNER"`
	// Identity is the ledger's own address, bound into every decryption
	// state hash. Defaults to the owner address.
	Identity string `envconfig:"IDENTITY"`
	// DevEngine enables the in-process mock decryption engine and the
	// oracle service that drives its callbacks.
	DevEngine         bool          `envconfig:"DEV_ENGINE" default:"true"`
	DevEngineInterval time.Duration `envconfig:"DEV_ENGINE_INTERVAL" default:"2s"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("grantledger", cfg); err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}
