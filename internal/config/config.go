// Package config loads the optional client configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration. Every value has a usable default so
// the file is optional; flags override whatever the file sets.
type Config struct {
	// ServerURL is the base URL of the local server process.
	ServerURL string `yaml:"server_url"`
	// Wallet is the default wallet operations act on.
	Wallet string `yaml:"wallet"`

	// PollInterval is the wait between task status reads.
	PollInterval time.Duration `yaml:"poll_interval"`
	// PollMaxAttempts bounds task polling, zero means unbounded.
	PollMaxAttempts int `yaml:"poll_max_attempts"`

	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
}

// HeartbeatConfig are the dashboard refresh intervals.
type HeartbeatConfig struct {
	Health    time.Duration `yaml:"health"`
	MailPing  time.Duration `yaml:"mail_ping"`
	MailCount time.Duration `yaml:"mail_count"`
	Balance   time.Duration `yaml:"balance"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Wallet:       "Default",
		PollInterval: time.Second,
	}
}

// Load reads the configuration file at path, returning defaults when the
// path does not exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	if cfg.PollInterval < 0 {
		return nil, fmt.Errorf("poll_interval cannot be negative")
	}
	if cfg.PollMaxAttempts < 0 {
		return nil, fmt.Errorf("poll_max_attempts cannot be negative")
	}

	return &cfg, nil
}
