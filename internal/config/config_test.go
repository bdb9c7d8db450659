package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpost/vaultpost/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vaultpost.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		content string
		missing bool
		expCfg  config.Config
		expErr  bool
	}{
		"A missing file should return defaults.": {
			missing: true,
			expCfg:  config.Default(),
		},
		"An empty file should return defaults.": {
			content: "",
			expCfg:  config.Default(),
		},
		"Values in the file should override defaults.": {
			content: `
server_url: http://127.0.0.1:9999
wallet: Savings
poll_interval: 250ms
poll_max_attempts: 30
heartbeat:
  health: 10s
  balance: 1m
`,
			expCfg: config.Config{
				ServerURL:       "http://127.0.0.1:9999",
				Wallet:          "Savings",
				PollInterval:    250 * time.Millisecond,
				PollMaxAttempts: 30,
				Heartbeat: config.HeartbeatConfig{
					Health:  10 * time.Second,
					Balance: time.Minute,
				},
			},
		},
		"Invalid yaml should fail.": {
			content: "wallet: [unclosed",
			expErr:  true,
		},
		"Negative poll interval should fail.": {
			content: "poll_interval: -5s",
			expErr:  true,
		},
		"Negative poll attempts should fail.": {
			content: "poll_max_attempts: -1",
			expErr:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if !tt.missing {
				path = writeConfig(t, tt.content)
			}

			cfg, err := config.Load(path)

			if tt.expErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expCfg, *cfg)
			}
		})
	}
}
