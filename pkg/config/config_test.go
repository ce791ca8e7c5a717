package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/replicate/releasegate/pkg/env"
)

func TestValidateAndCompleteFillsDefaults(t *testing.T) {
	cfg := &Config{Branch: "master"}
	require.NoError(t, cfg.ValidateAndComplete())

	require.Equal(t, "master", cfg.Branch)
	require.Equal(t, env.Travis, *cfg.Provider)
	require.Equal(t, CoordinatorTravis, cfg.Coordinator.Type)
	require.Equal(t, 5*time.Second, cfg.Coordinator.PollInterval)
	require.Equal(t, time.Duration(0), cfg.Coordinator.Timeout)
	require.Equal(t, DefaultConcurrency, cfg.Coordinator.Concurrency)
	require.Equal(t, "https://api.travis-ci.com", cfg.Travis.APIURL)
	require.Equal(t, DefaultTokenEnv, cfg.Travis.TokenEnv)
	require.Equal(t, ".releasegate.yaml", cfg.Filename())
}

func TestValidateRejects(t *testing.T) {
	for _, tt := range []struct {
		name   string
		config Config
		field  string
	}{
		{
			name:   "unknown coordinator",
			config: Config{Coordinator: Coordinator{Type: "jenkins"}},
			field:  "coordinator.type",
		},
		{
			name:   "command without command",
			config: Config{Coordinator: Coordinator{Type: CoordinatorCommand}},
			field:  "coordinator.command",
		},
		{
			name:   "negative poll interval",
			config: Config{Coordinator: Coordinator{PollInterval: -time.Second}},
			field:  "coordinator.poll_interval",
		},
		{
			name:   "negative timeout",
			config: Config{Coordinator: Coordinator{Timeout: -time.Second}},
			field:  "coordinator.timeout",
		},
		{
			name:   "negative concurrency",
			config: Config{Coordinator: Coordinator{Concurrency: -1}},
			field:  "coordinator.concurrency",
		},
		{
			name:   "bad api url",
			config: Config{Travis: Travis{APIURL: "ftp://travis"}},
			field:  "travis.api_url",
		},
		{
			name:   "incomplete provider",
			config: Config{Provider: &env.Provider{CI: "CI"}},
			field:  "provider",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			err := cfg.ValidateAndComplete()
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tt.field, validationErr.Field)

			var configErr ConfigError
			require.ErrorAs(t, err, &configErr)
		})
	}
}

func TestCommandCoordinatorIsValid(t *testing.T) {
	cfg := &Config{Coordinator: Coordinator{Type: CoordinatorCommand, Command: []string{"travis-after-all"}}}
	require.NoError(t, cfg.ValidateAndComplete())
}
