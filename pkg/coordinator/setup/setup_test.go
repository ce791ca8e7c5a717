package setup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/replicate/releasegate/pkg/config"
	"github.com/replicate/releasegate/pkg/coordinator"
	"github.com/replicate/releasegate/pkg/coordinator/travis"
	"github.com/replicate/releasegate/pkg/env"
)

func completeConfig(t *testing.T, cfg *config.Config) *config.Config {
	t.Helper()
	require.NoError(t, cfg.ValidateAndComplete())
	return cfg
}

func TestSolo(t *testing.T) {
	cfg := completeConfig(t, &config.Config{Coordinator: config.Coordinator{Type: config.CoordinatorSolo}})

	c, err := NewCoordinator(cfg, env.Environment{})
	require.NoError(t, err)
	code, err := c.Coordinate(context.Background())
	require.NoError(t, err)
	require.Equal(t, coordinator.ExitLeader, code)
}

func TestCommand(t *testing.T) {
	cfg := completeConfig(t, &config.Config{Coordinator: config.Coordinator{
		Type:    config.CoordinatorCommand,
		Command: []string{"sh", "-c", "exit 2"},
	}})

	c, err := NewCoordinator(cfg, env.Environment{})
	require.NoError(t, err)
	code, err := c.Coordinate(context.Background())
	require.NoError(t, err)
	require.Equal(t, coordinator.ExitNotLeader, code)
}

func TestTravisSendsTokenAndVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "token s3cret", r.Header.Get("Authorization"))
		require.Equal(t, "3", r.Header.Get("Travis-API-Version"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jobs": []travis.Job{
				{ID: 1, Number: "9.1", State: "started"},
				{ID: 2, Number: "9.2", State: "passed"},
			},
		})
	}))
	defer server.Close()

	cfg := completeConfig(t, &config.Config{Travis: config.Travis{APIURL: server.URL}})
	e := env.Environment{
		"TRAVIS_API_TOKEN":  "s3cret",
		"TRAVIS_BUILD_ID":   "9",
		"TRAVIS_JOB_NUMBER": "9.1",
	}

	c, err := NewCoordinator(cfg, e)
	require.NoError(t, err)
	code, err := c.Coordinate(context.Background())
	require.NoError(t, err)
	require.Equal(t, coordinator.ExitLeader, code)
}

func TestTravisRetriesTransientErrors(t *testing.T) {
	var jobRequests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/build/9/jobs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jobs": []travis.Job{
				{ID: 1, Number: "9.1", State: "started"},
				{ID: 2, Number: "9.2", State: "started"},
			},
		})
	})
	mux.HandleFunc("/job/2", func(w http.ResponseWriter, r *http.Request) {
		if jobRequests.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(travis.Job{ID: 2, Number: "9.2", State: travis.StatePassed})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := completeConfig(t, &config.Config{
		Coordinator: config.Coordinator{PollInterval: time.Millisecond},
		Travis:      config.Travis{APIURL: server.URL},
	})
	e := env.Environment{
		"TRAVIS_BUILD_ID":   "9",
		"TRAVIS_JOB_NUMBER": "9.1",
	}

	c, err := NewCoordinator(cfg, e)
	require.NoError(t, err)
	code, err := c.Coordinate(context.Background())
	require.NoError(t, err)
	require.Equal(t, coordinator.ExitLeader, code)
	require.GreaterOrEqual(t, jobRequests.Load(), int32(2))
}

func TestUnknownType(t *testing.T) {
	_, err := NewCoordinator(&config.Config{Coordinator: config.Coordinator{Type: "circle"}}, env.Environment{})
	require.EqualError(t, err, `Unknown coordinator type "circle"`)
}
