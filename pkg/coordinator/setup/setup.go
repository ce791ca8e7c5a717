// Package setup builds the coordinator selected in the config
package setup

import (
	"fmt"
	"time"

	"github.com/replicate/go/httpclient"

	"github.com/replicate/releasegate/pkg/config"
	"github.com/replicate/releasegate/pkg/coordinator"
	"github.com/replicate/releasegate/pkg/coordinator/command"
	"github.com/replicate/releasegate/pkg/coordinator/travis"
	"github.com/replicate/releasegate/pkg/env"
	r8_http "github.com/replicate/releasegate/pkg/http"
)

// requestTimeout bounds a single Travis API request, not the whole wait.
const requestTimeout = 30 * time.Second

// NewCoordinator returns the coordinator for cfg, bounded by
// cfg.Coordinator.Timeout.
func NewCoordinator(cfg *config.Config, e env.Environment) (coordinator.Coordinator, error) {
	var c coordinator.Coordinator
	switch cfg.Coordinator.Type {
	case config.CoordinatorSolo:
		c = coordinator.Solo
	case config.CoordinatorTravis:
		c = travis.NewLeader(newTravisClient(cfg, e), e, travis.Options{
			PollInterval: cfg.Coordinator.PollInterval,
			Concurrency:  cfg.Coordinator.Concurrency,
		})
	case config.CoordinatorCommand:
		c = command.New(cfg.Coordinator.Command, e)
	default:
		return nil, fmt.Errorf("Unknown coordinator type %q", cfg.Coordinator.Type)
	}
	return coordinator.WithTimeout(c, cfg.Coordinator.Timeout), nil
}

func newTravisClient(cfg *config.Config, e env.Environment) *travis.Client {
	headers := map[string]string{
		travis.APIVersionHeader: travis.APIVersion,
	}
	if token := e.Get(cfg.Travis.TokenEnv); token != "" {
		headers[r8_http.AuthorizationHeader] = "token " + token
	}
	// Jobs are polled for as long as the build runs, so a single 5xx from the
	// API must not end the wait.
	client := httpclient.ApplyRetryPolicy(r8_http.ProvideHTTPClient(headers, requestTimeout))
	return travis.NewClient(cfg.Travis.APIURL, client)
}
