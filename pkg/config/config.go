package config

import (
	"net/url"
	"time"

	"github.com/replicate/releasegate/pkg/env"
	"github.com/replicate/releasegate/pkg/global"
)

const (
	CoordinatorSolo    = "solo"
	CoordinatorTravis  = "travis"
	CoordinatorCommand = "command"

	DefaultConcurrency = 4
	DefaultTokenEnv    = "TRAVIS_API_TOKEN"
)

// Config is the contents of .releasegate.yaml.
type Config struct {
	Branch      string        `yaml:"branch,omitempty"`
	Provider    *env.Provider `yaml:"provider,omitempty"`
	Coordinator Coordinator   `yaml:"coordinator,omitempty"`
	Travis      Travis        `yaml:"travis,omitempty"`

	filename string
}

// Coordinator selects and tunes the build coordination step. Timeout bounds
// the whole step; zero waits forever.
type Coordinator struct {
	Type         string        `yaml:"type,omitempty"`
	Command      []string      `yaml:"command,omitempty"`
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	Concurrency  int           `yaml:"concurrency,omitempty"`
}

type Travis struct {
	APIURL   string `yaml:"api_url,omitempty"`
	TokenEnv string `yaml:"token_env,omitempty"`
}

func Defaults() *Config {
	provider := env.Travis
	return &Config{
		Provider: &provider,
		Coordinator: Coordinator{
			Type:         CoordinatorTravis,
			PollInterval: global.DefaultPollInterval,
			Concurrency:  DefaultConcurrency,
		},
		Travis: Travis{
			APIURL:   global.DefaultTravisAPIURL,
			TokenEnv: DefaultTokenEnv,
		},
		filename: global.ConfigFilename,
	}
}

// Filename is the path the config was read from, or the default name when
// no file was found.
func (c *Config) Filename() string {
	return c.filename
}

// ValidateAndComplete fills unset fields with defaults and checks the result.
func (c *Config) ValidateAndComplete() error {
	defaults := Defaults()
	if c.Provider == nil {
		c.Provider = defaults.Provider
	}
	if c.Coordinator.Type == "" {
		c.Coordinator.Type = defaults.Coordinator.Type
	}
	if c.Coordinator.PollInterval == 0 {
		c.Coordinator.PollInterval = defaults.Coordinator.PollInterval
	}
	if c.Coordinator.Concurrency == 0 {
		c.Coordinator.Concurrency = defaults.Coordinator.Concurrency
	}
	if c.Travis.APIURL == "" {
		c.Travis.APIURL = defaults.Travis.APIURL
	}
	if c.Travis.TokenEnv == "" {
		c.Travis.TokenEnv = defaults.Travis.TokenEnv
	}
	if c.filename == "" {
		c.filename = defaults.filename
	}
	return c.validate()
}

func (c *Config) validate() error {
	if err := c.Provider.Validate(); err != nil {
		return &ValidationError{Field: "provider", Message: err.Error()}
	}

	switch c.Coordinator.Type {
	case CoordinatorSolo, CoordinatorTravis:
	case CoordinatorCommand:
		if len(c.Coordinator.Command) == 0 || c.Coordinator.Command[0] == "" {
			return &ValidationError{Field: "coordinator.command", Message: "must name a command when coordinator.type is command"}
		}
	default:
		return &ValidationError{Field: "coordinator.type", Value: c.Coordinator.Type, Message: "must be one of solo, travis, command"}
	}

	if c.Coordinator.PollInterval < 0 {
		return &ValidationError{Field: "coordinator.poll_interval", Value: c.Coordinator.PollInterval.String(), Message: "must be positive"}
	}
	if c.Coordinator.Timeout < 0 {
		return &ValidationError{Field: "coordinator.timeout", Value: c.Coordinator.Timeout.String(), Message: "must not be negative"}
	}
	if c.Coordinator.Concurrency < 1 {
		return &ValidationError{Field: "coordinator.concurrency", Message: "must be at least 1"}
	}

	u, err := url.Parse(c.Travis.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "travis.api_url", Value: c.Travis.APIURL, Message: "must be an http(s) URL"}
	}
	return nil
}
