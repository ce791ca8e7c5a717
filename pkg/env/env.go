// Package env gives access to the CI environment as an explicit value, so the
// release gate never has to read process state itself.
package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const ConfigEnvVarName = "RELEASEGATE_CONFIG"
const LogLevelEnvVarName = "RELEASEGATE_LOG_LEVEL"

// Environment maps variable names to values. A missing key means the variable
// is unset, which is different from it being set to the empty string.
type Environment map[string]string

// FromOS snapshots the environment of the current process.
func FromOS() Environment {
	return FromList(os.Environ())
}

// FromList parses KEY=VALUE pairs as returned by os.Environ. Later entries win.
func FromList(pairs []string) Environment {
	e := make(Environment, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			continue
		}
		e[k] = v
	}
	return e
}

func (e Environment) Lookup(name string) (string, bool) {
	v, ok := e[name]
	return v, ok
}

// Get returns the value of name, or the empty string when unset.
func (e Environment) Get(name string) string {
	return e[name]
}

// Truthy reports whether name is set to a value strconv.ParseBool accepts as true.
func (e Environment) Truthy(name string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(e[name]))
	return err == nil && b
}

// List renders the environment as KEY=VALUE pairs for exec.Cmd.Env.
func (e Environment) List() []string {
	out := make([]string, 0, len(e))
	for k, v := range e {
		out = append(out, k+"="+v)
	}
	return out
}

// Provider names the variables a CI service uses to describe the current run.
type Provider struct {
	Name        string `yaml:"name"`
	CI          string `yaml:"ci"`
	PullRequest string `yaml:"pull_request"`
	Tag         string `yaml:"tag"`
	Branch      string `yaml:"branch"`
}

// Travis is the default provider. TRAVIS_PULL_REQUEST holds the literal "false"
// outside pull request builds.
var Travis = Provider{
	Name:        "Travis CI",
	CI:          "TRAVIS",
	PullRequest: "TRAVIS_PULL_REQUEST",
	Tag:         "TRAVIS_TAG",
	Branch:      "TRAVIS_BRANCH",
}

func (p Provider) Validate() error {
	for _, v := range []struct{ field, name string }{
		{"ci", p.CI},
		{"pull_request", p.PullRequest},
		{"tag", p.Tag},
		{"branch", p.Branch},
	} {
		if v.name == "" {
			return fmt.Errorf("provider variable %s must not be empty", v.field)
		}
	}
	return nil
}

// Variables returns the provider variable names in the order the gate checks them.
func (p Provider) Variables() []string {
	return []string{p.CI, p.PullRequest, p.Tag, p.Branch}
}

func ConfigPathFromEnvironment() string {
	return os.Getenv(ConfigEnvVarName)
}

func LogLevelFromEnvironment() string {
	level := os.Getenv(LogLevelEnvVarName)
	if level == "" {
		level = "info"
	}
	return level
}
