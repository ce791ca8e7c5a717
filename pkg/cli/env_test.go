package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/replicate/releasegate/pkg/env"
)

func TestDescribeEnvironment(t *testing.T) {
	lines := describeEnvironment(env.Travis, env.Environment{
		"TRAVIS":              "true",
		"TRAVIS_PULL_REQUEST": "false",
		"TRAVIS_TAG":          "",
	})
	require.Equal(t, []string{
		"Provider: Travis CI",
		"TRAVIS=true",
		"TRAVIS_PULL_REQUEST=false",
		"TRAVIS_TAG=",
		"TRAVIS_BRANCH (unset)",
	}, lines)
}
