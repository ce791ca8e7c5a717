package cli

import (
	"github.com/replicate/releasegate/pkg/errors"
)

// Exit codes returned by the releasegate CLI.
const (
	// ExitProceed means the release should go ahead.
	ExitProceed = 0

	// ExitFailure means the check itself failed: bad config, an unreachable
	// CI API, or a coordinator that misbehaved.
	ExitFailure = 1

	// ExitBlocked means the release was skipped on purpose.
	ExitBlocked = 2
)

func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitProceed
	case errors.IsExclusion(err):
		return ExitBlocked
	}
	return ExitFailure
}
