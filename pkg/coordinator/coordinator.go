// Package coordinator defines the contract between the release gate and the
// mechanism that elects one job of a build matrix to release.
package coordinator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ExitCode is the signal a coordinator returns. The values mirror the exit
// status of the travis-after-all tool.
type ExitCode int

const (
	// ExitLeader means every job in the build succeeded and this job is the leader.
	ExitLeader ExitCode = 0
	// ExitOthersFailed means this job is the leader but another job failed.
	ExitOthersFailed ExitCode = 1
	// ExitNotLeader means another job owns the release decision.
	ExitNotLeader ExitCode = 2
	// ExitUnknown is returned when the coordinator produced something that is
	// not an exit code at all.
	ExitUnknown ExitCode = -1
)

func (c ExitCode) String() string {
	switch c {
	case ExitLeader:
		return "leader"
	case ExitOthersFailed:
		return "others-failed"
	case ExitNotLeader:
		return "not-leader"
	case ExitUnknown:
		return "unknown"
	}
	return fmt.Sprintf("exit-%d", int(c))
}

// ParseExitCode parses a decimal exit code. Anything else is ExitUnknown.
func ParseExitCode(s string) ExitCode {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return ExitUnknown
	}
	return ExitCode(n)
}

// Coordinator decides whether this job may release on behalf of the build.
// A non-nil error means the coordinator detected a failure of its own; the
// exit code is then meaningless.
type Coordinator interface {
	Coordinate(ctx context.Context) (ExitCode, error)
}

// Func adapts a plain function to Coordinator.
type Func func(ctx context.Context) (ExitCode, error)

func (f Func) Coordinate(ctx context.Context) (ExitCode, error) {
	return f(ctx)
}

// Solo coordinates builds that only ever run one job, which is therefore
// always the leader.
var Solo Coordinator = Func(func(ctx context.Context) (ExitCode, error) {
	return ExitLeader, nil
})

// WithTimeout bounds every call to c. A zero timeout returns c unchanged.
func WithTimeout(c Coordinator, timeout time.Duration) Coordinator {
	if timeout <= 0 {
		return c
	}
	return Func(func(ctx context.Context) (ExitCode, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return c.Coordinate(ctx)
	})
}
