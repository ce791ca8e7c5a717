// Package gate decides whether a CI run may go on to publish a release.
//
// The decision is a short chain of checks against the CI environment. The
// first failing check wins and is reported as an errors.BlockedError. When all
// environment checks pass, a coordinator is asked whether this job is the
// leader of its build matrix.
package gate

import (
	"context"
	stderrors "errors"

	"github.com/replicate/releasegate/pkg/coordinator"
	"github.com/replicate/releasegate/pkg/env"
	"github.com/replicate/releasegate/pkg/errors"
)

// Options are the user supplied release settings the gate honours.
type Options struct {
	// Branch restricts releases to a single branch. Empty allows any branch.
	Branch string
}

// ExecutionContext is everything the gate knows about a run. It is never
// modified by the gate.
type ExecutionContext struct {
	Env     env.Environment
	Options Options
}

// ErrNoCoordinator is the outcome of a gate built without a coordinator once
// the environment checks pass.
var ErrNoCoordinator = stderrors.New("no build coordinator configured")

type Gate struct {
	provider    env.Provider
	coordinator coordinator.Coordinator
}

type Option func(*Gate)

// WithProvider sets the names of the environment variables the gate reads.
func WithProvider(p env.Provider) Option {
	return func(g *Gate) {
		g.provider = p
	}
}

// New returns a gate that asks c whether this job may release. A nil c
// reports ErrNoCoordinator instead of releasing.
func New(c coordinator.Coordinator, opts ...Option) *Gate {
	if c == nil {
		c = coordinator.Func(func(ctx context.Context) (coordinator.ExitCode, error) {
			return coordinator.ExitUnknown, ErrNoCoordinator
		})
	}
	g := &Gate{
		provider:    env.Travis,
		coordinator: c,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate runs the checks and calls done exactly once with the outcome: nil
// to proceed, an errors.BlockedError, or an error of the coordinator itself.
//
// Environment checks run on the calling goroutine, so done may be called
// before Evaluate returns. The coordinator runs on its own goroutine and done
// is called from there. Evaluate has no timeout; cancel ctx to stop a
// coordinator that waits on other jobs.
func (g *Gate) Evaluate(ctx context.Context, ec ExecutionContext, done func(error)) {
	if err := g.checkEnvironment(ec); err != nil {
		done(err)
		return
	}

	go func() {
		done(classify(g.coordinator.Coordinate(ctx)))
	}()
}

// Check is the blocking form of Evaluate. It returns ctx.Err() if ctx ends
// before the outcome is known.
func (g *Gate) Check(ctx context.Context, ec ExecutionContext) error {
	result := make(chan error, 1)
	g.Evaluate(ctx, ec, func(err error) {
		result <- err
	})

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gate) checkEnvironment(ec ExecutionContext) error {
	p := g.provider

	if !ec.Env.Truthy(p.CI) {
		return errors.NotInCI(p.Name)
	}

	if pr, ok := ec.Env.Lookup(p.PullRequest); ok && pr != "false" {
		return errors.IsPullRequest(pr)
	}

	if tag := ec.Env.Get(p.Tag); tag != "" {
		return errors.IsTag(tag)
	}

	if want := ec.Options.Branch; want != "" {
		if got := ec.Env.Get(p.Branch); got != want {
			return errors.BranchMismatch(want, got)
		}
	}

	return nil
}

// classify maps the result of a coordinator onto an outcome. Coordinator
// errors are returned as they are.
func classify(code coordinator.ExitCode, err error) error {
	if err != nil {
		return err
	}

	switch code {
	case coordinator.ExitLeader:
		return nil
	case coordinator.ExitOthersFailed:
		return errors.SiblingJobsFailed()
	case coordinator.ExitNotLeader:
		return errors.NotBuildLeader()
	}
	return errors.CoordinationFailure(code)
}
