// Package travis elects a build leader among the jobs of a Travis CI build
// matrix by polling the Travis API.
//
// The leader is the job with the lowest job number that is not allowed to
// fail. It waits until every other job that is not allowed to fail has
// finished and reports whether they all passed. Every other job reports that
// it is not the leader straight away.
package travis

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-version"
	"golang.org/x/sync/errgroup"

	"github.com/replicate/releasegate/pkg/coordinator"
	"github.com/replicate/releasegate/pkg/env"
	"github.com/replicate/releasegate/pkg/util/console"
)

const BuildIDEnvVarName = "TRAVIS_BUILD_ID"
const JobNumberEnvVarName = "TRAVIS_JOB_NUMBER"

// Options tune polling. Concurrency limits how many jobs are polled at once.
type Options struct {
	PollInterval time.Duration
	Concurrency  int
}

type Leader struct {
	client *Client
	env    env.Environment
	opts   Options
}

var _ coordinator.Coordinator = (*Leader)(nil)

func NewLeader(client *Client, e env.Environment, opts Options) *Leader {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Leader{client: client, env: e, opts: opts}
}

func (l *Leader) Coordinate(ctx context.Context) (coordinator.ExitCode, error) {
	buildID := l.env.Get(BuildIDEnvVarName)
	if buildID == "" {
		return coordinator.ExitUnknown, fmt.Errorf("%s is not set", BuildIDEnvVarName)
	}
	jobNumber := l.env.Get(JobNumberEnvVarName)
	if jobNumber == "" {
		return coordinator.ExitUnknown, fmt.Errorf("%s is not set", JobNumberEnvVarName)
	}

	jobs, err := l.client.BuildJobs(ctx, buildID)
	if err != nil {
		return coordinator.ExitUnknown, err
	}

	leader, err := electLeader(jobs)
	if err != nil {
		return coordinator.ExitUnknown, err
	}
	if leader.Number != jobNumber {
		console.Infof("Job %s is the build leader, not job %s", leader.Number, jobNumber)
		return coordinator.ExitNotLeader, nil
	}
	console.Infof("Job %s is the build leader", jobNumber)

	var siblings []Job
	for _, job := range jobs {
		if job.Number == jobNumber || job.AllowFailure {
			continue
		}
		siblings = append(siblings, job)
	}

	if err := l.waitForJobs(ctx, siblings); err != nil {
		return coordinator.ExitUnknown, err
	}

	for _, job := range siblings {
		if job.State != StatePassed {
			console.Warnf("Job %s finished as %s", job.Number, job.State)
			return coordinator.ExitOthersFailed, nil
		}
	}
	return coordinator.ExitLeader, nil
}

// waitForJobs polls jobs in place until all of them have finished.
func (l *Leader) waitForJobs(ctx context.Context, jobs []Job) error {
	for {
		pending := 0
		for _, job := range jobs {
			if !job.Finished() {
				pending++
			}
		}
		if pending == 0 {
			return nil
		}
		console.Debugf("Waiting for %d other job(s) to finish", pending)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.PollInterval):
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(l.opts.Concurrency)
		for i := range jobs {
			if jobs[i].Finished() {
				continue
			}
			g.Go(func() error {
				job, err := l.client.Job(gctx, jobs[i].ID)
				if err != nil {
					return err
				}
				jobs[i].State = job.State
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
}

// electLeader picks the job with the lowest job number among the jobs that
// may not fail, or among all jobs if every job may fail.
func electLeader(jobs []Job) (*Job, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("build has no jobs")
	}

	candidates := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if !job.AllowFailure {
			candidates = append(candidates, job)
		}
	}
	if len(candidates) == 0 {
		candidates = jobs
	}

	var leader *Job
	var lowest *version.Version
	for i, job := range candidates {
		// Job numbers look like "<build>.<job>", and "12.10" comes after "12.9".
		v, err := version.NewVersion(job.Number)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse job number %q: %w", job.Number, err)
		}
		if lowest == nil || v.LessThan(lowest) {
			lowest = v
			leader = &candidates[i]
		}
	}
	return leader, nil
}
