// Package command coordinates through an external program, such as the
// travis-after-all CLI, whose exit status is the coordinator exit code.
package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/replicate/releasegate/pkg/coordinator"
	"github.com/replicate/releasegate/pkg/env"
	"github.com/replicate/releasegate/pkg/shell"
	"github.com/replicate/releasegate/pkg/util/console"
)

// waitDelay bounds how long Wait holds on to the child's pipes once ctx is
// done, for example when a grandchild still has them open.
const waitDelay = 2 * time.Second

type Command struct {
	args []string
	env  env.Environment
}

var _ coordinator.Coordinator = (*Command)(nil)

// New runs args with e as its entire environment.
func New(args []string, e env.Environment) *Command {
	return &Command{args: args, env: e}
}

func (c *Command) Coordinate(ctx context.Context) (coordinator.ExitCode, error) {
	if len(c.args) == 0 {
		return coordinator.ExitUnknown, errors.New("no coordinator command configured")
	}

	cmd := exec.CommandContext(ctx, c.args[0], c.args[1:]...)
	cmd.Env = c.env.List()
	cmd.WaitDelay = waitDelay

	name := c.args[0]
	logLine := func(args ...interface{}) {
		console.Debugf("%s: %s", name, fmt.Sprint(args...))
	}
	stdoutDone, err := shell.PipeTo(cmd.StdoutPipe, logLine)
	if err != nil {
		return coordinator.ExitUnknown, err
	}
	stderrDone, err := shell.PipeTo(cmd.StderrPipe, logLine)
	if err != nil {
		return coordinator.ExitUnknown, err
	}

	console.Debugf("Running %s", strings.Join(c.args, " "))
	if err := cmd.Start(); err != nil {
		return coordinator.ExitUnknown, fmt.Errorf("Failed to start %s: %w", name, err)
	}

	drained := make(chan struct{})
	go func() {
		<-stdoutDone
		<-stderrDone
		close(drained)
	}()
	// Once ctx is done the output is no longer interesting and Wait closes
	// the pipes itself.
	select {
	case <-drained:
	case <-ctx.Done():
	}

	err = cmd.Wait()
	if err == nil {
		return coordinator.ExitLeader, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return coordinator.ExitUnknown, err
	}
	if ctx.Err() != nil {
		return coordinator.ExitUnknown, ctx.Err()
	}
	// -1 when the process was killed by a signal.
	if exitErr.ExitCode() < 0 {
		return coordinator.ExitUnknown, nil
	}
	return coordinator.ExitCode(exitErr.ExitCode()), nil
}
