package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/replicate/releasegate/pkg/config"
	"github.com/replicate/releasegate/pkg/coordinator/setup"
	"github.com/replicate/releasegate/pkg/env"
	"github.com/replicate/releasegate/pkg/gate"
	"github.com/replicate/releasegate/pkg/util/console"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether this run may release",
		Long: `Check whether this run may release.

Exits 0 when the release should go ahead, 2 when it is skipped on purpose
(not on CI, a pull request or tag build, another branch, or another job of
the build matrix is responsible), and 1 when something went wrong.`,
		RunE: checkCommand,
		Args: cobra.NoArgs,
	}

	cmd.Flags().String("branch", "", "Only release from this branch")
	cmd.Flags().String("coordinator", "", "Build coordination: solo, travis or command")
	cmd.Flags().String("coordinator-command", "", "Command to run when --coordinator=command, e.g. travis-after-all")
	cmd.Flags().Duration("timeout", 0, "Give up waiting for other jobs after this long")

	return cmd
}

func checkCommand(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	if err := applyCheckFlags(cmd, cfg); err != nil {
		return err
	}

	return runCheck(ctx, cfg, env.FromOS())
}

// applyCheckFlags overrides the config with any flags that were set.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("branch") {
		if cfg.Branch, err = flags.GetString("branch"); err != nil {
			return err
		}
	}
	if flags.Changed("coordinator") {
		if cfg.Coordinator.Type, err = flags.GetString("coordinator"); err != nil {
			return err
		}
	}
	if flags.Changed("coordinator-command") {
		command, err := flags.GetString("coordinator-command")
		if err != nil {
			return err
		}
		cfg.Coordinator.Command = strings.Fields(command)
	}
	if flags.Changed("timeout") {
		if cfg.Coordinator.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	return cfg.ValidateAndComplete()
}

func runCheck(ctx context.Context, cfg *config.Config, e env.Environment) error {
	c, err := setup.NewCoordinator(cfg, e)
	if err != nil {
		return err
	}

	g := gate.New(c, gate.WithProvider(*cfg.Provider))
	ec := gate.ExecutionContext{
		Env:     e,
		Options: gate.Options{Branch: cfg.Branch},
	}

	console.Debugf("Checking release preconditions with %s coordination", cfg.Coordinator.Type)
	if err := g.Check(ctx, ec); err != nil {
		return err
	}
	console.Output("Release preconditions met")
	return nil
}
