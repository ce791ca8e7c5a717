package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/replicate/releasegate/pkg/env"
	"github.com/replicate/releasegate/pkg/global"
	"github.com/replicate/releasegate/pkg/util/console"
)

var configFlag string
var logLevelFlag string

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "releasegate",
		Short:   "Decide whether this CI run should publish a release",
		Version: versionString(),
		// This stops errors being printed because we print them in cmd/releasegate/main.go
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := console.ParseLevel(logLevelFlag)
			if err != nil {
				return fmt.Errorf("Invalid log level %q, expected one of %s", logLevelFlag, console.LevelNames())
			}
			if global.Verbose {
				level = console.DebugLevel
			}
			console.SetLevel(level)
			cmd.SilenceUsage = true
			return nil
		},
		SilenceErrors: true,
	}
	setPersistentFlags(&rootCmd)

	rootCmd.AddCommand(
		newCheckCommand(),
		newEnvCommand(),
	)

	return &rootCmd, nil
}

func versionString() string {
	if global.Commit == "" {
		return fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime)
	}
	return fmt.Sprintf("%s (%s, built %s)", global.Version, global.Commit, global.BuildTime)
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", env.LogLevelFromEnvironment(), "Log level: "+console.LevelNames())
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the config file, defaults to the nearest "+global.ConfigFilename)
}
