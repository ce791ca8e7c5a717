package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/replicate/releasegate/pkg/config"
	"github.com/replicate/releasegate/pkg/env"
	"github.com/replicate/releasegate/pkg/util/console"
)

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show the CI variables the release check reads",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}
			for _, line := range describeEnvironment(*cfg.Provider, env.FromOS()) {
				console.Output(line)
			}
			return nil
		},
		Args: cobra.NoArgs,
	}
}

func describeEnvironment(p env.Provider, e env.Environment) []string {
	lines := []string{"Provider: " + p.Name}
	for _, name := range p.Variables() {
		value, ok := e.Lookup(name)
		if !ok {
			lines = append(lines, fmt.Sprintf("%s (unset)", name))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s=%s", name, value))
	}
	return lines
}
