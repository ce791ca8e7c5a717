package main

import (
	"os"

	"github.com/replicate/releasegate/pkg/cli"
	"github.com/replicate/releasegate/pkg/errors"
	"github.com/replicate/releasegate/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	err = cmd.Execute()
	switch {
	case err == nil:
	case errors.IsExclusion(err):
		console.Infof("Not releasing: %s (%s)", err, errors.Code(err))
	default:
		console.Errorf("%s", err)
	}
	os.Exit(cli.ExitCode(err))
}
