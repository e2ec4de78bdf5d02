package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func versionCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the version",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(e.ui.Out, "svograph version %s (commit: %s)\n", BuildTag, BuildCommit)
			return nil
		},
	}
}
