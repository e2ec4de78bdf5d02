package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func configCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "configuration commands",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the effective configuration",
				Action: func(c *cli.Context) error {
					out, err := e.cfg.YAML()
					if err != nil {
						return err
					}

					if e.cfgFile != "" {
						fmt.Fprintf(e.ui.Out, "# %s\n", e.cfgFile)
					}
					_, err = e.ui.Out.Write(out)
					return err
				},
			},
		},
	}
}
