package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/svograph/explore"
	"github.com/revelaction/svograph/parse"
	"github.com/revelaction/svograph/pipeline"
	"github.com/revelaction/svograph/render"
)

func exploreCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "explore",
		Usage: "interactive prompt to inspect the extraction of single sentences",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: render.Defaultformat, Usage: "sentence format: all, part or tokens"},
		},
		Action: func(c *cli.Context) error {
			groups, err := e.loadGroups()
			if err != nil {
				return err
			}

			repo, err := e.openStore()
			if err != nil {
				return err
			}

			lex, err := buildLexicon(repo)
			if err != nil {
				return err
			}

			r := render.NewRenderer()
			r.W = e.ui.Out
			r.HasColor = !e.noColor
			r.Format = c.String("format")

			p := pipeline.New(parse.NewStoreParser(repo), groups, lex, e.log)
			return explore.NewHandler(repo, p, r).Run()
		},
	}
}
