package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/svograph/render"
	"github.com/revelaction/svograph/stat"
)

func statCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "stat",
		Usage: "show statistics of the triple store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "triple store file (default from the configuration)"},
			&cli.IntFlag{Name: "top", Value: 10, Usage: "number of verbs shown"},
			&cli.BoolFlag{Name: "docs", Usage: "add the token statistics of the parsed-sentence store"},
		},
		Action: func(c *cli.Context) error {
			path := c.String("file")
			if path == "" {
				path = e.cfg.JSONPath()
			}
			return e.stat(path, c.Int("top"), c.Bool("docs"))
		},
	}
}

func (e *env) stat(path string, top int, docs bool) error {
	records, err := render.ReadRecordsFile(path)
	if err != nil {
		return err
	}

	hdl := stat.NewHandler()
	for _, r := range records {
		hdl.Aggregate(r)
	}

	if docs {
		repo, err := e.openStore()
		if err != nil {
			return err
		}

		list, err := repo.List("")
		if err != nil {
			return err
		}

		for _, d := range list {
			doc, err := repo.Read(d.Id)
			if err != nil {
				return err
			}
			hdl.AggregateDoc(doc)
		}
	}

	stats := hdl.Get()
	fmt.Fprintf(e.ui.Out, "Num sentences %d, num triples %d, negated %d, triples per sentence %.2f\n",
		stats.NumSentences, stats.NumTriples, stats.NumNegated, stats.TriplesPerSentenceMean)

	sizes := make([]int, 0, len(stats.TriplesPerSentenceDis))
	for k := range stats.TriplesPerSentenceDis {
		sizes = append(sizes, k)
	}
	sort.Ints(sizes)
	for _, k := range sizes {
		fmt.Fprintf(e.ui.Out, "  %3d triples: %d sentences\n", k, stats.TriplesPerSentenceDis[k])
	}

	if docs {
		fmt.Fprintf(e.ui.Out, "Num tokens %d, num tokens per sentence %d\n", stats.NumTokens, stats.TokensPerSentenceMean)
	}

	fmt.Fprintln(e.ui.Out, "Top verbs:")
	for _, c := range stats.TopVerbs(top) {
		fmt.Fprintf(e.ui.Out, "  %-20s %d\n", c.Key, c.N)
	}

	return nil
}
