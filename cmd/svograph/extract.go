package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/svograph/corpus"
	"github.com/revelaction/svograph/metrics"
	"github.com/revelaction/svograph/parse"
	"github.com/revelaction/svograph/pipeline"
	"github.com/revelaction/svograph/render"
)

func extractCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "extract the triples relating two groups from the sentence corpus into the triple store",
		Action: func(c *cli.Context) error {
			return e.extract(c.Context)
		},
	}
}

func (e *env) extract(ctx context.Context) (err error) {
	groups, err := e.loadGroups()
	if err != nil {
		return err
	}

	records, err := corpus.ReadFile(e.cfg.DataPath())
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

	m := metrics.New()
	p := pipeline.New(parse.NewStoreParser(repo), groups, lex, e.log)
	p.Workers = e.cfg.Workers
	p.SkipErrors = e.cfg.SkipErrors
	p.Metrics = m

	mentioned := 0
	for _, r := range records {
		if groups.Mentioned(corpus.Clean(r.Sentence)) {
			mentioned++
		}
	}

	bar := e.newBar(mentioned)
	if bar != nil {
		p.Progress = func(done, total int) {
			bar.Incr()
		}
	}

	if err := os.MkdirAll(e.cfg.JSONDir, 0o755); err != nil {
		stopBar(bar)
		return err
	}

	out, err := os.Create(e.cfg.JSONPath())
	if err != nil {
		stopBar(bar)
		return err
	}

	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	summary, err := p.Run(ctx, records, render.NewRecordWriter(out))
	stopBar(bar)
	if err != nil {
		return err
	}

	if e.cfg.MetricsFile != "" {
		if err := m.WriteFile(e.cfg.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	fmt.Fprintf(e.ui.Out, "Sentences: %d, with groups: %d, not parsed: %d, failed: %d\n",
		summary.Sentences, summary.Mentioned, summary.NotParsed, summary.Failed)
	fmt.Fprintf(e.ui.Out, "Triples: %d extracted, %d kept, %d sentences written to %s\n",
		summary.RawTriples, summary.Triples, summary.Written, e.cfg.JSONPath())

	return nil
}
