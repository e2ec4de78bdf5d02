package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/svograph/parse"
	"github.com/revelaction/svograph/pipeline"
	"github.com/revelaction/svograph/render"
	sent "github.com/revelaction/svograph/sentence"
)

func sentenceCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "show the tokens, passive phrases and triples of one parsed sentence",
		ArgsUsage: "DOC SENT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Usage: "look the sentence up by its text instead of DOC SENT"},
		},
		Action: func(c *cli.Context) error {
			return e.sentence(c)
		},
	}
}

func (e *env) sentence(c *cli.Context) error {
	groups, err := e.loadGroups()
	if err != nil {
		return err
	}

	repo, err := e.openStore()
	if err != nil {
		return err
	}

	text := c.String("text")
	if text == "" {
		if c.NArg() != 2 {
			return errors.New("sentence needs DOC and SENT arguments, or --text")
		}

		docId, err := strconv.Atoi(c.Args().Get(0))
		if err != nil {
			return fmt.Errorf("invalid doc id %q", c.Args().Get(0))
		}

		sentId, err := strconv.Atoi(c.Args().Get(1))
		if err != nil {
			return fmt.Errorf("invalid sentence id %q", c.Args().Get(1))
		}

		doc, err := repo.Read(docId)
		if err != nil {
			return err
		}

		if sentId < 0 || sentId >= len(doc.Sentences) {
			return fmt.Errorf("sentence index %d out of bounds (0-%d)", sentId, len(doc.Sentences)-1)
		}

		text = doc.Sentences[sentId].SentenceText()
	}

	lex, err := buildLexicon(repo)
	if err != nil {
		return err
	}

	p := pipeline.New(parse.NewStoreParser(repo), groups, lex, e.log)
	res, err := p.Process(text)
	if err != nil {
		return err
	}

	r := render.NewRenderer()
	r.W = e.ui.Out
	r.HasColor = !e.noColor
	r.Format = "tokens"

	r.Sentence(res.Sentence, res.Passive.Spans)
	for i, phrase := range res.Passive.Phrases {
		span := res.Passive.Spans[i]
		fmt.Fprintf(e.ui.Out, "passive: %q [%d-%d]\n", sent.JoinText(phrase), span.Start, span.End)
	}

	fmt.Fprintln(e.ui.Out, "raw:")
	r.Triples(res.Raw, "  ")
	fmt.Fprintln(e.ui.Out, "filtered:")
	r.Triples(res.Triples, "  ")

	return nil
}
