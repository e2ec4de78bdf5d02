package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/svograph/corpus"
	"github.com/revelaction/svograph/file"
)

func prepareCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "prepare",
		Usage: "split a raw paragraph corpus (name_id,sentence) into a cleaned sentence corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rawfile", Value: file.RawFile, Usage: "name of the raw CSV file in the data directory"},
			&cli.StringFlag{Name: "out", Usage: "name of the sentence CSV file written in the data directory (default <rawfile>_cleaned)"},
			&cli.IntFlag{Name: "min-words", Value: corpus.DefaultMinWords, Usage: "drop sentences with fewer words"},
		},
		Action: func(c *cli.Context) error {
			return e.prepare(c.String("rawfile"), c.String("out"), c.Int("min-words"))
		},
	}
}

func (e *env) prepare(rawFile, out string, minWords int) error {
	if out == "" {
		out = file.Prepared(rawFile)
	}

	src := file.CSV(e.cfg.DataDir, rawFile)
	dst := file.CSV(e.cfg.DataDir, out)

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	paragraphs, err := corpus.ReadParagraphs(f)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	records, err := corpus.Prepare(paragraphs, corpus.PrepareOptions{MinWords: minWords})
	if err != nil {
		return err
	}

	w, err := os.Create(dst)
	if err != nil {
		return err
	}

	if err := corpus.WriteCSV(w, records); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", dst, err)
	}

	if err := w.Close(); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"paragraphs": len(paragraphs),
		"sentences":  len(records),
	}).Debug("Corpus prepared")

	fmt.Fprintf(e.ui.Out, "Wrote %d sentences from %d paragraphs to %s\n", len(records), len(paragraphs), dst)
	return nil
}
