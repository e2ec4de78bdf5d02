package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/svograph/storage/filesystem"
)

func importCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import parsed documents (CoNLL-U or JSON) into the parsed-sentence store",
		ArgsUsage: "FILE|DIR...",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "label", Usage: "label added to every imported doc"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("import needs at least one file or directory")
			}
			return e.importDocs(c.Args().Slice(), c.StringSlice("label"))
		},
	}
}

func (e *env) importDocs(args []string, labels []string) error {
	paths, err := docFiles(args)
	if err != nil {
		return err
	}

	dst, err := NewDocRepository(&e.pool, e.cfg.DocPath, true)
	if err != nil {
		return err
	}

	bar := e.newBar(len(paths))

	count, sentences := 0, 0
	for _, path := range paths {
		doc, err := filesystem.ReadDoc(path)
		if err != nil {
			stopBar(bar)
			return fmt.Errorf("failed to read doc %s: %w", path, err)
		}

		if doc.Title == "" {
			doc.Title = filepath.Base(path)
		}
		doc.Labels = append(doc.Labels, labels...)

		id, err := dst.Write(doc)
		if err != nil {
			stopBar(bar)
			return fmt.Errorf("failed to write doc %s: %w", path, err)
		}

		e.log.WithField("doc", id).WithField("sentences", len(doc.Sentences)).Debug("Imported " + path)

		count++
		sentences += len(doc.Sentences)
		if bar != nil {
			bar.Incr()
		}
	}
	stopBar(bar)

	fmt.Fprintf(e.ui.Out, "Successfully imported %d docs (%d sentences) to %s\n", count, sentences, e.cfg.DocPath)
	return nil
}

// docFiles expands directories into their *.conllu and *.json files, sorted
// by name.
func docFiles(args []string) ([]string, error) {
	paths := []string{}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}

		found := []string{}
		for _, entry := range entries {
			ext := filepath.Ext(entry.Name())
			if entry.IsDir() || (ext != filesystem.CoNLLExt && ext != filesystem.JSONExt) {
				continue
			}
			found = append(found, filepath.Join(arg, entry.Name()))
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}

	return paths, nil
}
