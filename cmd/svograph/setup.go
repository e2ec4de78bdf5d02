package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuri/uiprogress"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/svograph/config"
	"github.com/revelaction/svograph/group"
	"github.com/revelaction/svograph/lexicon"
	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/storage"
	"github.com/revelaction/svograph/storage/filesystem"
	"github.com/revelaction/svograph/storage/sqlite/zombiezen"
)

// env holds what the commands share: streams, configuration, logger and
// the SQLite pool, if any.
type env struct {
	ui      UI
	cfg     config.Config
	cfgFile string
	log     *logrus.Logger
	pool    Pool

	quiet   bool
	noColor bool
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "config file (default ./svograph.yaml or ~/.svograph/config.yaml)"},
		&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "file of environment variables loaded at start"},
		&cli.StringFlag{Name: "log-level", Usage: "logging level (debug, info, warn, error)"},
		&cli.StringFlag{Name: "log-format", Usage: "log format (text, json)"},
		&cli.StringFlag{Name: "data_dir", Usage: "input data directory, containing the corpus and group CSV files"},
		&cli.StringFlag{Name: "datafile", Usage: "name of the sentence CSV file, without extension"},
		&cli.StringFlag{Name: "inoutfile", Usage: "name of the in-group/out-group CSV file, without extension"},
		&cli.StringFlag{Name: "save_dir", Usage: "directory of the network tables"},
		&cli.StringFlag{Name: "json_dir", Usage: "directory of the triple store"},
		&cli.StringFlag{Name: "jsonfile", Usage: "name of the triple store file, without extension"},
		&cli.StringFlag{Name: "doc-path", Usage: "parsed-sentence store: a directory or a SQLite file"},
		&cli.IntFlag{Name: "workers", Usage: "sentences processed in parallel (0: number of CPUs)"},
		&cli.BoolFlag{Name: "skip-errors", Usage: "log and skip the sentences that fail to process"},
		&cli.StringFlag{Name: "metrics-file", Usage: "write the run metrics in Prometheus text format to this file"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "no progress bars"},
		&cli.BoolFlag{Name: "no-color", Usage: "no colors in the output"},
	}
}

func (e *env) setup(c *cli.Context) error {
	if err := godotenv.Load(c.String("env-file")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", c.String("env-file"), err)
	}

	cfg, used, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	strs := map[string]*string{
		"log-level":    &cfg.Log.Level,
		"log-format":   &cfg.Log.Format,
		"data_dir":     &cfg.DataDir,
		"datafile":     &cfg.DataFile,
		"inoutfile":    &cfg.InOutFile,
		"save_dir":     &cfg.SaveDir,
		"json_dir":     &cfg.JSONDir,
		"jsonfile":     &cfg.JSONFile,
		"doc-path":     &cfg.DocPath,
		"metrics-file": &cfg.MetricsFile,
	}
	for name, v := range strs {
		if c.IsSet(name) {
			*v = c.String(name)
		}
	}

	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}

	if c.IsSet("skip-errors") {
		cfg.SkipErrors = c.Bool("skip-errors")
	}

	log, err := newLogger(cfg.Log, e.ui)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.cfgFile = used
	e.log = log
	e.quiet = c.Bool("quiet")
	e.noColor = c.Bool("no-color")

	if used != "" {
		log.WithField("file", used).Debug("Using config file")
	}

	return nil
}

func (e *env) close(c *cli.Context) error {
	return e.pool.Close()
}

func newLogger(c config.LogConfig, ui UI) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(ui.Err)

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	switch c.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return nil, fmt.Errorf("invalid log format %q", c.Format)
	}

	return logger, nil
}

// NewDocRepository opens the parsed-sentence store at path: a directory of
// document files or a SQLite database. With create, a missing store is
// created: a SQLite database when the path has a .db, .sqlite or .sqlite3
// extension, a directory otherwise.
func NewDocRepository(p *Pool, path string, create bool) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		if !create || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("repository not found: %s", path)
		}

		if !isSQLitePath(path) {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return nil, err
			}
			return filesystem.NewDocStore(path)
		}

		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	} else if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

func isSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// openStore opens the configured store for reading, preloading a
// filesystem store with a progress bar.
func (e *env) openStore() (storage.DocRepository, error) {
	repo, err := NewDocRepository(&e.pool, e.cfg.DocPath, false)
	if err != nil {
		return nil, err
	}

	pl, ok := repo.(storage.Preloader)
	if !ok {
		return repo, nil
	}

	if e.quiet {
		return repo, pl.Preload(nil)
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(1) // Placeholder, updated in callback
	bar.AppendCompleted()
	bar.PrependElapsed()

	var currentName string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return currentName
	})

	err = pl.Preload(func(current, total int, name string) {
		if bar.Total <= 1 {
			bar.Total = total
		}
		currentName = name
		bar.Set(current)
	})
	uiprogress.Stop()

	if err != nil {
		return nil, err
	}

	return repo, nil
}

// buildLexicon counts the words of every sentence of the store.
func buildLexicon(repo storage.DocReader) (*lexicon.Lexicon, error) {
	lex := lexicon.New()
	err := repo.Walk(func(s sent.Sentence) error {
		lex.Add(s)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("building lexicon: %w", err)
	}

	return lex, nil
}

func (e *env) loadGroups() (*group.Table, error) {
	groups, err := group.LoadFile(e.cfg.InOutPath())
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"file":   e.cfg.InOutPath(),
		"groups": len(groups.Groups()),
	}).Debug("Loaded groups")

	return groups, nil
}

// newBar starts a progress bar, or returns nil when progress is disabled.
func (e *env) newBar(total int) *uiprogress.Bar {
	if e.quiet || total == 0 {
		return nil
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	return bar
}

func stopBar(bar *uiprogress.Bar) {
	if bar != nil {
		uiprogress.Stop()
	}
}
