package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "svograph: %v\n", err)
}

func newApp(ui UI) *cli.App {
	e := &env{ui: ui}

	return &cli.App{
		Name:      "svograph",
		Usage:     "extract subject-verb-object relations between groups and build their network",
		Version:   BuildTag,
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags:     globalFlags(),
		Before:    e.setup,
		After:     e.close,
		// errors are printed once, by main
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			prepareCommand(e),
			importCommand(e),
			extractCommand(e),
			networkCommand(e),
			sentenceCommand(e),
			statCommand(e),
			exploreCommand(e),
			configCommand(e),
			versionCommand(e),
		},
	}
}
