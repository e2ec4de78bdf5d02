// Package explore is an interactive prompt to inspect the extraction of
// single sentences: tokens, passive phrases, raw and filtered triples.
package explore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/svograph/pipeline"
	"github.com/revelaction/svograph/render"
	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/storage"
)

const (
	quit       = "quit"
	rawCommand = ":raw"
)

var errQuit = errors.New("quit")

type Handler struct {
	DocRepo  storage.DocReader
	Pipeline *pipeline.Pipeline
	Renderer *render.Renderer

	// ShowRaw prints the triples before filtering
	ShowRaw bool
}

func NewHandler(dr storage.DocReader, p *pipeline.Pipeline, r *render.Renderer) *Handler {
	return &Handler{
		DocRepo:  dr,
		Pipeline: p,
		Renderer: r,
		ShowRaw:  true,
	}
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Renderer.W, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, :raw toggle raw triples, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("svograph explore"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Renderer.W, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintln(h.Renderer.W, "Prefix set to "+fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		history = append(history, in)

		err := h.Eval(in)
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			fmt.Fprintf(h.Renderer.W, "Error: %v\n", err)
		}
	}
}

// Eval runs one line of input: a sentence, a "doc:sentence" reference to
// the parsed store, or a command.
func (h *Handler) Eval(in string) error {
	in = strings.TrimSpace(in)

	switch in {
	case "":
		return nil
	case quit:
		return errQuit
	case rawCommand:
		h.ShowRaw = !h.ShowRaw
		fmt.Fprintf(h.Renderer.W, "Raw triples set to %t\n", h.ShowRaw)
		return nil
	}

	text := in
	if docId, sentId, ok := parseRef(in); ok {
		s, err := h.sentence(docId, sentId)
		if err != nil {
			return err
		}
		text = s.SentenceText()
	}

	res, err := h.Pipeline.Process(text)
	if err != nil {
		return err
	}

	h.Renderer.Sentence(res.Sentence, res.Passive.Spans)

	if h.ShowRaw {
		fmt.Fprintln(h.Renderer.W, "  raw:")
		h.Renderer.Triples(res.Raw, "    ")
	}

	fmt.Fprintln(h.Renderer.W, "  filtered:")
	h.Renderer.Triples(res.Triples, "    ")

	return nil
}

func (h *Handler) sentence(docId, sentId int) (sent.Sentence, error) {
	if h.DocRepo == nil {
		return sent.Sentence{}, errors.New("no parsed-sentence store")
	}

	doc, err := h.DocRepo.Read(docId)
	if err != nil {
		return sent.Sentence{}, err
	}

	if sentId < 0 || sentId >= len(doc.Sentences) {
		return sent.Sentence{}, fmt.Errorf("sentence index %d out of bounds (doc has %d sentences)", sentId, len(doc.Sentences))
	}

	return doc.Sentences[sentId], nil
}

// parseRef parses "doc:sentence" references.
func parseRef(in string) (int, int, bool) {
	d, s, found := strings.Cut(in, ":")
	if !found {
		return 0, 0, false
	}

	docId, err := strconv.Atoi(d)
	if err != nil {
		return 0, 0, false
	}

	sentId, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, false
	}

	return docId, sentId, true
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}

	word := in.GetWordBeforeCursor()
	if word == "" {
		return s
	}

	for _, cmd := range []string{quit, rawCommand} {
		if strings.HasPrefix(cmd, word) {
			s = append(s, prompt.Suggest{Text: cmd, Description: "🔧 command"})
		}
	}

	for _, g := range h.Pipeline.Groups.Groups() {
		if strings.HasPrefix(g.Name, word) {
			s = append(s, prompt.Suggest{Text: g.Name, Description: "🔖 " + string(g.Type)})
		}
	}

	return s
}
