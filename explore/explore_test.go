package explore

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/svograph/group"
	"github.com/revelaction/svograph/parse"
	"github.com/revelaction/svograph/pipeline"
	"github.com/revelaction/svograph/render"
	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/sentence/sentencetest"
	"github.com/revelaction/svograph/storage"
)

const attacked = `
the      the    DET   DT   2 det
turks    turk   PROPN NNPS 3 nsubj
attacked attack VERB  VBD  0 ROOT
the      the    DET   DT   5 det
kurds    kurd   PROPN NNPS 3 dobj
`

type docReader struct {
	storage.DocReader
	doc sent.Doc
}

func (d docReader) Read(id int) (sent.Doc, error) {
	if id != d.doc.Id {
		return sent.Doc{}, storage.ErrNotFound
	}
	return d.doc, nil
}

func testHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()

	groups, err := group.NewTable([]group.Group{
		{Name: "kurds", Type: group.InGroup},
		{Name: "turks", Type: group.OutGroup},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	s := sentencetest.Sentence(t, attacked)
	parser := parse.MapParser{}
	parser.Add(s)

	var buf bytes.Buffer
	r := &render.Renderer{W: &buf, Format: "all"}
	dr := docReader{doc: sent.Doc{Id: 1, Sentences: []sent.Sentence{s}}}

	return NewHandler(dr, pipeline.New(parser, groups, nil, nil), r), &buf
}

func TestEvalSentence(t *testing.T) {
	h, buf := testHandler(t)

	if err := h.Eval("the turks attacked the kurds"); err != nil {
		t.Fatalf("Eval: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"the turks attacked the kurds\n", "(the turks, attacked, the kurds)", "(turks, attacked, kurds)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEvalRawToggle(t *testing.T) {
	h, buf := testHandler(t)

	if err := h.Eval(":raw"); err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if h.ShowRaw {
		t.Fatalf("expected raw triples to be hidden")
	}

	buf.Reset()
	if err := h.Eval("the turks attacked the kurds"); err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if strings.Contains(buf.String(), "raw:") {
		t.Errorf("expected no raw triples, got:\n%s", buf.String())
	}
}

func TestEvalReference(t *testing.T) {
	h, buf := testHandler(t)

	if err := h.Eval("1:0"); err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if !strings.Contains(buf.String(), "(turks, attacked, kurds)") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	if err := h.Eval("1:3"); err == nil {
		t.Errorf("expected out of bounds error")
	}

	if err := h.Eval("2:0"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEvalQuit(t *testing.T) {
	h, _ := testHandler(t)

	if err := h.Eval(" quit "); !errors.Is(err, errQuit) {
		t.Fatalf("expected quit, got %v", err)
	}
}

func TestEvalNotParsed(t *testing.T) {
	h, _ := testHandler(t)

	if err := h.Eval("the kurds fled"); !errors.Is(err, parse.ErrNotParsed) {
		t.Fatalf("expected ErrNotParsed, got %v", err)
	}
}

func TestCompleter(t *testing.T) {
	h, _ := testHandler(t)

	buf := prompt.NewBuffer()
	buf.InsertText("the tu", false, true)

	s := h.completer(*buf.Document())
	if len(s) != 1 || s[0].Text != "turks" {
		t.Fatalf("unexpected suggestions %v", s)
	}
}
