package zombiezen

import (
	"errors"
	"path/filepath"
	"testing"

	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/storage"
)

func newStore(t *testing.T) *DocStore {
	t.Helper()

	pool, err := Open(filepath.Join(t.TempDir(), "svograph.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return NewDocStore(pool)
}

func testDoc(title string, texts ...string) sent.Doc {
	doc := sent.Doc{Title: title, Labels: []string{"news", "isis"}}
	for _, text := range texts {
		doc.Sentences = append(doc.Sentences, sent.Sentence{
			Text:   text,
			Tokens: []sent.Token{{Text: text, Lemma: text, Pos: "NOUN", Dep: "ROOT"}},
		})
	}
	return doc
}

func TestDocStoreWriteRead(t *testing.T) {
	store := newStore(t)

	id, err := store.Write(testDoc("a", "The rebels  fled", "they attacked"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := store.Read(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "a" || len(doc.Sentences) != 2 || len(doc.Labels) != 2 {
		t.Fatalf("unexpected doc %+v", doc)
	}

	if doc.Sentences[1].Id != 1 || doc.Sentences[1].DocId != id {
		t.Errorf("unexpected sentence ids %d %d", doc.Sentences[1].Id, doc.Sentences[1].DocId)
	}

	if _, err := store.Read(id + 10); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocStoreDuplicateTitle(t *testing.T) {
	store := newStore(t)

	if _, err := store.Write(testDoc("a", "x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Write(testDoc("a", "y")); err == nil {
		t.Fatalf("expected error for duplicated title")
	}

	// the failed write is rolled back
	if _, err := store.FindByText("y"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocStoreFindByText(t *testing.T) {
	store := newStore(t)

	if _, err := store.Write(testDoc("a", "The rebels  fled")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := store.FindByText("the rebels fled")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Text != "The rebels  fled" {
		t.Errorf("unexpected sentence %q", s.Text)
	}

	if _, err := store.FindByText("nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocStoreListWalk(t *testing.T) {
	store := newStore(t)

	if _, err := store.Write(testDoc("a", "one", "two")); err != nil {
		t.Fatal(err)
	}
	other := testDoc("b", "three")
	other.Labels = []string{"sports"}
	if _, err := store.Write(other); err != nil {
		t.Fatal(err)
	}

	docs, err := store.List("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}

	docs, err = store.List("isis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "a" {
		t.Fatalf("unexpected docs %v", docs)
	}

	var texts []string
	err = store.Walk(func(s sent.Sentence) error {
		texts = append(texts, s.Text)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(texts) != 3 || texts[0] != "one" || texts[2] != "three" {
		t.Fatalf("unexpected walk %v", texts)
	}

	stop := errors.New("stop")
	n := 0
	err = store.Walk(func(s sent.Sentence) error {
		n++
		return stop
	})
	if !errors.Is(err, stop) || n != 1 {
		t.Errorf("expected walk to stop after the first sentence, got %v after %d", err, n)
	}
}
