package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/storage"
)

const (
	JSONExt  = ".json"
	CoNLLExt = ".conllu"
)

// DocStore is a directory of parsed documents: JSON docs (*.json) and
// CoNLL-U files (*.conllu). Content is loaded in memory on first use.
type DocStore struct {
	docDir string

	mu sync.Mutex

	// In-memory cache
	docs   []sent.Doc
	loaded []bool
	all    bool

	// normalized text to sentence position
	byText map[string][2]int
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. Doc ids are the position
// of the file in the directory listing.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	h := &DocStore{
		docDir: docDir,
		byText: map[string][2]int{},
	}

	for _, file := range files {
		if file.IsDir() || !isDocFile(file.Name()) {
			continue
		}

		h.docs = append(h.docs, sent.Doc{
			Id:    len(h.docs),
			Title: file.Name(),
		})
		h.loaded = append(h.loaded, false)
	}

	return h, nil
}

func isDocFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == JSONExt || ext == CoNLLExt
}

// Preload loads all docs into memory.
// The callback is called for each file loaded.
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.loadAll(cb)
}

func (h *DocStore) loadAll(cb func(current, total int, name string)) error {
	if h.all {
		return nil
	}

	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(i+1, total, h.docs[i].Title)
		}

		if err := h.load(i); err != nil {
			return err
		}
	}

	h.all = true
	return nil
}

func (h *DocStore) load(id int) error {
	if h.loaded[id] {
		return nil
	}

	doc := &h.docs[id]
	fullDoc, err := ReadDoc(filepath.Join(h.docDir, doc.Title))
	if err != nil {
		return err
	}

	doc.Labels = fullDoc.Labels
	doc.Sentences = fullDoc.Sentences
	h.index(id)
	h.loaded[id] = true
	return nil
}

// index sets the sentence ids and adds the sentences to the text index.
func (h *DocStore) index(id int) {
	doc := &h.docs[id]
	for i := range doc.Sentences {
		s := &doc.Sentences[i]
		s.Id = i
		s.DocId = id
		for j := range s.Tokens {
			s.Tokens[j].SentenceId = i
		}

		norm := sent.Normalize(s.SentenceText())
		if _, ok := h.byText[norm]; !ok {
			h.byText[norm] = [2]int{id, i}
		}
	}
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if labelMatch != "" {
		if err := h.loadAll(nil); err != nil {
			return nil, err
		}
	}

	docs := []sent.Doc{}
	for _, d := range h.docs {
		if labelMatch != "" && !hasLabel(d.Labels, labelMatch) {
			continue
		}

		docs = append(docs, sent.Doc{Id: d.Id, Title: d.Title, Labels: d.Labels})
	}

	return docs, nil
}

func hasLabel(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d: %w", id, storage.ErrNotFound)
	}

	if err := h.load(id); err != nil {
		return sent.Doc{}, err
	}

	return h.docs[id], nil
}

func (h *DocStore) FindByText(norm string) (sent.Sentence, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.loadAll(nil); err != nil {
		return sent.Sentence{}, err
	}

	pos, ok := h.byText[norm]
	if !ok {
		return sent.Sentence{}, storage.ErrNotFound
	}

	return h.docs[pos[0]].Sentences[pos[1]], nil
}

func (h *DocStore) Walk(fn func(sent.Sentence) error) error {
	h.mu.Lock()
	if err := h.loadAll(nil); err != nil {
		h.mu.Unlock()
		return err
	}
	docs := h.docs
	h.mu.Unlock()

	for _, d := range docs {
		for _, s := range d.Sentences {
			if err := fn(s); err != nil {
				return err
			}
		}
	}

	return nil
}

// Write stores the doc as a JSON file named after its title.
func (h *DocStore) Write(doc sent.Doc) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := docFileName(doc.Title)
	for _, d := range h.docs {
		if d.Title == name {
			return 0, fmt.Errorf("doc %s already exists", name)
		}
	}

	id := len(h.docs)
	doc.Id = id
	doc.Title = name

	data, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(filepath.Join(h.docDir, name), data, 0644); err != nil {
		return 0, err
	}

	h.docs = append(h.docs, doc)
	h.loaded = append(h.loaded, true)
	h.index(id)
	return id, nil
}

func docFileName(title string) string {
	base := filepath.Base(title)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "doc"
	}
	return base + JSONExt
}

// ReadDoc reads a Doc from a JSON or CoNLL-U file.
func ReadDoc(path string) (sent.Doc, error) {
	if filepath.Ext(path) == CoNLLExt {
		return readCoNLLDoc(path)
	}

	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error in %s: %w", path, err)
	}

	return doc, nil
}

func readCoNLLDoc(path string) (sent.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	sentences, err := sent.ReadCoNLL(f)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("CoNLL-U decoding error in %s: %w", path, err)
	}

	return sent.Doc{Title: filepath.Base(path), Sentences: sentences}, nil
}
