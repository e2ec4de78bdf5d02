// Package parse gives access to the dependency parses of sentences. The
// parser itself is external; its output is imported into a parsed-sentence
// store and served from there.
package parse

import (
	"errors"
	"fmt"

	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/storage"
)

var ErrNotParsed = errors.New("sentence not parsed")

// Parser returns the dependency parse of a sentence. Implementations must be
// safe for concurrent use.
type Parser interface {
	Parse(text string) (sent.Sentence, error)
}

// StoreParser resolves sentences in a parsed-sentence store by their
// normalized text.
type StoreParser struct {
	store storage.DocReader
}

var _ Parser = (*StoreParser)(nil)

func NewStoreParser(store storage.DocReader) *StoreParser {
	return &StoreParser{store: store}
}

func (p *StoreParser) Parse(text string) (sent.Sentence, error) {
	s, err := p.store.FindByText(sent.Normalize(text))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return sent.Sentence{}, fmt.Errorf("%w: %q", ErrNotParsed, text)
		}
		return sent.Sentence{}, err
	}

	return s, nil
}

// Tree parses the text and builds its tree.
func Tree(p Parser, text string) (*sent.Tree, error) {
	s, err := p.Parse(text)
	if err != nil {
		return nil, err
	}

	return sent.NewTree(s)
}

// MapParser serves sentences from memory, keyed by normalized text.
type MapParser map[string]sent.Sentence

var _ Parser = MapParser(nil)

// Add stores the sentence under its normalized text.
func (m MapParser) Add(s sent.Sentence) {
	m[sent.Normalize(s.SentenceText())] = s
}

func (m MapParser) Parse(text string) (sent.Sentence, error) {
	s, ok := m[sent.Normalize(text)]
	if !ok {
		return sent.Sentence{}, fmt.Errorf("%w: %q", ErrNotParsed, text)
	}

	return s, nil
}
