package storage

import (
	"errors"

	sent "github.com/revelaction/svograph/sentence"
)

var ErrNotFound = errors.New("not found")

// DocReader defines read operations for the parsed-sentence storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Sentences) is not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindByText returns the first parsed sentence whose normalized text
	// (see sentence.Normalize) equals norm. It returns ErrNotFound if there
	// is none.
	FindByText(norm string) (sent.Sentence, error)

	// Walk calls fn for every sentence, in storage order. An error returned
	// by fn stops the walk and is returned.
	Walk(fn func(sent.Sentence) error) error
}

// DocWriter defines write operations for the parsed-sentence storage
type DocWriter interface {
	// Write persists a document and its sentences. It returns the id of the
	// stored document.
	Write(doc sent.Doc) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}
