package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/jdkato/prose/v2"
)

const DefaultMinWords = 3

// Paragraph is a row of the raw corpus: a text and the id of its source.
type Paragraph struct {
	NameID string
	Text   string
}

// Splitter splits a paragraph into sentences.
type Splitter interface {
	Split(text string) ([]string, error)
}

// ProseSplitter splits sentences with the prose segmenter.
type ProseSplitter struct{}

func (ProseSplitter) Split(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, err
	}

	sentences := []string{}
	for _, s := range doc.Sentences() {
		sentences = append(sentences, s.Text)
	}

	return sentences, nil
}

type PrepareOptions struct {
	// MinWords drops the sentences with less words
	MinWords int

	Splitter Splitter
}

var (
	alnum    = regexp.MustCompile(`[a-zA-Z0-9]`)
	alpha    = regexp.MustCompile(`[a-zA-Z]`)
	brackets = regexp.MustCompile(`(\}|\{|\]|\[|\)|\()`)
	hashAmp  = regexp.MustCompile(`(#|&)`)
	dots     = regexp.MustCompile(`(\. |\.){2,}`)
	dashes   = regexp.MustCompile(`(-( )?|_( )?){2,}`)
)

// ReadParagraphs reads the raw corpus, a CSV with name_id and sentence
// columns.
func ReadParagraphs(r io.Reader) ([]Paragraph, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading corpus header: %w", err)
	}

	cols := columns(header)
	nameCol, okName := cols["name_id"]
	textCol, okText := cols["sentence"]
	if !okName || !okText {
		return nil, errors.New("raw corpus must have name_id and sentence columns")
	}

	paragraphs := []Paragraph{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if nameCol >= len(row) || textCol >= len(row) {
			continue
		}

		paragraphs = append(paragraphs, Paragraph{NameID: row[nameCol], Text: row[textCol]})
	}

	return paragraphs, nil
}

// Prepare turns raw paragraphs into numbered sentence records: whitespace is
// collapsed, paragraphs are split into sentences, sentences without letters
// are dropped, brackets and runs of dots or dashes are cleaned, and short or
// repeated sentences are dropped. Ids start at 1.
func Prepare(paragraphs []Paragraph, opts PrepareOptions) ([]Record, error) {
	if opts.Splitter == nil {
		opts.Splitter = ProseSplitter{}
	}

	if opts.MinWords <= 0 {
		opts.MinWords = DefaultMinWords
	}

	records := []Record{}
	seen := map[string]struct{}{}
	id := 1

	for _, p := range paragraphs {
		text := collapse(p.Text)
		if text == "" {
			continue
		}

		sentences, err := opts.Splitter.Split(text)
		if err != nil {
			return nil, fmt.Errorf("splitting paragraph %s: %w", p.NameID, err)
		}

		for _, s := range sentences {
			s = keep(alnum, s)
			s = keep(alpha, s)
			if s == "" {
				continue
			}

			s = exclean(s)
			if len(strings.Fields(s)) < opts.MinWords {
				continue
			}

			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}

			records = append(records, Record{ID: strconv.Itoa(id), PID: p.NameID, Sentence: s})
			id++
		}
	}

	return records, nil
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// keep returns the collapsed sentence if it matches re, empty otherwise.
func keep(re *regexp.Regexp, s string) string {
	if !re.MatchString(s) {
		return ""
	}

	return collapse(s)
}

func exclean(s string) string {
	s = brackets.ReplaceAllString(s, " ")
	s = hashAmp.ReplaceAllString(s, " ")
	s = dots.ReplaceAllString(s, ".")
	s = dashes.ReplaceAllString(s, "-")
	return collapse(s)
}
