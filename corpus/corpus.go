// Package corpus reads, writes and prepares the sentence corpus.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Record is a sentence of the corpus. PID groups the sentences of the same
// source document.
type Record struct {
	ID       string
	PID      string
	Sentence string
}

var (
	whitespace   = regexp.MustCompile(`[ \t\n\r\f\v]+`)
	spacedHyphen = regexp.MustCompile(` - `)
	quotes       = strings.NewReplacer("“", `"`, "”", `"`, "‘", "")
)

// Clean normalizes a sentence before parsing: curly double quotes become
// straight, opening single quotes are removed, whitespace is collapsed and a
// spaced hyphen becomes a comma, so that "washington - charging" is not
// merged into one word. The result is lowercase.
func Clean(s string) string {
	s = quotes.Replace(s)
	s = whitespace.ReplaceAllString(s, " ")
	s = spacedHyphen.ReplaceAllString(s, " , ")
	return strings.ToLower(strings.TrimSpace(s))
}

// ReadCSV reads records from a CSV with header. The columns are found by
// name: id, pid and sentence. Only sentence is required.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading corpus header: %w", err)
	}

	cols := columns(header)
	sentCol, ok := cols["sentence"]
	if !ok {
		return nil, errors.New("corpus must have a sentence column")
	}

	records := []Record{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if sentCol >= len(row) {
			return nil, fmt.Errorf("line %d: missing sentence column", line)
		}

		rec := Record{Sentence: row[sentCol]}
		if i, ok := cols["id"]; ok && i < len(row) {
			rec.ID = row[i]
		}
		if i, ok := cols["pid"]; ok && i < len(row) {
			rec.PID = row[i]
		}

		records = append(records, rec)
	}

	return records, nil
}

// ReadFile reads the records of a CSV file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}

// WriteCSV writes the records with an id,pid,sentence header.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "pid", "sentence"}); err != nil {
		return err
	}

	for _, r := range records {
		if err := cw.Write([]string{r.ID, r.PID, r.Sentence}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func columns(header []string) map[string]int {
	cols := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := cols[h]; !ok {
			cols[h] = i
		}
	}
	return cols
}
