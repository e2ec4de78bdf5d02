package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/svograph/svo"
)

// Record is one line of the triple store: a sentence and its filtered
// triples.
type Record struct {
	Sentence string       `json:"sentence"`
	Triples  []svo.Triple `json:"extended_SVO"`
}

// RecordWriter writes records as newline delimited JSON.
type RecordWriter struct {
	enc *json.Encoder
	n   int
}

// NewRecordWriter creates a RecordWriter writing to w.
func NewRecordWriter(w io.Writer) *RecordWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &RecordWriter{enc: enc}
}

// Write serializes the record on its own line.
func (w *RecordWriter) Write(r Record) error {
	if r.Triples == nil {
		r.Triples = []svo.Triple{}
	}

	if err := w.enc.Encode(r); err != nil {
		return err
	}

	w.n++
	return nil
}

// Count returns the number of records written.
func (w *RecordWriter) Count() int {
	return w.n
}

// RecordReader reads newline delimited JSON records. Blank lines are
// skipped.
type RecordReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewRecordReader creates a RecordReader reading from r.
func NewRecordReader(r io.Reader) *RecordReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &RecordReader{scanner: s}
}

// Next returns the next record, or io.EOF when there are no more.
func (r *RecordReader) Next() (Record, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return Record{}, fmt.Errorf("line %d: %w", r.line, err)
		}

		return rec, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Record{}, err
	}

	return Record{}, io.EOF
}

// ReadRecords reads all the records of r.
func ReadRecords(r io.Reader) ([]Record, error) {
	rr := NewRecordReader(r)
	records := []Record{}
	for {
		rec, err := rr.Next()
		if err == io.EOF {
			return records, nil
		}

		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}
}

// ReadRecordsFile reads all the records of the file at path.
func ReadRecordsFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}
