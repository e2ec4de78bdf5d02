package corpus

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The  Rebels “attacked” the camp", `the rebels "attacked" the camp`},
		{"‘ISIS’ fighters\tfled ", "isis’ fighters fled"},
		{"washington - charging", "washington , charging"},
		{"non-white", "non-white"},
	}

	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadWriteCSV(t *testing.T) {
	in := "id,pid,sentence\n1,10,\"the rebels, again\"\n2,10,they fled\n"

	records, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Record{
		{ID: "1", PID: "10", Sentence: "the rebels, again"},
		{ID: "2", PID: "10", Sentence: "they fled"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("unexpected records %v", records)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf.String() != in {
		t.Errorf("unexpected csv %q", buf.String())
	}
}

func TestReadCSVColumnsByName(t *testing.T) {
	in := "sentence,extra\nthey fled,x\n"

	records, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 || records[0].Sentence != "they fled" || records[0].ID != "" {
		t.Fatalf("unexpected records %v", records)
	}

	if _, err := ReadCSV(strings.NewReader("id,text\n1,x\n")); err == nil {
		t.Errorf("expected error without sentence column")
	}
}

type splitFunc func(string) ([]string, error)

func (f splitFunc) Split(text string) ([]string, error) {
	return f(text)
}

func TestPrepare(t *testing.T) {
	paragraphs := []Paragraph{
		{NameID: "p1", Text: "the rebels attacked [the] camp....|12345|!!!|too short|the rebels attacked [the] camp....|a -- b -- c d"},
		{NameID: "p2", Text: "isis & co\n\tfought back"},
		{NameID: "p3", Text: "   "},
	}

	opts := PrepareOptions{
		Splitter: splitFunc(func(s string) ([]string, error) {
			return strings.Split(s, "|"), nil
		}),
	}

	got, err := Prepare(paragraphs, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Record{
		{ID: "1", PID: "p1", Sentence: "the rebels attacked the camp."},
		{ID: "2", PID: "p1", Sentence: "a -b -c d"},
		{ID: "3", PID: "p2", Sentence: "isis co fought back"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Prepare() = %v, want %v", got, want)
	}
}

func TestProseSplitter(t *testing.T) {
	got, err := ProseSplitter{}.Split("The camp was attacked by the rebels. The villagers fled to the north.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %q", len(got), got)
	}
}

func TestReadParagraphs(t *testing.T) {
	in := "name_id,sentence\nn1,the rebels attacked\n"
	got, err := ReadParagraphs(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 || got[0].NameID != "n1" {
		t.Fatalf("unexpected paragraphs %v", got)
	}

	if _, err := ReadParagraphs(strings.NewReader("id,sentence\n")); err == nil {
		t.Errorf("expected error without name_id column")
	}
}
