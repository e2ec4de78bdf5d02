// Package sentencetest builds dependency trees for tests from a compact
// one-token-per-line notation:
//
//	text lemma POS TAG head dep
//
// Heads are 1-based, 0 marks the root, as in CoNLL-U.
package sentencetest

import (
	"strconv"
	"strings"
	"testing"

	sent "github.com/revelaction/svograph/sentence"
)

// CoNLL converts the compact notation into CoNLL-U.
func CoNLL(rows string) string {
	var b strings.Builder
	id := 0
	for _, line := range strings.Split(rows, "\n") {
		f := strings.Fields(line)
		if len(f) == 0 {
			continue
		}

		id++
		b.WriteString(strings.Join([]string{
			strconv.Itoa(id), f[0], f[1], f[2], f[3], "_", f[4], f[5], "_", "_",
		}, "\t"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}

// Sentence parses the compact notation into a single sentence.
func Sentence(tb testing.TB, rows string, chunks ...sent.Chunk) sent.Sentence {
	tb.Helper()

	sentences, err := sent.ReadCoNLL(strings.NewReader(CoNLL(rows)))
	if err != nil {
		tb.Fatalf("invalid test sentence: %v", err)
	}

	if len(sentences) != 1 {
		tb.Fatalf("expected 1 test sentence, got %d", len(sentences))
	}

	s := sentences[0]
	for _, c := range chunks {
		if c.Text == "" {
			c.Text = sent.JoinText(s.Tokens[c.Start:c.End])
		}
		s.Chunks = append(s.Chunks, c)
	}

	return s
}

// Tree parses the compact notation into a validated tree.
func Tree(tb testing.TB, rows string, chunks ...sent.Chunk) *sent.Tree {
	tb.Helper()

	tree, err := sent.NewTree(Sentence(tb, rows, chunks...))
	if err != nil {
		tb.Fatalf("invalid test tree: %v", err)
	}

	return tree
}
