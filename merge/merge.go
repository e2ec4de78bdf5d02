// Package merge joins hyphenated words, split by the parser into several
// tokens, back into a single token.
package merge

import (
	"fmt"
	"strings"

	"github.com/revelaction/svograph/match"
	sent "github.com/revelaction/svograph/sentence"
)

// Rule matches a word, a hyphen and a word.
var Rule = match.Pattern{
	{Alpha: true},
	{Orth: "-"},
	{Alpha: true},
}

// Spans returns the ranges to merge. Matches sharing a boundary token, as in
// "state-of-the-art", are chained into one range.
func Spans(tokens []sent.Token) []match.Span {
	spans := []match.Span{}

	var cur match.Span
	open := false
	for _, m := range match.FindAll(tokens, Rule) {
		if !open {
			cur = m
			open = true
			continue
		}

		if m.Start <= cur.End-1 {
			if m.End > cur.End {
				cur.End = m.End
			}
			continue
		}

		spans = append(spans, cur)
		cur = m
	}

	if open {
		spans = append(spans, cur)
	}

	return spans
}

// Hyphenated returns a new tree where every hyphenated word is one token. The
// merged token takes the attributes of the span root, the token closest to
// the sentence root, and its text is the concatenation of the span. Heads
// and noun chunks are remapped to the new positions. The given tree is left
// untouched; when there is nothing to merge it is returned as is.
func Hyphenated(tree *sent.Tree) (*sent.Tree, error) {
	tokens := tree.Tokens()
	spans := Spans(tokens)
	if len(spans) == 0 {
		return tree, nil
	}

	// position of every old token in the merged sentence
	newIndex := make([]int, len(tokens))
	// the old token whose attributes the new token carries
	var source []int
	var merged []sent.Token

	next := 0
	for _, sp := range spans {
		for i := next; i < sp.Start; i++ {
			newIndex[i] = len(merged)
			source = append(source, i)
			merged = append(merged, tokens[i])
		}

		root := spanRoot(tree, sp)
		tok := tokens[root]

		var text, lemma strings.Builder
		for i := sp.Start; i < sp.End; i++ {
			newIndex[i] = len(merged)
			text.WriteString(tokens[i].Text)
			lemma.WriteString(tokens[i].Lemma)
		}

		tok.Text = text.String()
		tok.Lemma = lemma.String()
		tok.Idx = tokens[sp.Start].Idx
		source = append(source, root)
		merged = append(merged, tok)
		next = sp.End
	}

	for i := next; i < len(tokens); i++ {
		newIndex[i] = len(merged)
		source = append(source, i)
		merged = append(merged, tokens[i])
	}

	for i := range merged {
		old := source[i]
		merged[i].Index = i
		merged[i].Id = i
		if tree.IsRoot(old) {
			merged[i].Head = i
			continue
		}
		merged[i].Head = newIndex[tree.Head(old)]
	}

	s := tree.Sentence()
	s.Tokens = merged
	for i, c := range s.Chunks {
		s.Chunks[i].Start = newIndex[c.Start]
		s.Chunks[i].End = newIndex[c.End-1] + 1
	}

	t, err := sent.NewTree(s)
	if err != nil {
		return nil, fmt.Errorf("merging hyphenated tokens of sentence %d: %w", s.Id, err)
	}

	return t, nil
}

// spanRoot returns the token of the span with the shortest path to the
// sentence root. Ties are resolved by position.
func spanRoot(tree *sent.Tree, sp match.Span) int {
	root, best := sp.Start, -1
	for i := sp.Start; i < sp.End; i++ {
		d := depth(tree, i)
		if best == -1 || d < best {
			root, best = i, d
		}
	}

	return root
}

func depth(tree *sent.Tree, i int) int {
	d := 0
	for !tree.IsRoot(i) {
		i = tree.Head(i)
		d++
	}

	return d
}
