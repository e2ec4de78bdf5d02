package svo

import (
	mapset "github.com/deckarep/golang-set/v2"

	sent "github.com/revelaction/svograph/sentence"
)

// Expand returns the token indexes of the phrase headed by head, in phrase
// order:
//
//   - "that" is replaced by the head of the token it introduces
//   - left and right children are added until a conjunction or a verb is
//     found, skipping negation words
//   - a determiner or noun right after the phrase is expanded recursively
//   - commas are dropped
//   - a phrase ending in "of" is completed with the noun chunk that follows
func Expand(tree *sent.Tree, head int) []int {
	parts := expand(tree, head, mapset.NewThreadUnsafeSet[int]())

	seen := mapset.NewThreadUnsafeSet[int]()
	phrase := make([]int, 0, len(parts))
	for _, p := range parts {
		if seen.Contains(p) || tree.Token(p).Text == "," {
			continue
		}
		seen.Add(p)
		phrase = append(phrase, p)
	}

	if len(phrase) == 0 {
		return phrase
	}

	last := phrase[len(phrase)-1]
	if tree.Token(last).Lower() != "of" {
		return phrase
	}

	for _, c := range tree.Chunks() {
		if c.Start != last+1 {
			continue
		}

		for i := c.Start; i < c.End; i++ {
			if !seen.Contains(i) {
				seen.Add(i)
				phrase = append(phrase, i)
			}
		}
		break
	}

	return phrase
}

// Phrase returns the expanded phrase of head as space separated words.
func Phrase(tree *sent.Tree, head int) string {
	idx := Expand(tree, head)
	tokens := make([]sent.Token, len(idx))
	for i, t := range idx {
		tokens[i] = tree.Token(t)
	}

	return sent.JoinText(tokens)
}

func expand(tree *sent.Tree, item int, visited mapset.Set[int]) []int {
	if tree.Token(item).Lower() == "that" {
		if r, ok := thatAntecedent(tree); ok {
			item = r
		}
	}

	if visited.Contains(item) {
		return nil
	}
	visited.Add(item)

	parts := walk(tree, tree.Lefts(item))
	parts = append(parts, item)
	parts = append(parts, walk(tree, tree.Rights(item))...)

	last := parts[len(parts)-1]
	if rights := tree.Rights(last); len(rights) > 0 {
		switch tree.Token(rights[0]).Pos {
		case "DET", "NOUN", "PROPN":
			parts = append(parts, expand(tree, rights[0], visited)...)
		}
	}

	return parts
}

// walk takes children in order until a breaker, skipping negations.
func walk(tree *sent.Tree, children []int) []int {
	parts := []int{}
	for _, c := range children {
		tok := tree.Token(c)
		if breakerPos.Contains(tok.Pos) {
			break
		}

		if Negations.Contains(tok.Lower()) {
			continue
		}

		parts = append(parts, c)
	}

	return parts
}

// thatAntecedent returns the head of the first token introduced by "that".
func thatAntecedent(tree *sent.Tree) (int, bool) {
	for i := 0; i < tree.Len(); i++ {
		for _, l := range tree.Lefts(i) {
			if tree.Token(l).Text == "that" {
				return tree.Head(i), true
			}
		}
	}

	return 0, false
}
