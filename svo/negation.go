package svo

import (
	"regexp"
	"strings"
)

// "not only ... but" does not negate. The match is on the words as written,
// so a capitalized "Not only" still negates.
var notOnly = regexp.MustCompile(`(not only)((\w+|,)? ?){0,4}( ?but)?`)

// negated reports whether a direct child of tok is a negation word.
func (e *extractor) negated(tok int) bool {
	parts := append(append([]int{}, e.tree.Lefts(tok)...), e.tree.Rights(tok)...)

	hasNegation := false
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		tok := e.tree.Token(p)
		if Negations.Contains(tok.Lower()) {
			hasNegation = true
		}
		words = append(words, tok.Text)
	}

	if !hasNegation {
		return false
	}

	return !notOnly.MatchString(strings.Join(words, " "))
}
