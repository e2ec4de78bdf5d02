package match

import (
	"sort"
	"strings"
	"unicode"

	sent "github.com/revelaction/svograph/sentence"
)

// Op is the quantifier of a Slot.
type Op int

const (
	// One matches exactly one token
	One Op = iota
	// Optional matches zero or one token ("?")
	Optional
	// Star matches zero or more tokens ("*")
	Star
)

// Slot is one position of a Pattern. A token matches the Slot when every
// non-empty attribute matches. String attributes accept alternatives
// separated by "|":
//
//	{Dep: "nsubj|nsubjpass"}
//
// Lower is compared against the lowercase token text, Orth against the text
// as is.
type Slot struct {
	Dep   string
	Tag   string
	Pos   string
	Orth  string
	Lower string

	// Alpha requires the token text to consist of letters only
	Alpha bool

	Op Op
}

// Pattern is a sequence of slots matched against consecutive tokens.
type Pattern []Slot

// Span is a matched range of the sentence, [Start, End).
type Span struct {
	Start int
	End   int
}

// Contains reports whether i lies within the span, both bounds included.
func (s Span) Contains(i int) bool {
	return s.Start <= i && i <= s.End
}

// Tokens returns the tokens covered by the span.
func (s Span) Tokens(tokens []sent.Token) []sent.Token {
	return tokens[s.Start:s.End]
}

// Matcher finds all the spans of a sentence matched by a set of patterns.
type Matcher struct {
	Patterns []Pattern
}

func NewMatcher(patterns ...Pattern) *Matcher {
	return &Matcher{Patterns: patterns}
}

// FindAll returns every distinct non empty span matched by any pattern,
// sorted by start and then end. A pattern contributes one span per possible
// match length.
func (m *Matcher) FindAll(tokens []sent.Token) []Span {
	seen := map[Span]struct{}{}
	spans := []Span{}

	for _, p := range m.Patterns {
		if len(p) == 0 {
			continue
		}

		for start := range tokens {
			ends := map[int]struct{}{}
			p.ends(tokens, 0, start, ends)

			for end := range ends {
				if end == start {
					continue
				}

				sp := Span{Start: start, End: end}
				if _, ok := seen[sp]; ok {
					continue
				}
				seen[sp] = struct{}{}
				spans = append(spans, sp)
			}
		}
	}

	sortSpans(spans)
	return spans
}

// FindAll is a shortcut for NewMatcher(patterns...).FindAll(tokens)
func FindAll(tokens []sent.Token, patterns ...Pattern) []Span {
	return NewMatcher(patterns...).FindAll(tokens)
}

// ends collects in out the end positions of all the matches of p[slot:]
// starting at token pos.
func (p Pattern) ends(tokens []sent.Token, slot, pos int, out map[int]struct{}) {
	if slot == len(p) {
		out[pos] = struct{}{}
		return
	}

	s := p[slot]
	matches := pos < len(tokens) && s.Match(tokens[pos])

	switch s.Op {
	case Optional:
		p.ends(tokens, slot+1, pos, out)
		if matches {
			p.ends(tokens, slot+1, pos+1, out)
		}
	case Star:
		p.ends(tokens, slot+1, pos, out)
		if matches {
			p.ends(tokens, slot, pos+1, out)
		}
	default:
		if matches {
			p.ends(tokens, slot+1, pos+1, out)
		}
	}
}

// Match reports whether the token satisfies all the slot attributes.
func (s Slot) Match(tok sent.Token) bool {
	if !matchValue(s.Dep, tok.Dep) {
		return false
	}

	if !matchValue(s.Tag, tok.Tag) {
		return false
	}

	if !matchValue(s.Pos, tok.Pos) {
		return false
	}

	if !matchValue(s.Orth, tok.Text) {
		return false
	}

	if !matchValue(s.Lower, tok.Lower()) {
		return false
	}

	if s.Alpha && !isAlpha(tok.Text) {
		return false
	}

	return true
}

func matchValue(want, got string) bool {
	if want == "" {
		return true
	}

	for _, alt := range strings.Split(want, "|") {
		if alt == got {
			return true
		}
	}

	return false
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

// Widest drops every span contained in another, different span. Equal
// spans are reported once. The result is sorted by start and end.
func Widest(spans []Span) []Span {
	uniq := make([]Span, 0, len(spans))
	seen := map[Span]struct{}{}
	for _, s := range spans {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		uniq = append(uniq, s)
	}

	widest := []Span{}
	for _, s := range uniq {
		contained := false
		for _, o := range uniq {
			if o != s && o.Start <= s.Start && s.End <= o.End {
				contained = true
				break
			}
		}

		if !contained {
			widest = append(widest, s)
		}
	}

	sortSpans(widest)
	return widest
}

// InSpans reports whether i is contained (inclusively) in any span.
func InSpans(spans []Span, i int) bool {
	for _, s := range spans {
		if s.Contains(i) {
			return true
		}
	}

	return false
}

func sortSpans(spans []Span) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
}
