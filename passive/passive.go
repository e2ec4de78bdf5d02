// Package passive detects passive voice phrases in a dependency parsed
// sentence.
package passive

import (
	"github.com/revelaction/svograph/match"
	sent "github.com/revelaction/svograph/sentence"
)

var vbn = match.Slot{Tag: "VBN"}

// Templates are the passive phrase patterns, tried all at once.
var Templates = []match.Pattern{
	{
		{Dep: "nsubjpass"},
		{Dep: "aux", Op: match.Optional},
		{Dep: "neg", Op: match.Optional},
		{Dep: "prep", Op: match.Optional},
		{Dep: "poss", Op: match.Optional},
		{Dep: "amod", Op: match.Optional},
		{Dep: "det", Op: match.Optional},
		{Dep: "pobj", Op: match.Optional},
		{Dep: "auxpass"},
		{Dep: "neg", Op: match.Optional},
		{Dep: "advmod", Op: match.Optional},
		{Dep: "preconj", Op: match.Optional},
		{Dep: "dep", Op: match.Optional},
		vbn,
	},
	{
		{Dep: "nsubjpass"},
		{Dep: "auxpass"},
		{Dep: "neg", Op: match.Optional},
		{Dep: "advmod", Op: match.Star},
		{Dep: "dep", Op: match.Optional},
		vbn,
	},
	{
		{Dep: "nsubjpass"},
		{Dep: "auxpass"},
		{Dep: "neg", Op: match.Optional},
		{Dep: "dep", Op: match.Optional},
		{Dep: "advmod", Op: match.Star},
		vbn,
	},
	{
		{Dep: "nsubjpass"},
		{Dep: "auxpass"},
		{Dep: "advmod", Op: match.Optional},
		{Dep: "neg", Op: match.Optional},
		{Dep: "dep", Op: match.Optional},
		vbn,
	},
	{
		{Dep: "auxpass"},
		{Dep: "neg", Op: match.Optional},
		{Dep: "advmod", Op: match.Star},
		{Dep: "dep", Op: match.Optional},
		vbn,
	},
	{
		{Dep: "auxpass"},
		{Dep: "poss", Op: match.Optional},
		{Dep: "nsubj"},
		vbn,
	},
	{
		{Dep: "auxpass"},
		{Dep: "nsubjpass"},
		vbn,
	},
}

var matcher = match.NewMatcher(Templates...)

// Result is the outcome of Detect.
type Result struct {
	// IsPassive is true when at least one passive phrase was found
	IsPassive bool

	// Phrases are the tokens of each passive phrase
	Phrases [][]sent.Token

	// Spans are the sentence ranges of the phrases, maximal and sorted
	Spans []match.Span
}

// InMatches reports whether the token i belongs to a passive phrase.
func (r Result) InMatches(i int) bool {
	return match.InSpans(r.Spans, i)
}

// Detect finds the passive phrases of a sentence. Sentences without a
// passive auxiliary are not matched at all.
func Detect(tokens []sent.Token) Result {
	if !hasAuxPass(tokens) {
		return Result{}
	}

	spans := match.Widest(matcher.FindAll(tokens))
	if len(spans) == 0 {
		return Result{}
	}

	r := Result{IsPassive: true, Spans: spans}
	for _, s := range spans {
		r.Phrases = append(r.Phrases, s.Tokens(tokens))
	}

	return r
}

// InMatches reports whether i lies, both bounds included, in any of the
// spans.
func InMatches(spans []match.Span, i int) bool {
	return match.InSpans(spans, i)
}

func hasAuxPass(tokens []sent.Token) bool {
	for _, t := range tokens {
		if t.Dep == "auxpass" {
			return true
		}
	}

	return false
}
