package stat

import (
	"sort"

	"github.com/revelaction/svograph/render"
	sent "github.com/revelaction/svograph/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences           int
	NumTriples             int
	NumNegated             int
	TriplesPerSentenceMean float64
	TriplesPerSentenceDis  map[int]int

	// Verbs counts the triples per verb, Pairs per subject and object
	Verbs map[string]int
	Pairs map[[2]string]int

	// token counts of the parsed sentences
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int
}

// Count is a key and its number of occurrences.
type Count struct {
	Key string
	N   int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TriplesPerSentenceDis: map[int]int{},
		Verbs:                 map[string]int{},
		Pairs:                 map[[2]string]int{},
		TokensPerSentenceDis:  map[int]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds a triple store record.
func (h *Handler) Aggregate(r render.Record) {
	h.stats.NumSentences++
	h.stats.NumTriples += len(r.Triples)
	h.stats.TriplesPerSentenceDis[len(r.Triples)]++

	for _, t := range r.Triples {
		h.stats.Verbs[t.Verb]++
		h.stats.Pairs[[2]string{t.Subject, t.Object}]++
		if t.Negated() {
			h.stats.NumNegated++
		}
	}

	h.stats.TriplesPerSentenceMean = float64(h.stats.NumTriples) / float64(h.stats.NumSentences)
}

// AggregateDoc adds the token counts of a parsed document.
func (h *Handler) AggregateDoc(doc sent.Doc) {
	parsed := 0
	for _, n := range h.stats.TokensPerSentenceDis {
		parsed += n
	}

	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++
		parsed++
	}

	if parsed > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / parsed
	}
}

// TopVerbs returns the n most frequent verbs, ties in alphabetical order. A
// non positive n returns all of them.
func (s Stats) TopVerbs(n int) []Count {
	counts := make([]Count, 0, len(s.Verbs))
	for k, v := range s.Verbs {
		counts = append(counts, Count{Key: k, N: v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Key < counts[j].Key
	})

	if n > 0 && n < len(counts) {
		counts = counts[:n]
	}

	return counts
}
