// Package lexicon keeps word statistics (lemma and part of speech) learned
// from the parsed corpus. It answers the single word questions of the
// relation filter and the network builder without running the parser.
package lexicon

import (
	"sort"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	sent "github.com/revelaction/svograph/sentence"
)

const negationPrefix = "!"

// auxiliaries are reported as AUX when a word was never seen in the corpus
var auxiliaries = mapset.NewSet[string](
	"be", "am", "'m", "is", "are", "'re", "was", "were", "been", "being",
	"have", "has", "had", "'ve", "do", "does", "did",
	"will", "would", "shall", "should", "may", "might", "must", "can", "could",
)

// Lexicon counts, for each lowercase word form, its lemmas and parts of
// speech. It is safe for concurrent use.
type Lexicon struct {
	mu     sync.RWMutex
	lemmas map[string]map[string]int
	pos    map[string]map[string]int
}

func New() *Lexicon {
	return &Lexicon{
		lemmas: map[string]map[string]int{},
		pos:    map[string]map[string]int{},
	}
}

// Add counts the tokens of the sentence.
func (l *Lexicon) Add(s sent.Sentence) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range s.Tokens {
		w := t.Lower()
		if w == "" {
			continue
		}

		if l.lemmas[w] == nil {
			l.lemmas[w] = map[string]int{}
			l.pos[w] = map[string]int{}
		}

		if t.Lemma != "" {
			l.lemmas[w][strings.ToLower(t.Lemma)]++
		}
		l.pos[w][t.Pos]++
	}
}

// AddDoc counts all the sentences of the doc.
func (l *Lexicon) AddDoc(doc sent.Doc) {
	for _, s := range doc.Sentences {
		l.Add(s)
	}
}

// Len returns the number of distinct word forms.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lemmas)
}

// Lemma returns the most frequent lemma of the word, or the lowercase word
// when it is unknown.
func (l *Lexicon) Lemma(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))

	l.mu.RLock()
	defer l.mu.RUnlock()

	if lemma, ok := top(l.lemmas[w]); ok {
		return lemma
	}

	return w
}

// Pos returns the most frequent part of speech of the word.
func (l *Lexicon) Pos(word string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(word))

	l.mu.RLock()
	defer l.mu.RUnlock()

	return top(l.pos[w])
}

// IsAux reports whether any word of the verb phrase is mostly used as an
// auxiliary. The negation prefix is ignored.
func (l *Lexicon) IsAux(verb string) bool {
	for _, w := range strings.Fields(strings.TrimPrefix(verb, negationPrefix)) {
		pos, ok := l.Pos(w)
		if !ok {
			if auxiliaries.Contains(strings.ToLower(w)) {
				return true
			}
			continue
		}

		if pos == "AUX" {
			return true
		}
	}

	return false
}

// VerbRoot returns the lemma of the first word of the verb, keeping the
// negation prefix: "!attacked" becomes "!attack".
func (l *Lexicon) VerbRoot(verb string) string {
	prefix := ""
	if strings.Contains(verb, negationPrefix) {
		prefix = negationPrefix
		verb = strings.ReplaceAll(verb, negationPrefix, "")
	}

	words := strings.Fields(verb)
	if len(words) == 0 {
		return prefix
	}

	return prefix + l.Lemma(words[0])
}

// top returns the most frequent key, the smallest one on ties.
func top(counts map[string]int) (string, bool) {
	if len(counts) == 0 {
		return "", false
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}

	return best, true
}
