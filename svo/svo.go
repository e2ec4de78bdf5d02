// Package svo extracts subject-verb-object triples from a dependency tree.
package svo

import (
	"encoding/json"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/revelaction/svograph/passive"
	sent "github.com/revelaction/svograph/sentence"
)

var (
	// Subjects are the dependency labels of grammatical subjects
	Subjects = mapset.NewSet[string]("nsubj", "nsubjpass", "csubj", "csubjpass", "agent", "expl")

	// Objects are the dependency labels of grammatical objects
	Objects = mapset.NewSet[string]("dobj", "dative", "attr", "oprd")

	// Negations are the words that negate a verb or an object
	Negations = mapset.NewSet[string]("no", "not", "n't", "never", "none")

	// breakerPos stop the expansion of a phrase
	breakerPos = mapset.NewSet[string]("CCONJ", "VERB")

	conjDeps  = mapset.NewSet[string]("cc", "conj")
	conjWords = mapset.NewSet[string]("and", "or", "nor", "but", "yet", "so", "for")

	relativePronouns = mapset.NewSet[string]("who", "whose")
)

// NegationPrefix marks a negated verb
const NegationPrefix = "!"

// Triple is a subject-verb-object relation. Verb is the surface form (active
// voice) or the lemma (passive voice), prefixed with "!" when negated.
type Triple struct {
	Subject string
	Verb    string
	Object  string
}

func (t Triple) String() string {
	return fmt.Sprintf("(%s, %s, %s)", t.Subject, t.Verb, t.Object)
}

// Negated reports whether the verb carries the negation prefix.
func (t Triple) Negated() bool {
	return strings.HasPrefix(t.Verb, NegationPrefix)
}

// MarshalJSON encodes the triple as [subject, verb, object].
func (t Triple) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{t.Subject, t.Verb, t.Object})
}

func (t *Triple) UnmarshalJSON(data []byte) error {
	var a []string
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	if len(a) != 3 {
		return fmt.Errorf("triple must have 3 elements, got %d", len(a))
	}

	t.Subject, t.Verb, t.Object = a[0], a[1], a[2]
	return nil
}

type extractor struct {
	tree    *sent.Tree
	passive passive.Result
	verbs   []int
}

// Extract returns the subject-verb-object triples of the tree, in verb
// order. Every triple has a non empty subject, verb and object.
func Extract(tree *sent.Tree) []Triple {
	e := &extractor{
		tree:    tree,
		passive: passive.Detect(tree.Tokens()),
	}
	e.verbs = e.findVerbs()

	triples := []Triple{}
	seen := mapset.NewThreadUnsafeSet[int]()

	for _, v := range e.verbs {
		if seen.Contains(v) {
			continue
		}
		seen.Add(v)

		subs := e.allSubjects(v)
		if len(subs) == 0 {
			subs = e.extractSubjects(v)
		}

		if len(subs) == 0 {
			continue
		}

		verbNegated := e.negated(v)
		inPassive := e.passive.InMatches(v)

		verbs := []int{v}
		if conjV, ok := e.rightConjVerb(v); ok {
			seen.Add(conjV)
			verbs = append(verbs, conjV)
		}

		// each coordinated verb pairs with its own objects
		for _, cv := range verbs {
			v2, isPas, objs := e.allObjects(cv, inPassive)
			seen.Add(v2)

			for _, sub := range subs {
				for _, obj := range objs {
					neg := verbNegated || e.negated(obj)
					triples = e.appendTriple(triples, sub, v2, obj, isPas && inPassive, neg)
				}
			}
		}
	}

	return triples
}

// appendTriple renders the triple. Passive triples swap subject and object
// and use the verb lemma.
func (e *extractor) appendTriple(triples []Triple, sub, verb, obj int, isPassive, negated bool) []Triple {
	tok := e.tree.Token(verb)

	t := Triple{
		Subject: Phrase(e.tree, sub),
		Verb:    tok.Lower(),
		Object:  Phrase(e.tree, obj),
	}

	if isPassive {
		t.Subject, t.Object = t.Object, t.Subject
		t.Verb = tok.Lemma
	}

	if t.Subject == "" || t.Verb == "" || t.Object == "" {
		return triples
	}

	if negated {
		t.Verb = NegationPrefix + t.Verb
	}

	return append(triples, t)
}

// findVerbs returns the main verbs or, if none, any verb or auxiliary.
func (e *extractor) findVerbs() []int {
	verbs := []int{}
	for i := 0; i < e.tree.Len(); i++ {
		if e.isNonAuxVerb(i) {
			verbs = append(verbs, i)
		}
	}

	if len(verbs) > 0 {
		return verbs
	}

	for i := 0; i < e.tree.Len(); i++ {
		pos := e.tree.Token(i).Pos
		if pos == "VERB" || pos == "AUX" {
			verbs = append(verbs, i)
		}
	}

	return verbs
}

func (e *extractor) isNonAuxVerb(i int) bool {
	tok := e.tree.Token(i)
	return tok.Pos == "VERB" && tok.Dep != "aux" && tok.Dep != "auxpass"
}

// rightConjVerb returns the verb coordinated to the right of v, as in
// "attacked and burned".
func (e *extractor) rightConjVerb(v int) (int, bool) {
	rights := e.tree.Rights(v)
	if len(rights) < 2 || e.tree.Token(rights[0]).Pos != "CCONJ" {
		return v, false
	}

	for _, r := range rights[1:] {
		if e.isNonAuxVerb(r) {
			return r, true
		}
	}

	return v, false
}

// hasConjWord reports whether any of the tokens is a coordinating
// conjunction.
func (e *extractor) hasConjWord(tokens []int) bool {
	for _, t := range tokens {
		if conjWords.Contains(e.tree.Token(t).Lower()) {
			return true
		}
	}

	return false
}

// closure applies next to every token of the work list, including the ones
// it adds, and returns the tokens added. Tokens are added once.
func closure(start []int, next func(int) []int) []int {
	seen := mapset.NewThreadUnsafeSet[int](start...)
	queue := append([]int(nil), start...)
	added := []int{}

	for k := 0; k < len(queue); k++ {
		for _, t := range next(queue[k]) {
			if seen.Contains(t) {
				continue
			}
			seen.Add(t)
			queue = append(queue, t)
			added = append(added, t)
		}
	}

	return added
}

func uniq(tokens []int) []int {
	seen := mapset.NewThreadUnsafeSet[int]()
	out := make([]int, 0, len(tokens))
	for _, t := range tokens {
		if seen.Contains(t) {
			continue
		}
		seen.Add(t)
		out = append(out, t)
	}

	return out
}
