// Package relation keeps the triples relating two different groups.
package relation

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/revelaction/svograph/group"
	"github.com/revelaction/svograph/svo"
)

// StopVerbs are copulas, auxiliaries and prepositions that do not express a
// relation between groups.
var StopVerbs = mapset.NewSet[string](
	"be", "am", "'m", "is", "are", "'re", "has", "have", "had", "by", "in",
	"is in", "be in", "will", "would", "would be", "will be", "been",
	"have been", "had been", "has been", "were", "was",
)

// AuxChecker tells if a verb is an auxiliary.
type AuxChecker interface {
	IsAux(verb string) bool
}

// Filter selects and normalizes the triples of a sentence.
type Filter struct {
	Groups *group.Table
	Aux    AuxChecker
}

func NewFilter(groups *group.Table, aux AuxChecker) *Filter {
	return &Filter{Groups: groups, Aux: aux}
}

// Apply keeps the triples whose subject and object both mention a group and
// whose verb is not an auxiliary. Subject and object are replaced by the
// group names; triples relating a group with itself are dropped. The result
// has no duplicates and keeps the order of first occurrence.
func (f *Filter) Apply(triples []svo.Triple) []svo.Triple {
	out := []svo.Triple{}
	seen := mapset.NewThreadUnsafeSet[svo.Triple]()

	for _, t := range triples {
		subject, ok := f.Groups.Resolve(t.Subject)
		if !ok {
			continue
		}

		object, ok := f.Groups.Resolve(t.Object)
		if !ok {
			continue
		}

		if f.isStopVerb(t.Verb) {
			continue
		}

		if subject == object {
			continue
		}

		r := svo.Triple{Subject: subject, Verb: t.Verb, Object: object}
		if seen.Contains(r) {
			continue
		}
		seen.Add(r)
		out = append(out, r)
	}

	return out
}

func (f *Filter) isStopVerb(verb string) bool {
	if f.Aux != nil && f.Aux.IsAux(verb) {
		return true
	}

	return StopVerbs.Contains(strings.ToLower(strings.TrimSpace(verb)))
}
