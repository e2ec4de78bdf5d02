package svo

import (
	"encoding/json"
	"reflect"
	"testing"

	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/sentence/sentencetest"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		rows   string
		chunks []sent.Chunk
		want   []Triple
	}{
		{
			name: "passive with agent",
			rows: `
the      the    DET  DT  2 det
city     city   NOUN NN  4 nsubjpass
was      be     AUX  VBD 4 auxpass
attacked attack VERB VBN 0 ROOT
by       by     ADP  IN  4 agent
the      the    DET  DT  7 det
rebels   rebel  NOUN NNS 5 pobj
`,
			want: []Triple{{"the rebels", "attack", "the city"}},
		},
		{
			name: "negated passive",
			rows: `
the      the    DET  DT  2 det
city     city   NOUN NN  5 nsubjpass
was      be     AUX  VBD 5 auxpass
not      not    PART RB  5 neg
attacked attack VERB VBN 0 ROOT
by       by     ADP  IN  5 agent
the      the    DET  DT  8 det
rebels   rebel  NOUN NNS 6 pobj
`,
			want: []Triple{{"the rebels", "!attack", "the city"}},
		},
		{
			name: "negated active",
			rows: `
he     he     PRON PRP 4 nsubj
did    do     AUX  VBD 4 aux
not    not    PART RB  4 neg
attack attack VERB VB  0 ROOT
the    the    DET  DT  6 det
city   city   NOUN NN  4 dobj
`,
			want: []Triple{{"he", "!attack", "the city"}},
		},
		{
			name: "not only but is not a negation",
			rows: `
he        he      PRON  PRP 4 nsubj
not       not     PART  RB  4 neg
only      only    ADV   RB  4 advmod
attacked  attack  VERB  VBD 0 ROOT
but       but     CCONJ CC  4 cc
destroyed destroy VERB  VBD 4 conj
the       the     DET   DT  8 det
city      city    NOUN  NN  6 dobj
`,
			want: []Triple{
				{"he", "attacked", "the city"},
				{"he", "destroyed", "the city"},
			},
		},
		{
			name: "coordinated subjects",
			rows: `
alice    alice  PROPN NNP 4 nsubj
and      and    CCONJ CC  1 cc
bob      bob    PROPN NNP 1 conj
attacked attack VERB  VBD 0 ROOT
the      the    DET   DT  6 det
camp     camp   NOUN  NN  4 dobj
`,
			want: []Triple{
				{"alice", "attacked", "the camp"},
				{"bob", "attacked", "the camp"},
			},
		},
		{
			name: "coordinated objects",
			rows: `
they     they    PRON  PRP 2 nsubj
attacked attack  VERB  VBD 0 ROOT
the      the     DET   DT  4 det
camp     camp    NOUN  NN  2 dobj
and      and     CCONJ CC  4 cc
the      the     DET   DT  7 det
village  village NOUN  NN  4 conj
`,
			want: []Triple{
				{"they", "attacked", "the camp"},
				{"they", "attacked", "the village"},
			},
		},
		{
			name: "coordinated verbs with their own objects",
			rows: `
the      the    DET   DT  2 det
rebels   rebel  NOUN  NNS 3 nsubj
attacked attack VERB  VBD 0 ROOT
the      the    DET   DT  5 det
camp     camp   NOUN  NN  3 dobj
and      and    CCONJ CC  3 cc
burned   burn   VERB  VBD 3 conj
the      the    DET   DT  9 det
houses   house  NOUN  NNS 7 dobj
`,
			want: []Triple{
				{"the rebels", "attacked", "the camp"},
				{"the rebels", "burned", "the houses"},
			},
		},
		{
			name: "open clausal complement",
			rows: `
the    the    DET  DT  2 det
rebels rebel  NOUN NNS 3 nsubj
wanted want   VERB VBD 0 ROOT
to     to     PART TO  5 aux
attack attack VERB VB  3 xcomp
the    the    DET  DT  7 det
city   city   NOUN NN  5 dobj
`,
			want: []Triple{{"the rebels", "attack", "the city"}},
		},
		{
			name: "relative clause subject",
			rows: `
the      the    DET  DT  2 det
rebels   rebel  NOUN NNS 7 nsubj
who      who    PRON WP  4 nsubj
attacked attack VERB VBD 2 relcl
the      the    DET  DT  6 det
city     city   NOUN NN  4 dobj
fled     flee   VERB VBD 0 ROOT
`,
			want: []Triple{{"the rebels", "attacked", "the city"}},
		},
		{
			name: "that resolution",
			rows: `
they      they     PRON PRP 2 nsubj
destroyed destroy  VERB VBD 0 ROOT
the       the      DET  DT  4 det
camp      camp     NOUN NN  2 dobj
that      that     PRON WDT 6 nsubj
sheltered shelter  VERB VBD 4 relcl
refugees  refugee  NOUN NNS 6 dobj
`,
			want: []Triple{
				{"they", "destroyed", "the camp"},
				{"the camp", "sheltered", "refugees"},
			},
		},
		{
			name: "prepositional phrase in subject",
			rows: `
the      the    DET  DT  2 det
leader   leader NOUN NN  6 nsubj
of       of     ADP  IN  2 prep
the      the    DET  DT  5 det
group    group  NOUN NN  3 pobj
attacked attack VERB VBD 0 ROOT
the      the    DET  DT  8 det
city     city   NOUN NN  6 dobj
`,
			want: []Triple{{"the leader of the group", "attacked", "the city"}},
		},
		{
			name: "of completed with noun chunk",
			rows: `
the      the    DET  DT  2 det
leader   leader NOUN NN  5 nsubj
of       of     ADP  IN  2 prep
them     they   PRON PRP 3 pobj
attacked attack VERB VBD 0 ROOT
the      the    DET  DT  7 det
city     city   NOUN NN  5 dobj
`,
			chunks: []sent.Chunk{{Start: 3, End: 4}},
			want:   []Triple{{"the leader of them", "attacked", "the city"}},
		},
		{
			name: "subject of the governing verb",
			rows: `
fleeing flee  VERB  VBG 7 advcl
the     the   DET   DT  3 det
army    army  NOUN  NN  1 dobj
,       ,     PUNCT ,   7 punct
the     the   DET   DT  6 det
rebels  rebel NOUN  NNS 7 nsubj
burned  burn  VERB  VBD 0 ROOT
the     the   DET   DT  9 det
city    city  NOUN  NN  7 dobj
`,
			want: []Triple{
				{"the rebels", "fleeing", "the army"},
				{"the rebels", "burned", "the city"},
			},
		},
		{
			name: "of after a nested phrase",
			rows: `
the      the    DET  DT  2 det
leader   leader NOUN NN  8 nsubj
of       of     ADP  IN  2 prep
the      the    DET  DT  5 det
group    group  NOUN NN  3 pobj
of       of     ADP  IN  5 prep
them     they   PRON PRP 6 pobj
attacked attack VERB VBD 0 ROOT
the      the    DET  DT  10 det
city     city   NOUN NN  8 dobj
`,
			chunks: []sent.Chunk{{Start: 3, End: 5}, {Start: 6, End: 7}},
			want:   []Triple{{"the leader of the group of them", "attacked", "the city"}},
		},
		{
			name: "coordinated verbs in passive voice",
			rows: `
the      the    DET   DT  2 det
city     city   NOUN  NN  4 nsubjpass
was      be     AUX   VBD 4 auxpass
attacked attack VERB  VBN 0 ROOT
and      and    CCONJ CC  4 cc
burned   burn   VERB  VBN 4 conj
by       by     ADP   IN  4 agent
the      the    DET   DT  9 det
rebels   rebel  NOUN  NNS 7 pobj
`,
			want: []Triple{{"the rebels", "attack", "the city"}},
		},
		{
			name: "coordinated verb with open clausal complement",
			rows: `
they     they    PRON  PRP 2 nsubj
attacked attack  VERB  VBD 0 ROOT
and      and     CCONJ CC  2 cc
wanted   want    VERB  VBD 2 conj
to       to      PART  TO  6 aux
destroy  destroy VERB  VB  4 xcomp
the      the     DET   DT  8 det
city     city    NOUN  NN  6 dobj
`,
			want: []Triple{{"they", "destroy", "the city"}},
		},
		{
			name: "capitalized not only negates",
			rows: `
he        he      PRON  PRP 4 nsubj
Not       not     PART  RB  4 neg
only      only    ADV   RB  4 advmod
attacked  attack  VERB  VBD 0 ROOT
but       but     CCONJ CC  4 cc
destroyed destroy VERB  VBD 4 conj
the       the     DET   DT  8 det
city      city    NOUN  NN  6 dobj
`,
			want: []Triple{
				{"he", "!attacked", "the city"},
				{"he", "!destroyed", "the city"},
			},
		},
		{
			name: "auxiliary fallback",
			rows: `
they   they   PRON PRP 2 nsubj
are    be     AUX  VBP 0 ROOT
rebels rebel  NOUN NNS 2 attr
`,
			want: []Triple{{"they", "are", "rebels"}},
		},
		{
			name: "no object",
			rows: `
the    the   DET  DT  2 det
rebels rebel NOUN NNS 3 nsubj
fled   flee  VERB VBD 0 ROOT
`,
			want: []Triple{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := sentencetest.Tree(t, tt.rows, tt.chunks...)
			got := Extract(tree)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Extract() = %v, want %v", got, tt.want)
			}

			for _, tr := range got {
				if tr.Subject == "" || tr.Verb == "" || tr.Object == "" {
					t.Errorf("empty element in %v", tr)
				}
			}
		})
	}
}

func TestTripleJSON(t *testing.T) {
	tr := Triple{"the rebels", "!attack", "the city"}

	b, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(b) != `["the rebels","!attack","the city"]` {
		t.Fatalf("unexpected json %s", b)
	}

	var got Triple
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != tr {
		t.Errorf("got %v, want %v", got, tr)
	}

	if !got.Negated() {
		t.Errorf("expected negated triple")
	}

	if err := json.Unmarshal([]byte(`["a","b"]`), &got); err == nil {
		t.Errorf("expected error for a two element array")
	}
}
