package svo

import (
	"reflect"
	"testing"

	"github.com/revelaction/svograph/sentence/sentencetest"
)

func TestExpandSkipsNegationsAndCommas(t *testing.T) {
	tree := sentencetest.Tree(t, `
no     no     DET   DT  4 det
armed  armed  ADJ   JJ  4 amod
,      ,      PUNCT ,   4 punct
group  group  NOUN  NN  5 nsubj
came   come   VERB  VBD 0 ROOT
`)

	if got := Expand(tree, 3); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("unexpected expansion %v", got)
	}

	if got := Phrase(tree, 3); got != "armed group" {
		t.Errorf("unexpected phrase %q", got)
	}
}

func TestExpandStopsAtBreaker(t *testing.T) {
	tree := sentencetest.Tree(t, `
the    the    DET   DT  2 det
rebels rebel  NOUN  NNS 0 ROOT
and    and    CCONJ CC  2 cc
the    the    DET   DT  5 det
army   army   NOUN  NN  2 conj
`)

	if got := Phrase(tree, 1); got != "the rebels" {
		t.Errorf("unexpected phrase %q", got)
	}
}
