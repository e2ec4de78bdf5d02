package lexicon

import (
	"testing"

	sent "github.com/revelaction/svograph/sentence"
)

func sentence(tokens ...[3]string) sent.Sentence {
	s := sent.Sentence{}
	for i, t := range tokens {
		s.Tokens = append(s.Tokens, sent.Token{Index: i, Head: i, Text: t[0], Lemma: t[1], Pos: t[2]})
	}
	return s
}

func TestLemma(t *testing.T) {
	l := New()
	l.Add(sentence(
		[3]string{"Attacked", "attack", "VERB"},
		[3]string{"attacked", "attack", "VERB"},
		[3]string{"attacked", "attacked", "ADJ"},
		[3]string{"saw", "see", "VERB"},
		[3]string{"saw", "saw", "NOUN"},
	))

	if got := l.Lemma("attacked"); got != "attack" {
		t.Errorf("Lemma(attacked) = %q", got)
	}

	// tie resolved alphabetically
	if got := l.Lemma("saw"); got != "saw" {
		t.Errorf("Lemma(saw) = %q", got)
	}

	if got := l.Lemma("Unknown"); got != "unknown" {
		t.Errorf("Lemma(Unknown) = %q", got)
	}

	if l.Len() != 2 {
		t.Errorf("expected 2 word forms, got %d", l.Len())
	}
}

func TestIsAux(t *testing.T) {
	l := New()
	l.Add(sentence(
		[3]string{"has", "have", "AUX"},
		[3]string{"has", "have", "AUX"},
		[3]string{"has", "have", "VERB"},
		[3]string{"killed", "kill", "VERB"},
	))

	tests := []struct {
		verb string
		want bool
	}{
		{"has", true},
		{"!has", true},
		{"killed", false},
		{"!killed", false},
		{"would", true},
		{"burned", false},
		{"has killed", true},
	}

	for _, tt := range tests {
		if got := l.IsAux(tt.verb); got != tt.want {
			t.Errorf("IsAux(%q) = %v, want %v", tt.verb, got, tt.want)
		}
	}
}

func TestVerbRoot(t *testing.T) {
	l := New()
	l.Add(sentence([3]string{"attacked", "attack", "VERB"}))

	tests := []struct {
		verb string
		want string
	}{
		{"attacked", "attack"},
		{"!attacked", "!attack"},
		{"!attack", "!attack"},
		{"fled", "fled"},
	}

	for _, tt := range tests {
		if got := l.VerbRoot(tt.verb); got != tt.want {
			t.Errorf("VerbRoot(%q) = %q, want %q", tt.verb, got, tt.want)
		}
	}
}
