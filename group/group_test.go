package group

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const groups = `group_name,group_type
 ISIS ,outgroup
isis fighters,outgroup
muslims,ingroup
us,ingroup
western governments,outgroup
`

func loadTable(t *testing.T) *Table {
	t.Helper()
	tb, err := Load(strings.NewReader(groups))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tb
}

func TestLoadSortsLongestFirst(t *testing.T) {
	tb := loadTable(t)

	want := []string{"western governments", "isis fighters", "muslims", "isis", "us"}
	if got := tb.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order %v, want %v", got, want)
	}
}

func TestResolve(t *testing.T) {
	tb := loadTable(t)

	tests := []struct {
		phrase string
		want   string
		ok     bool
	}{
		{"isis fighters", "isis fighters", true},
		{"the isis fighters in raqqa", "isis fighters", true},
		{"isis", "isis", true},
		{"the muslims", "muslims", true},
		{"muslim", "", false},
		{"#isis: the group", "isis", true},
		{"us and the western governments", "us", true},
		{"the western governments and us", "western governments", true},
		{"those users", "", false},
		{"the using", "", false},
		{"ISIS", "isis", true},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, ok := tb.Resolve(tt.phrase)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Resolve(%q) = %q, %v, want %q, %v", tt.phrase, got, ok, tt.want, tt.ok)
			}

			if tb.Contains(tt.phrase) != tt.ok {
				t.Errorf("Contains(%q) != %v", tt.phrase, tt.ok)
			}
		})
	}
}

func TestResolveSuffix(t *testing.T) {
	tb, err := NewTable([]Group{{Name: "jihad", Type: OutGroup}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range []string{"jihads", "jihadi", "jihadin", "jihades", "the jihad"} {
		if !tb.Contains(p) {
			t.Errorf("expected %q to mention jihad", p)
		}
	}

	if tb.Contains("jihadist") {
		t.Errorf("expected jihadist not to mention jihad")
	}
}

func TestMentioned(t *testing.T) {
	tb := loadTable(t)

	if !tb.Mentioned("they hate the isis fighters") {
		t.Errorf("expected mention")
	}

	// plain substring
	if !tb.Mentioned("a house") {
		t.Errorf("expected substring mention of us")
	}

	if tb.Mentioned("nothing here") {
		t.Errorf("expected no mention")
	}
}

func TestTypeOf(t *testing.T) {
	tb := loadTable(t)

	typ, err := tb.TypeOf("muslims")
	if err != nil || typ != InGroup {
		t.Fatalf("TypeOf(muslims) = %q, %v", typ, err)
	}

	if _, err := tb.TypeOf("rebels"); !errors.Is(err, ErrUnknownGroup) {
		t.Fatalf("expected ErrUnknownGroup, got %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load(strings.NewReader("name,type\na,ingroup\n")); err == nil {
		t.Errorf("expected error for missing columns")
	}

	if _, err := Load(strings.NewReader("group_name,group_type\na,neutral\n")); err == nil {
		t.Errorf("expected error for invalid type")
	}
}
