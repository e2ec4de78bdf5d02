// Package group holds the table of in-group and out-group labels and
// resolves the phrases of a triple to one of them.
package group

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

var ErrUnknownGroup = errors.New("unknown group")

type Type string

const (
	InGroup  Type = "ingroup"
	OutGroup Type = "outgroup"
)

// Group is an entity label and its type.
type Group struct {
	Name string
	Type Type
}

var (
	symbols    = regexp.MustCompile(`(#|&|:|"|\?)`)
	whitespace = regexp.MustCompile(`[ \t\n\r\f\v]+`)
)

// Table is the ordered set of group labels. Longer labels (in words, then
// in characters) come first, so that "armed group" is preferred over
// "group".
type Table struct {
	groups []Group
	forms  []*regexp.Regexp
	types  map[string]Type

	resolved *gocache.Cache
}

type resolution struct {
	name string
	ok   bool
}

// NewTable normalizes (trim, lowercase) and sorts the groups.
func NewTable(groups []Group) (*Table, error) {
	t := &Table{
		types:    map[string]Type{},
		resolved: gocache.New(gocache.NoExpiration, 0),
	}

	for _, g := range groups {
		g.Name = strings.ToLower(strings.TrimSpace(g.Name))
		g.Type = Type(strings.ToLower(strings.TrimSpace(string(g.Type))))
		if g.Name == "" {
			continue
		}

		if g.Type != InGroup && g.Type != OutGroup {
			return nil, fmt.Errorf("group %q: invalid type %q", g.Name, g.Type)
		}

		t.groups = append(t.groups, g)
		t.types[g.Name] = g.Type
	}

	sort.SliceStable(t.groups, func(i, j int) bool {
		wi, wj := len(strings.Fields(t.groups[i].Name)), len(strings.Fields(t.groups[j].Name))
		if wi != wj {
			return wi > wj
		}
		return len(t.groups[i].Name) > len(t.groups[j].Name)
	})

	for _, g := range t.groups {
		form := regexp.MustCompile(`( |^)` + regexp.QuoteMeta(g.Name) + `(s|i|in|es)?( |$)`)
		t.forms = append(t.forms, form)
	}

	return t, nil
}

// Load reads a group_name,group_type CSV with header.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading group header: %w", err)
	}

	nameCol, typeCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.ToLower(h)) {
		case "group_name":
			nameCol = i
		case "group_type":
			typeCol = i
		}
	}

	if nameCol < 0 || typeCol < 0 {
		return nil, errors.New("group file must have group_name and group_type columns")
	}

	var groups []Group
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		groups = append(groups, Group{Name: rec[nameCol], Type: Type(rec[typeCol])})
	}

	return NewTable(groups)
}

// LoadFile reads the group table from a CSV file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Groups returns the groups in table order.
func (t *Table) Groups() []Group {
	return append([]Group(nil), t.groups...)
}

// Names returns the group names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.groups))
	for i, g := range t.groups {
		names[i] = g.Name
	}
	return names
}

// Mentioned reports whether any group name is a substring of the sentence.
// It is a cheap pre-filter; word boundaries are not checked.
func (t *Table) Mentioned(sentence string) bool {
	for _, g := range t.groups {
		if strings.Contains(sentence, g.Name) {
			return true
		}
	}

	return false
}

// Contains reports whether the phrase mentions a group, as a word with an
// optional plural suffix.
func (t *Table) Contains(phrase string) bool {
	_, ok := t.Resolve(phrase)
	return ok
}

// Resolve returns the group mentioned first in the phrase. On the same
// position the group first in the table wins.
func (t *Table) Resolve(phrase string) (string, bool) {
	phrase = Clean(phrase)

	if v, found := t.resolved.Get(phrase); found {
		r := v.(resolution)
		return r.name, r.ok
	}

	r := resolution{}
	best := -1
	for i, form := range t.forms {
		loc := form.FindStringIndex(phrase)
		if loc == nil {
			continue
		}

		if best == -1 || loc[0] < best {
			best = loc[0]
			r = resolution{name: t.groups[i].Name, ok: true}
		}
	}

	t.resolved.Set(phrase, r, gocache.NoExpiration)
	return r.name, r.ok
}

// TypeOf returns the type of a group name.
func (t *Table) TypeOf(name string) (Type, error) {
	typ, ok := t.types[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}

	return typ, nil
}

// Clean replaces symbols by spaces, collapses whitespace and lowercases the
// phrase.
func Clean(s string) string {
	s = symbols.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
