// Package network aggregates the triples of a corpus into a typed node table
// and two weighted edge tables, one for in-group subjects and one for
// out-group subjects.
package network

import (
	"errors"
	"fmt"

	"github.com/revelaction/svograph/group"
	"github.com/revelaction/svograph/svo"
)

// Verb is the node type of verbs
const Verb group.Type = "verb"

var ErrInconsistent = errors.New("inconsistent network")

// Typer returns the type of a group name.
type Typer interface {
	TypeOf(name string) (group.Type, error)
}

// VerbRooter names the verb node of a verb phrase.
type VerbRooter interface {
	VerbRoot(verb string) string
}

type Node struct {
	Id   int
	Name string
	Type group.Type
}

type Edge struct {
	Source int
	Target int
	Weight int
}

type nodeKey struct {
	name string
	typ  group.Type
}

type edgeKey struct {
	source int
	target int
}

// Table is a set of weighted edges kept in the order of first occurrence.
type Table struct {
	index map[edgeKey]int
	edges []Edge
}

func newTable() *Table {
	return &Table{index: map[edgeKey]int{}}
}

func (t *Table) add(source, target int) {
	k := edgeKey{source, target}
	if i, ok := t.index[k]; ok {
		t.edges[i].Weight++
		return
	}

	t.index[k] = len(t.edges)
	t.edges = append(t.edges, Edge{Source: source, Target: target, Weight: 1})
}

// Edges returns a copy of the edges.
func (t *Table) Edges() []Edge {
	return append([]Edge(nil), t.edges...)
}

// Weight returns the sum of all the edge weights.
func (t *Table) Weight() int {
	sum := 0
	for _, e := range t.edges {
		sum += e.Weight
	}
	return sum
}

// Network is the result of a Builder.
type Network struct {
	Nodes []Node
	In    *Table
	Out   *Table

	// Triples is the number of triples added
	Triples int
}

// Node returns the node with the given id.
func (n *Network) Node(id int) (Node, bool) {
	if id < 0 || id >= len(n.Nodes) {
		return Node{}, false
	}
	return n.Nodes[id], true
}

// Builder accumulates triples into a Network.
type Builder struct {
	groups Typer
	verbs  VerbRooter

	ids     map[nodeKey]int
	network *Network
}

func NewBuilder(groups Typer, verbs VerbRooter) *Builder {
	return &Builder{
		groups: groups,
		verbs:  verbs,
		ids:    map[nodeKey]int{},
		network: &Network{
			In:  newTable(),
			Out: newTable(),
		},
	}
}

// Add adds the triples of one sentence. Subject and object must be group
// names. Triples relating a group with itself are skipped. A group missing
// from the table is an ErrUnknownGroup error; the triples of the call
// already added are kept.
func (b *Builder) Add(triples []svo.Triple) error {
	for _, t := range triples {
		if t.Subject == t.Object {
			continue
		}

		subType, err := b.groups.TypeOf(t.Subject)
		if err != nil {
			return err
		}

		objType, err := b.groups.TypeOf(t.Object)
		if err != nil {
			return err
		}

		var table *Table
		switch subType {
		case group.InGroup:
			table = b.network.In
		case group.OutGroup:
			table = b.network.Out
		default:
			return fmt.Errorf("%w: %q has type %q", group.ErrUnknownGroup, t.Subject, subType)
		}

		sub := b.node(t.Subject, subType)
		verb := b.node(b.verbs.VerbRoot(t.Verb), Verb)
		obj := b.node(t.Object, objType)

		table.add(sub, verb)
		table.add(verb, obj)
		b.network.Triples++
	}

	return nil
}

func (b *Builder) node(name string, typ group.Type) int {
	k := nodeKey{name, typ}
	if id, ok := b.ids[k]; ok {
		return id
	}

	id := len(b.network.Nodes)
	b.ids[k] = id
	b.network.Nodes = append(b.network.Nodes, Node{Id: id, Name: name, Type: typ})
	return id
}

// Network returns the network built so far.
func (b *Builder) Network() *Network {
	return b.network
}

// Check verifies that every triple contributed two edges and that the
// sources of each table have the expected type: in-group or verb for In,
// out-group or verb for Out.
func (n *Network) Check() error {
	if got, want := n.In.Weight()+n.Out.Weight(), 2*n.Triples; got != want {
		return fmt.Errorf("%w: total edge weight %d, want %d", ErrInconsistent, got, want)
	}

	if err := n.checkSources(n.In, group.InGroup, "In"); err != nil {
		return err
	}

	return n.checkSources(n.Out, group.OutGroup, "Out")
}

func (n *Network) checkSources(t *Table, typ group.Type, name string) error {
	for _, e := range t.edges {
		src, ok := n.Node(e.Source)
		if !ok {
			return fmt.Errorf("%w: %s edge source %d is not a node", ErrInconsistent, name, e.Source)
		}

		if _, ok := n.Node(e.Target); !ok {
			return fmt.Errorf("%w: %s edge target %d is not a node", ErrInconsistent, name, e.Target)
		}

		if src.Type != typ && src.Type != Verb {
			return fmt.Errorf("%w: %s edge source %q has type %q", ErrInconsistent, name, src.Name, src.Type)
		}
	}

	return nil
}
