package sentence

import (
	"errors"
	"fmt"
)

var ErrInvalidTree = errors.New("invalid dependency tree")

// Tree is a read-only view of a parsed sentence with parent/child
// navigation. Tokens are identified by their index in the sentence.
//
// The slices returned by Lefts, Rights and Children are shared; callers must
// not modify them.
type Tree struct {
	sentence Sentence
	lefts    [][]int
	rights   [][]int
}

// NewTree validates the sentence structure and builds the child views. Every
// token index must equal its position, every head must be inside the
// sentence and following heads must always end in a root.
func NewTree(s Sentence) (*Tree, error) {
	n := len(s.Tokens)
	tokens := make([]Token, n)
	copy(tokens, s.Tokens)
	s.Tokens = tokens

	chunks := make([]Chunk, len(s.Chunks))
	copy(chunks, s.Chunks)
	s.Chunks = chunks

	t := &Tree{
		sentence: s,
		lefts:    make([][]int, n),
		rights:   make([][]int, n),
	}

	for i, tok := range tokens {
		if tok.Index != i {
			return nil, fmt.Errorf("%w: token %q has index %d at position %d", ErrInvalidTree, tok.Text, tok.Index, i)
		}

		if tok.Head < 0 || tok.Head >= n {
			return nil, fmt.Errorf("%w: token %d head %d out of range", ErrInvalidTree, i, tok.Head)
		}

		if tok.Head == i {
			continue
		}

		// children are visited in index order, so both views stay sorted
		if i < tok.Head {
			t.lefts[tok.Head] = append(t.lefts[tok.Head], i)
		} else {
			t.rights[tok.Head] = append(t.rights[tok.Head], i)
		}
	}

	for i := range tokens {
		t.lefts[i] = t.lefts[i][:len(t.lefts[i]):len(t.lefts[i])]
		t.rights[i] = t.rights[i][:len(t.rights[i]):len(t.rights[i])]
	}

	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}

	for _, c := range chunks {
		if c.Start < 0 || c.End > n || c.Start >= c.End {
			return nil, fmt.Errorf("%w: noun chunk [%d, %d) out of range", ErrInvalidTree, c.Start, c.End)
		}
	}

	return t, nil
}

func (t *Tree) checkAcyclic() error {
	n := t.Len()
	// 0 unvisited, 1 on the current path, 2 reaches a root
	state := make([]int, n)
	for i := 0; i < n; i++ {
		path := []int{}
		cur := i
		for state[cur] == 0 {
			state[cur] = 1
			path = append(path, cur)
			head := t.sentence.Tokens[cur].Head
			if head == cur {
				break
			}
			cur = head
		}

		if state[cur] == 1 && t.sentence.Tokens[cur].Head != cur {
			return fmt.Errorf("%w: cycle through token %d", ErrInvalidTree, cur)
		}

		for _, p := range path {
			state[p] = 2
		}
	}

	return nil
}

func (t *Tree) Len() int {
	return len(t.sentence.Tokens)
}

func (t *Tree) Token(i int) Token {
	return t.sentence.Tokens[i]
}

// Tokens returns a copy of the sentence tokens.
func (t *Tree) Tokens() []Token {
	tokens := make([]Token, len(t.sentence.Tokens))
	copy(tokens, t.sentence.Tokens)
	return tokens
}

func (t *Tree) Head(i int) int {
	return t.sentence.Tokens[i].Head
}

func (t *Tree) IsRoot(i int) bool {
	return t.sentence.Tokens[i].Head == i
}

// Lefts returns the children of i placed before it, in sentence order.
func (t *Tree) Lefts(i int) []int {
	return t.lefts[i]
}

// Rights returns the children of i placed after it, in sentence order.
func (t *Tree) Rights(i int) []int {
	return t.rights[i]
}

// Children returns the left children followed by the right children of i.
func (t *Tree) Children(i int) []int {
	children := make([]int, 0, len(t.lefts[i])+len(t.rights[i]))
	children = append(children, t.lefts[i]...)
	return append(children, t.rights[i]...)
}

// Conjuncts returns the tokens coordinated with i: starting from the first
// conjunct (climbing conj arcs), every right conj descendant. i itself is
// excluded.
func (t *Tree) Conjuncts(i int) []int {
	start := i
	for !t.IsRoot(start) && t.sentence.Tokens[start].Dep == "conj" {
		start = t.Head(start)
	}

	queue := []int{start}
	for k := 0; k < len(queue); k++ {
		for _, child := range t.rights[queue[k]] {
			if t.sentence.Tokens[child].Dep == "conj" {
				queue = append(queue, child)
			}
		}
	}

	conjuncts := []int{}
	for _, c := range queue {
		if c != i {
			conjuncts = append(conjuncts, c)
		}
	}

	return conjuncts
}

// Chunks returns the noun chunks of the sentence.
func (t *Tree) Chunks() []Chunk {
	return t.sentence.Chunks
}

// Text returns the sentence text.
func (t *Tree) Text() string {
	return t.sentence.SentenceText()
}

// Sentence returns a copy of the underlying sentence.
func (t *Tree) Sentence() Sentence {
	s := t.sentence
	s.Tokens = t.Tokens()
	s.Chunks = append([]Chunk(nil), t.sentence.Chunks...)
	return s
}
