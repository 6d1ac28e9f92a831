package trie

import (
	"errors"
)

// ErrFrozen is returned by Insert once the builder has been frozen.
var ErrFrozen = errors.New("trie: builder is frozen")

const rootNode = 0

// node is one arena entry. The root has a zero letter.
type node struct {
	letter   rune
	terminal bool
	children map[rune]int32
}

// Builder accumulates words into an arena of nodes.
type Builder struct {
	nodes    []node
	numWords int
	frozen   bool
}

// NewBuilder creates a builder holding only the root node.
func NewBuilder() *Builder {
	return &Builder{nodes: []node{{}}}
}

// Insert adds a word, creating one node per rune that is not already shared
// with a previously inserted word. Empty words are ignored and inserting the
// same word twice has no effect.
func (b *Builder) Insert(word string) error {
	if b.frozen {
		return ErrFrozen
	}
	if word == "" {
		return nil
	}

	current := int32(rootNode)
	for _, letter := range word {
		next, ok := b.nodes[current].children[letter]
		if !ok {
			next = int32(len(b.nodes))
			b.nodes = append(b.nodes, node{letter: letter})
			if b.nodes[current].children == nil {
				b.nodes[current].children = make(map[rune]int32)
			}
			b.nodes[current].children[letter] = next
		}
		current = next
	}

	if !b.nodes[current].terminal {
		b.nodes[current].terminal = true
		b.numWords++
	}
	return nil
}

// Len returns the number of distinct words inserted so far.
func (b *Builder) Len() int {
	return b.numWords
}

// Freeze ends construction and hands the arena over to a read-only Tree.
// Calling Freeze more than once returns trees over the same arena.
func (b *Builder) Freeze() *Tree {
	b.frozen = true
	return &Tree{nodes: b.nodes, numWords: b.numWords}
}

// Tree is a frozen prefix tree. It is safe for concurrent use.
type Tree struct {
	nodes    []node
	numWords int
}

// Classify walks the tree along seq and reports whether seq is a word, a
// viable prefix, or a dead end. The walk stops at the first rune without a
// matching child.
func (t *Tree) Classify(seq string) Status {
	c := t.Root()
	for _, letter := range seq {
		var ok bool
		if c, ok = c.Next(letter); !ok {
			return Impossible
		}
	}
	return c.Status()
}

// Contains reports whether word was inserted.
func (t *Tree) Contains(word string) bool {
	return t.Classify(word) == Word
}

// NumWords returns the number of distinct words in the tree.
func (t *Tree) NumWords() int {
	return t.numWords
}

// NumNodes returns the number of nodes, the root included.
func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// Root returns a cursor positioned at the root.
func (t *Tree) Root() Cursor {
	return Cursor{tree: t, index: rootNode}
}

// Cursor is a position in a Tree. It lets callers classify a sequence one
// rune at a time instead of re-walking it from the root.
type Cursor struct {
	tree  *Tree
	index int32
}

// Next follows the child for letter. The returned bool is false when no such
// child exists, in which case every extension of the sequence is Impossible.
func (c Cursor) Next(letter rune) (Cursor, bool) {
	next, ok := c.tree.nodes[c.index].children[letter]
	if !ok {
		return Cursor{}, false
	}
	return Cursor{tree: c.tree, index: next}, true
}

// Letter returns the rune of the node under the cursor, zero at the root.
func (c Cursor) Letter() rune {
	return c.tree.nodes[c.index].letter
}

// Status classifies the sequence that led to this cursor. A terminal node is
// a Word even when longer words continue through it.
func (c Cursor) Status() Status {
	n := &c.tree.nodes[c.index]
	switch {
	case n.terminal:
		return Word
	case len(n.children) > 0:
		return Possible
	default:
		return Impossible
	}
}
