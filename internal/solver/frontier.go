package solver

import (
	"github.com/specialistvlad/gridwords/internal/board"
	"github.com/specialistvlad/gridwords/internal/trie"
)

// entry is one pending path. at is always the last element of path, word
// holds the letters along path, and cursor is the tree node that word leads to.
type entry struct {
	at     board.Coord
	path   []board.Coord
	word   string
	cursor trie.Cursor
}

// frontier is a FIFO queue of pending paths.
type frontier struct {
	items []entry
	head  int
}

func newFrontier(capacity int) *frontier {
	return &frontier{items: make([]entry, 0, capacity)}
}

func (f *frontier) push(e entry) {
	f.items = append(f.items, e)
}

func (f *frontier) pop() (entry, bool) {
	if f.head == len(f.items) {
		return entry{}, false
	}
	e := f.items[f.head]
	f.items[f.head] = entry{}
	f.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 1024 && f.head*2 > len(f.items) {
		n := copy(f.items, f.items[f.head:])
		clear(f.items[n:])
		f.items = f.items[:n]
		f.head = 0
	}
	return e, true
}

func (f *frontier) len() int {
	return len(f.items) - f.head
}
