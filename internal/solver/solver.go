package solver

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/specialistvlad/gridwords/internal/board"
	"github.com/specialistvlad/gridwords/internal/ctxlog"
	"github.com/specialistvlad/gridwords/internal/trie"
	"golang.org/x/sync/errgroup"
)

// DefaultMinLength is the shortest word that is ever reported.
const DefaultMinLength = 3

// Match is a found word and one simple path that spells it.
type Match struct {
	Word string        `json:"word"`
	Path []board.Coord `json:"path"`
}

// Solver searches boards of a fixed size against a frozen tree.
type Solver struct {
	tree      *trie.Tree
	size      int
	workers   int
	minLength int
}

// Option configures a Solver.
type Option func(*Solver)

// WithSize sets the board dimension. Non-positive values are ignored.
func WithSize(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.size = n
		}
	}
}

// WithWorkers sets how many goroutines share the starting cells.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMinLength raises the shortest reported word, counted in runes. Values
// below DefaultMinLength are ignored: words of two letters or fewer are never
// reported.
func WithMinLength(n int) Option {
	return func(s *Solver) {
		if n >= DefaultMinLength {
			s.minLength = n
		}
	}
}

// New creates a solver over tree. The tree must already be frozen, which
// the trie package guarantees by only handing out frozen trees.
func New(tree *trie.Tree, opts ...Option) *Solver {
	s := &Solver{
		tree:      tree,
		size:      board.DefaultSize,
		workers:   1,
		minLength: DefaultMinLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the board dimension the solver accepts.
func (s *Solver) Size() int {
	return s.size
}

// Solve returns every distinct dictionary word traceable on g, ordered by
// ascending length. A board that is not Size×Size is a programming error:
// Solve panics with the *board.ShapeError rather than return partial
// results.
func (s *Solver) Solve(g board.Grid) []string {
	if err := g.Validate(s.size); err != nil {
		panic(err)
	}
	matches, err := s.run(context.Background(), g)
	if err != nil {
		// Only reachable through cancellation, which a background context
		// never delivers.
		panic(err)
	}
	return Words(matches)
}

// Matches runs the same search as Solve but returns each word with its path.
// The board shape is reported as an error, and the search stops early when
// ctx is cancelled.
func (s *Solver) Matches(ctx context.Context, g board.Grid) ([]Match, error) {
	if err := g.Validate(s.size); err != nil {
		return nil, err
	}
	return s.run(ctx, g)
}

// Words extracts the words of matches, keeping their order.
func Words(matches []Match) []string {
	words := make([]string, len(matches))
	for i, m := range matches {
		words[i] = m.Word
	}
	return words
}

func (s *Solver) run(ctx context.Context, g board.Grid) ([]Match, error) {
	logger := ctxlog.FromContext(ctx)
	starts := board.Cells(s.size)

	var found map[string][]board.Coord
	var err error
	if s.workers <= 1 {
		var st stats
		found, st, err = s.search(ctx, g, starts)
		if err == nil {
			logger.Debug("Search finished.", "visited", st.visited, "pruned", st.pruned, "peak", st.peak, "words", len(found))
		}
	} else {
		found, err = s.searchParallel(ctx, g, starts)
	}
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(found))
	for word, path := range found {
		matches = append(matches, Match{Word: word, Path: path})
	}
	sortMatches(matches)
	return matches, nil
}

type stats struct {
	visited int
	pruned  int
	// peak is the largest frontier seen.
	peak int
}

// search runs one breadth-first frontier seeded with the given cells. Each
// entry carries its tree cursor, so extending a path costs one child lookup
// and branches that no word continues are never queued.
func (s *Solver) search(ctx context.Context, g board.Grid, starts []board.Coord) (map[string][]board.Coord, stats, error) {
	var st stats
	found := make(map[string][]board.Coord)
	queue := newFrontier(len(starts) * 8)
	root := s.tree.Root()
	for _, c := range starts {
		cursor, ok := root.Next(g.At(c))
		if !ok {
			st.pruned++
			continue
		}
		queue.push(entry{at: c, path: []board.Coord{c}, word: string(cursor.Letter()), cursor: cursor})
	}
	st.peak = queue.len()

	for {
		e, ok := queue.pop()
		if !ok {
			break
		}
		st.visited++
		if (st.visited-1)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, st, err
			}
		}

		switch e.cursor.Status() {
		case trie.Impossible:
			st.pruned++
			continue
		case trie.Word:
			if len(e.path) >= s.minLength {
				record(found, e.word, e.path)
			}
		}

		for _, n := range board.Neighbors(e.at, s.size) {
			if slices.Contains(e.path, n) {
				continue
			}
			next, ok := e.cursor.Next(g.At(n))
			if !ok {
				st.pruned++
				continue
			}
			path := make([]board.Coord, len(e.path)+1)
			copy(path, e.path)
			path[len(e.path)] = n
			queue.push(entry{at: n, path: path, word: e.word + string(next.Letter()), cursor: next})
		}
		st.peak = max(st.peak, queue.len())
	}
	return found, st, nil
}

// searchParallel hands starting cells to a bounded set of workers. Each cell
// gets its own frontier; the per-cell results are merged under a mutex.
func (s *Solver) searchParallel(ctx context.Context, g board.Grid, starts []board.Coord) (map[string][]board.Coord, error) {
	logger := ctxlog.FromContext(ctx)
	workers := min(s.workers, len(starts))

	var mu sync.Mutex
	found := make(map[string][]board.Coord)

	eg, ctx := errgroup.WithContext(ctx)
	cells := make(chan board.Coord)

	eg.Go(func() error {
		defer close(cells)
		for _, c := range starts {
			select {
			case cells <- c:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for id := 0; id < workers; id++ {
		eg.Go(func() error {
			workerLogger := logger.With("workerID", id)
			workerLogger.Debug("Worker started.")
			var total stats
			for c := range cells {
				local, st, err := s.search(ctx, g, []board.Coord{c})
				if err != nil {
					return err
				}
				total.visited += st.visited
				total.pruned += st.pruned
				total.peak = max(total.peak, st.peak)

				mu.Lock()
				for word, path := range local {
					record(found, word, path)
				}
				mu.Unlock()
			}
			workerLogger.Debug("Worker finished.", "visited", total.visited, "pruned", total.pruned, "peak", total.peak)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

// record keeps the smallest path per word so that the reported path does not
// depend on search or merge order.
func record(found map[string][]board.Coord, word string, path []board.Coord) {
	if prev, ok := found[word]; ok && comparePaths(prev, path) <= 0 {
		return
	}
	found[word] = path
}

func comparePaths(a, b []board.Coord) int {
	return slices.CompareFunc(a, b, func(x, y board.Coord) int {
		if c := cmp.Compare(x.Row, y.Row); c != 0 {
			return c
		}
		return cmp.Compare(x.Col, y.Col)
	})
}

// sortMatches orders by rune length, then alphabetically.
func sortMatches(matches []Match) {
	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(len(a.Path), len(b.Path)); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
}
