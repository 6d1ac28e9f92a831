// Package solver finds every dictionary word that can be traced on a board
// as a simple path of adjacent cells.
//
// The search is a breadth-first expansion of candidate paths. Each path is
// spelled out and classified against a frozen trie.Tree: Impossible paths
// are dropped on the spot, which is what keeps the search far below the
// full N²×N! path space. Word paths are recorded and still expanded, since
// a word may be the prefix of a longer one.
//
// A Solver only reads its tree, so one tree can back any number of
// concurrent solves. With more than one worker the starting cells are
// spread over a bounded set of goroutines and their result sets merged.
package solver
