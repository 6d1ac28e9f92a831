// Package trie provides the prefix tree used to prune the grid search.
//
// # Lifecycle
//
// A tree is built once and then only read:
//  1. Create a Builder with NewBuilder.
//  2. Insert every dictionary word.
//  3. Call Freeze to obtain a read-only Tree.
//
// A frozen Tree is never mutated again, so any number of goroutines may call
// Classify on it at the same time without locking. The Builder refuses
// further inserts once frozen.
//
// # Classification
//
// Classify answers, for any letter sequence, one of three things:
//   - Word: the sequence is a complete dictionary word.
//   - Possible: it is not a word, but some longer word starts with it.
//   - Impossible: no dictionary word starts with it.
//
// Nodes live in a flat arena and refer to their children by index, so the
// tree owns every node exactly once and cannot contain cycles.
package trie
