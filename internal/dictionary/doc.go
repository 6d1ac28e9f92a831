// Package dictionary turns word lists into a frozen trie.Tree.
//
// It is the only place where dictionary text is cleaned: entries are read
// one per line, a leading byte order mark is dropped, the text is brought
// to NFC and lower-cased, and blank or undecodable lines are skipped. The
// tree therefore only ever sees normalized words.
//
// A source may be a single file, a directory searched recursively for word
// list files, or an http(s) URL.
package dictionary
