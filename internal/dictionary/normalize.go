package dictionary

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const byteOrderMark = '\uFEFF'

// normalizer cleans single dictionary entries. It holds a cases.Caser, which
// keeps state between calls, so each goroutine needs its own.
type normalizer struct {
	lower cases.Caser
}

func newNormalizer() *normalizer {
	return &normalizer{lower: cases.Lower(language.Und)}
}

// Normalize returns the cleaned form of line and false when the line is not
// a usable entry.
func (n *normalizer) Normalize(line string) (string, bool) {
	if !utf8.ValidString(line) {
		return "", false
	}
	line = strings.TrimLeft(line, string(byteOrderMark))
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return n.lower.String(norm.NFC.String(line)), true
}

// NormalizeGrid folds board rows the same way dictionary entries are folded,
// for callers that want case-insensitive matching.
func NormalizeGrid(rows []string) []string {
	n := newNormalizer()
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = n.lower.String(norm.NFC.String(strings.TrimSpace(row)))
	}
	return out
}
