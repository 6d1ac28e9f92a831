package trie

// Status is the classification of a letter sequence against a Tree.
type Status int

const (
	// Impossible means no dictionary word starts with the sequence.
	Impossible Status = iota
	// Possible means the sequence is a strict prefix of at least one word.
	Possible
	// Word means the sequence is itself a dictionary word.
	Word
)

func (s Status) String() string {
	switch s {
	case Word:
		return "word"
	case Possible:
		return "possible"
	default:
		return "impossible"
	}
}
