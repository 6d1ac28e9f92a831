package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/gridwords/internal/ctxlog"
	"github.com/specialistvlad/gridwords/internal/fsutil"
	"github.com/specialistvlad/gridwords/internal/trie"
	"resty.dev/v3"
)

// Extensions lists the file extensions picked up when a source is a
// directory.
var Extensions = []string{".txt", ".dic", ".words"}

// maxLineLength bounds a single dictionary line.
const maxLineLength = 1 << 20

// Stats summarizes one load.
type Stats struct {
	Files   int
	Lines   int
	Skipped int
	Words   int
	Nodes   int
}

// Load reads every word list behind source and returns the frozen tree.
func Load(ctx context.Context, source string) (*trie.Tree, Stats, error) {
	logger := ctxlog.FromContext(ctx).With("source", source)
	logger.Debug("Dictionary load started.")

	b := trie.NewBuilder()
	var stats Stats

	if isRemote(source) {
		if err := loadRemote(ctx, source, b, &stats); err != nil {
			return nil, stats, err
		}
	} else {
		files, err := fsutil.FindFiles(source, Extensions...)
		if err != nil {
			return nil, stats, fmt.Errorf("failed to find dictionary files in %s: %w", source, err)
		}
		if len(files) == 0 {
			// A single file is accepted whatever its extension.
			if info, statErr := os.Stat(source); statErr == nil && !info.IsDir() {
				files = []string{source}
			}
		}
		if len(files) == 0 {
			return nil, stats, fmt.Errorf("no dictionary files found in %s", source)
		}
		for _, file := range files {
			if err := loadFile(file, b, &stats); err != nil {
				return nil, stats, err
			}
			logger.Debug("Dictionary file read.", "file", file)
		}
	}

	tree := b.Freeze()
	stats.Words = tree.NumWords()
	stats.Nodes = tree.NumNodes()
	logger.Debug("Dictionary load finished.", "files", stats.Files, "lines", stats.Lines, "skipped", stats.Skipped, "words", stats.Words, "nodes", stats.Nodes)
	return tree, stats, nil
}

// FromWords builds a frozen tree from in-memory entries, applying the same
// cleaning as Load.
func FromWords(words ...string) *trie.Tree {
	b := trie.NewBuilder()
	n := newNormalizer()
	for _, w := range words {
		if word, ok := n.Normalize(w); ok {
			// A fresh builder is never frozen, so Insert cannot fail here.
			_ = b.Insert(word)
		}
	}
	return b.Freeze()
}

// Read inserts every usable line of r into b and returns the line counts.
// Lines longer than maxLineLength are skipped like any other unusable line.
func Read(r io.Reader, b *trie.Builder) (Stats, error) {
	var stats Stats
	n := newNormalizer()

	br := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read dictionary: %w", err)
		}

		if !tooLong {
			if len(line)+len(chunk) > maxLineLength {
				tooLong = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}
		if isPrefix {
			continue
		}

		stats.Lines++
		word, ok := "", false
		if !tooLong {
			word, ok = n.Normalize(string(line))
		}
		line = line[:0]
		tooLong = false
		if !ok {
			stats.Skipped++
			continue
		}
		if err := b.Insert(word); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func loadFile(path string, b *trie.Builder, stats *Stats) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f, b)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	stats.add(s)
	stats.Files++
	return nil
}

func loadRemote(ctx context.Context, url string, b *trie.Builder, stats *Stats) error {
	client := resty.New()
	defer client.Close()

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return fmt.Errorf("failed to download dictionary %s: %w", url, err)
	}
	if resp.IsError() {
		return fmt.Errorf("failed to download dictionary %s: %s", url, resp.Status())
	}

	s, err := Read(strings.NewReader(resp.String()), b)
	if err != nil {
		return fmt.Errorf("%s: %w", url, err)
	}
	stats.add(s)
	stats.Files++
	return nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (s *Stats) add(other Stats) {
	s.Lines += other.Lines
	s.Skipped += other.Skipped
}
