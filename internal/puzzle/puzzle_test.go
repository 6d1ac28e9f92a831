package puzzle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridwords/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse_RowForms(t *testing.T) {
	src := `
size = 4

board "list" {
  rows = ["cats", "btaa", "xxxx", "xxxx"]
}

board "string" {
  rows = "cats btaa\n xxxx xxxx"
}

board "split" {
  rows = split("/", lower("CATS/BTAA/XXXX/XXXX"))
}

board "folded" {
  rows      = ["CATS", "BTAA", "XXXX", "XXXX"]
  fold_case = true
}
`
	p, err := Parse([]byte(src), "inline.hcl")
	require.NoError(t, err)

	assert.Equal(t, 4, p.Size)
	assert.Empty(t, p.Dictionary)
	require.Len(t, p.Boards, 4)

	want := []string{"cats", "btaa", "xxxx", "xxxx"}
	for _, b := range p.Boards {
		if diff := cmp.Diff(want, b.Grid.Rows()); diff != "" {
			t.Errorf("board %q rows mismatch (-want +got):\n%s", b.Name, diff)
		}
		assert.Contains(t, b.Source, "inline.hcl:")
	}
	require.NoError(t, p.Validate(board.DefaultSize))
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `board "a" {`,
			wantErr: "failed to parse HCL",
		},
		{
			name:    "missing rows",
			src:     `board "a" {}`,
			wantErr: "failed to decode HCL",
		},
		{
			name:    "rows of numbers",
			src:     `board "a" { rows = [[1], [2]] }`,
			wantErr: "rows must be a list of strings",
		},
		{
			name:    "duplicate board",
			src:     "board \"a\" { rows = [\"ab\", \"cd\"] }\nboard \"a\" { rows = [\"ab\", \"cd\"] }",
			wantErr: `duplicate board "a"`,
		},
		{
			name:    "non-positive size",
			src:     `size = 0`,
			wantErr: "size must be positive",
		},
		{
			name:    "unknown attribute",
			src:     `colour = "red"`,
			wantErr: "failed to decode HCL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), "bad.hcl")
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidate_NamesTheBoard(t *testing.T) {
	p, err := Parse([]byte(`board "small" { rows = ["cat", "bta", "xxx"] }`), "small.hcl")
	require.NoError(t, err)

	err = p.Validate(board.DefaultSize)
	require.ErrorContains(t, err, `board "small"`)
	var shapeErr *board.ShapeError
	require.ErrorAs(t, err, &shapeErr)

	require.NoError(t, p.Validate(3))
}

func TestLoadFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.hcl", `
dictionary = "words/fi.txt"
board "one" { rows = ["kiss", "alat", "xxxx", "xxxx"] }
`)
	writeFile(t, dir, "more/extra.hcl", `
size = 4
board "two" { rows = ["abcd", "efgh", "ijkl", "mnop"] }
`)
	writeFile(t, dir, "notes.txt", "not a puzzle")

	p, err := LoadFiles(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "words", "fi.txt"), p.Dictionary)
	assert.Equal(t, 4, p.Size)
	require.Len(t, p.Boards, 2)
	assert.Equal(t, "one", p.Boards[0].Name)
	assert.Equal(t, "two", p.Boards[1].Name)
}

func TestLoadFiles_AbsoluteAndRemoteDictionaryKept(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "remote.hcl", `dictionary = "https://example.com/words.txt"`)

	p, err := LoadFiles(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/words.txt", p.Dictionary)
}

func TestLoadFiles_Conflicts(t *testing.T) {
	t.Run("dictionary", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.hcl", `dictionary = "/a.txt"`)
		writeFile(t, dir, "b.hcl", `dictionary = "/b.txt"`)

		_, err := LoadFiles(context.Background(), dir)
		require.ErrorContains(t, err, "conflicting dictionary")
	})

	t.Run("size", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.hcl", `size = 4`)
		writeFile(t, dir, "b.hcl", `size = 5`)

		_, err := LoadFiles(context.Background(), dir)
		require.ErrorContains(t, err, "conflicting size")
	})

	t.Run("board across files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.hcl", `board "x" { rows = ["ab", "cd"] }`)
		writeFile(t, dir, "b.hcl", `board "x" { rows = ["ab", "cd"] }`)

		_, err := LoadFiles(context.Background(), dir)
		require.ErrorContains(t, err, `duplicate board "x"`)
	})
}

func TestLoadFiles_NoFiles(t *testing.T) {
	_, err := LoadFiles(context.Background(), t.TempDir())
	require.ErrorContains(t, err, "no .hcl puzzle files found")
}

func TestFromRows(t *testing.T) {
	b := FromRows("stdin", []string{"ab", "cd"})
	assert.Equal(t, "stdin", b.Name)
	assert.Equal(t, []string{"ab", "cd"}, b.Grid.Rows())
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("GRIDWORDS_TEST_DICT", "/srv/words/fi.txt")
	t.Setenv("GRIDWORDS_TEST_ROWS", "kiss/alat/xxxx/xxxx")

	p, err := Parse([]byte(`
dictionary = env.GRIDWORDS_TEST_DICT

board "env" {
  rows = split("/", env.GRIDWORDS_TEST_ROWS)
}
`), "env.hcl")
	require.NoError(t, err)

	assert.Equal(t, "/srv/words/fi.txt", p.Dictionary)
	require.Len(t, p.Boards, 1)
	assert.Equal(t, []string{"kiss", "alat", "xxxx", "xxxx"}, p.Boards[0].Grid.Rows())
}
