package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/gridwords/internal/board"
	"github.com/specialistvlad/gridwords/internal/cli"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up test file")
	return path
}

func TestRun_SolvesRows(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dict := writeFile(t, t.TempDir(), "words.txt", "cat\ncats\nat\ncab\n")
	args := []string{"-dict", dict, "-workers", "2", "cats", "btaa", "xxxx", "xxxx"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "  cats\n  btaa\n  xxxx\n  xxxx\nFound the following words (3)\ncab\ncat\ncats\n", out.String())
}

func TestRun_ShapeError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dict := writeFile(t, t.TempDir(), "words.txt", "cat\n")
	args := []string{"-dict", dict, "cat", "bta", "xxx"}

	// --- Act ---
	err := run(&bytes.Buffer{}, args)

	// --- Assert ---
	// A shape error is a runtime failure, not a usage error.
	var shapeErr *board.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	var exitErr *cli.ExitError
	require.False(t, errors.As(err, &exitErr), "shape errors must not carry a usage exit code")
}

func TestRun_InvalidPuzzle(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An HCL file with a syntax error fails while loading the puzzle.
	path := writeFile(t, t.TempDir(), "main.hcl", `
		board "a" {
			rows = ["abcd"
	`)

	// --- Act ---
	err := run(&bytes.Buffer{}, []string{"-puzzle", path})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
