package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
}

func TestFindFiles_Directory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.txt", "a.TXT", "nested/c.txt", "notes.md", "nested/d.hcl")

	files, err := FindFiles(root, ".txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.TXT"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "nested", "c.txt"),
	}, files)

	files, err = FindFiles(root, ".hcl", ".md")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindFiles_SingleFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "words.txt")
	path := filepath.Join(root, "words.txt")

	files, err := FindFiles(path, ".txt")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)

	files, err = FindFiles(path, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFiles_MissingPath(t *testing.T) {
	_, err := FindFiles(filepath.Join(t.TempDir(), "missing"), ".txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFindFiles_PanicsWithoutExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFiles(t.TempDir()) })
}
