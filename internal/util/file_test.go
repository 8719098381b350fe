package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "authors.html")

	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("second")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCleanupTempFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "authors.html")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "authors.html.123"+TempSuffix), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(out, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes"+TempSuffix), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.html.9"+TempSuffix), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "authors.html.keep"+TempSuffix), 0755))

	CleanupTempFiles(out)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"authors.html",
		"notes" + TempSuffix,
		"other.html.9" + TempSuffix,
		"authors.html.keep" + TempSuffix,
	}, names)
}

func TestCleanupTempFiles_LeavesUnrelatedTempFiles(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "my-notes"+TempSuffix)
	require.NoError(t, os.WriteFile(notes, []byte("keep me"), 0644))

	CleanupTempFiles(filepath.Join(dir, "authors.html"))

	_, err := os.Stat(notes)
	assert.NoError(t, err)
}
