package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.hcl"))
	touch(t, filepath.Join(dir, "nested", "b.yaml"))
	touch(t, filepath.Join(dir, "nested", "c.yml"))
	touch(t, filepath.Join(dir, "notes.txt"))

	got, err := FindFilesByExtension(dir, ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "nested", "b.yaml"),
		filepath.Join(dir, "nested", "c.yml"),
	}, got)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(dir) })
	assert.Panics(t, func() { _, _ = FindFilesByExtension(dir, "") })
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "session.hcl")
	touch(t, single)
	touch(t, filepath.Join(dir, "more", "outputs.hcl"))
	touch(t, filepath.Join(dir, "more", "readme.md"))

	got, err := CollectFiles([]string{single, dir, filepath.Join(dir, "missing")}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{single, filepath.Join(dir, "more", "outputs.hcl")}, got)

	got, err = CollectFiles([]string{filepath.Join(dir, "more", "readme.md")}, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, got)
}
