package fsutil

import (
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
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.hcl", "a.hcl", "notes.txt", "nested/c.hcl", "nested/d.yaml")

	t.Run("directory is walked in order", func(t *testing.T) {
		files, err := FindFiles([]string{root}, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.hcl"),
			filepath.Join(root, "b.hcl"),
			filepath.Join(root, "nested", "c.hcl"),
		}, files)
	})

	t.Run("several extensions", func(t *testing.T) {
		files, err := FindFiles([]string{filepath.Join(root, "nested")}, ".yaml", ".hcl")
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("duplicates are dropped", func(t *testing.T) {
		files, err := FindFiles([]string{filepath.Join(root, "a.hcl"), root}, ".hcl")
		require.NoError(t, err)
		assert.Len(t, files, 3)
		assert.Equal(t, filepath.Join(root, "a.hcl"), files[0])
	})

	t.Run("wrong extension", func(t *testing.T) {
		_, err := FindFiles([]string{filepath.Join(root, "notes.txt")}, ".hcl")
		assert.Error(t, err)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := FindFiles([]string{filepath.Join(root, "missing")}, ".hcl")
		assert.Error(t, err)
	})
}
