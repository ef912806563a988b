package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	for _, name := range []string{"a.hcl", "b.yaml", "sub/c.hcl", "sub/d.yml", "sub/notes.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	// --- Act ---
	hclFiles, hclErr := FindFiles([]string{dir, filepath.Join(dir, "a.hcl"), filepath.Join(dir, "missing")}, ".hcl")
	yamlFiles, yamlErr := FindFiles([]string{filepath.Join(dir, "sub", "d.yml"), dir}, ".yaml", ".yml")

	// --- Assert ---
	require.NoError(t, hclErr)
	require.NoError(t, yamlErr)
	assert.Equal(t, []string{filepath.Join(dir, "a.hcl"), filepath.Join(dir, "sub", "c.hcl")}, hclFiles)
	assert.Equal(t, []string{filepath.Join(dir, "sub", "d.yml"), filepath.Join(dir, "b.yaml")}, yamlFiles)
}

func TestFindFiles_PanicsWithoutExtension(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { _, _ = FindFiles([]string{"."}) })
}
