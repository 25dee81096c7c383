package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	s := New(map[string]bool{".go": true})
	descriptors := s.Scan([]string{dir})
	assert.Empty(t, descriptors)
}

func TestScanFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("not code"), 0o644))

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.py"), []byte("pass"), 0o644))

	s := New(map[string]bool{".go": true, ".py": true})
	descriptors := s.Scan([]string{dir})

	require.Len(t, descriptors, 2)
	exts := map[string]bool{}
	for _, d := range descriptors {
		exts[d.Extension] = true
		assert.True(t, filepath.IsAbs(d.AbsolutePath))
		absDir, _ := filepath.Abs(dir)
		assert.Equal(t, absDir, d.RepoRoot)
	}
	assert.True(t, exts[".go"])
	assert.True(t, exts[".py"])
}

func TestScanSkipsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notadir.go")
	require.NoError(t, os.WriteFile(file, []byte("package a"), 0o644))

	s := New(map[string]bool{".go": true})
	descriptors := s.Scan([]string{file})
	assert.Empty(t, descriptors)
}
