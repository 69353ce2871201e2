package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHelpers(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "2024", "5")

	assert.False(t, IsExists(dir))
	require.True(t, CreateDir(dir))
	assert.True(t, IsExists(dir))
	assert.True(t, IsDir(dir))

	src := filepath.Join(dir, "a.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("report"), 0o644))
	assert.False(t, IsDir(src))

	dst := filepath.Join(root, "b.xlsx")
	require.NoError(t, Copy(src, dst))
	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "report", string(content))

	assert.Error(t, Copy(filepath.Join(root, "missing"), dst))
	assert.False(t, CreateDir(filepath.Join(src, "child")))
}
