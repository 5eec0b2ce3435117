package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/project")
	assert.Equal(t, filepath.Join("/project", ".fuzzy"), p.Root)
	assert.Equal(t, filepath.Join("/project", ".fuzzy", "fuzzy.db"), p.DB)
	assert.Equal(t, filepath.Join("/project", ".fuzzy", "config.yaml"), p.Config)
	assert.Equal(t, filepath.Join("/project", ".fuzzy", "log"), p.LogDir)
	assert.Equal(t, filepath.Join("/project", ".fuzzy", "log", "fuzzy.log"), p.LogFile)
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir)

	// First call creates directories.
	require.NoError(t, p.EnsureDirs())
	for _, d := range []string{p.Root, p.LogDir} {
		info, err := os.Stat(d)
		require.NoError(t, err, "dir %s should exist", d)
		assert.True(t, info.IsDir())
	}

	// Second call is a no-op.
	require.NoError(t, p.EnsureDirs())
}
