package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchConfig_Validate(t *testing.T) {
	config := NewBatchConfig()
	assert.NoError(t, config.Validate())

	config.Pattern = "[invalid"
	assert.Error(t, config.Validate())

	config = NewBatchConfig()
	config.DebounceTime = -1
	assert.Error(t, config.Validate())
}

func TestCollectAgentFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "agents"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	write := func(rel string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte("x"), 0o644))
	}
	write("agents/reviewer.md")
	write("agents/writer.md")
	write("agents/notes.txt")
	write("top-level.md")
	write(".git/config.md")

	files, err := collectAgentFiles(root, "**/*.md", []string{".git", "node_modules"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "agents", "reviewer.md"),
		filepath.Join(root, "agents", "writer.md"),
		filepath.Join(root, "top-level.md"),
	}, files)
}

func TestCollectAgentFiles_NoMatches(t *testing.T) {
	files, err := collectAgentFiles(t.TempDir(), "**/*.md", nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestInIgnoredDir(t *testing.T) {
	ignore := []string{".git", "node_modules"}

	assert.True(t, inIgnoredDir(filepath.Join("repo", ".git", "config.md"), ignore))
	assert.True(t, inIgnoredDir(filepath.Join("a", "node_modules", "b", "c.md"), ignore))
	assert.False(t, inIgnoredDir(filepath.Join("repo", "agents", "reviewer.md"), ignore))
}
