package agentfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	content := `---
description: Use when reviewing code.
mode: subagent
model: anthropic/claude-sonnet-4-5
temperature: 0.3
permission:
  edit: allow
  bash: ask
---
You are an expert reviewer.
`

	f, err := Parse(content)
	require.NoError(t, err)

	desc, ok := f.Get("description")
	require.True(t, ok)
	assert.Equal(t, "Use when reviewing code.", desc)

	mode, ok := f.Get("mode")
	require.True(t, ok)
	assert.Equal(t, "subagent", mode)

	temperature, ok := f.Get("temperature")
	require.True(t, ok)
	assert.Equal(t, "0.3", temperature)

	block, ok := f.GetBlock("permission")
	require.True(t, ok)
	assert.Equal(t, []string{"  edit: allow", "  bash: ask"}, block.Lines)

	assert.Equal(t, "You are an expert reviewer.\n", f.Body)
}

func TestParse_FieldOrderPreserved(t *testing.T) {
	f, err := Parse("---\nb: two\na: one\n---\nbody text goes here\n")
	require.NoError(t, err)

	require.Len(t, f.Fields, 2)
	assert.Equal(t, "b", f.Fields[0].Key)
	assert.Equal(t, "a", f.Fields[1].Key)
}

func TestParse_QuotedValues(t *testing.T) {
	f, err := Parse("---\ndescription: \"uses: colons\"\n---\nbody\n")
	require.NoError(t, err)

	desc, ok := f.Get("description")
	require.True(t, ok)
	assert.Equal(t, "uses: colons", desc)
}

func TestParse_CRLF(t *testing.T) {
	f, err := Parse("---\r\ndescription: windows line endings\r\n---\r\nbody\r\n")
	require.NoError(t, err)

	desc, ok := f.Get("description")
	require.True(t, ok)
	assert.Equal(t, "windows line endings", desc)
}

func TestParse_NoFrontmatter(t *testing.T) {
	_, err := Parse("Just some prose without any frontmatter block.\n")
	assert.ErrorIs(t, err, ErrNoFrontmatter)
}

func TestParse_UnclosedFrontmatter(t *testing.T) {
	_, err := Parse("---\ndescription: never closed\nbody without closing delimiter\n")
	assert.ErrorIs(t, err, ErrUnclosedFrontmatter)
}

func TestParse_EmptyValueRecordsKey(t *testing.T) {
	f, err := Parse("---\ndescription:\n---\nbody\n")
	require.NoError(t, err)

	desc, ok := f.Get("description")
	assert.True(t, ok)
	assert.Empty(t, desc)
}

func TestParse_SkipsCommentsAndBlankLines(t *testing.T) {
	f, err := Parse("---\n# a comment\n\ndescription: something\n---\nbody\n")
	require.NoError(t, err)

	assert.Len(t, f.Fields, 1)
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "code-reviewer", NameFromPath("agents/code-reviewer.md"))
	assert.Equal(t, "code-reviewer", NameFromPath("code-reviewer.md"))
	assert.Equal(t, "code-reviewer", NameFromPath("code-reviewer"))
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"code-reviewer", true},
		{"a", true},
		{"agent2", true},
		{"multi-part-name-3", true},
		{"", false},
		{"Helper", false},
		{"code_reviewer", false},
		{"double--hyphen", false},
		{"-leading", false},
		{"trailing-", false},
		{"has space", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidName(tt.name))
		})
	}
}

func TestValidName_LengthBound(t *testing.T) {
	long := make([]byte, MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, ValidName(string(long)))
	assert.True(t, ValidName(string(long[:MaxNameLength])))
}

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "code-reviewer.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ndescription: Reviews code.\n---\nYou are a reviewer.\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, f.Path)
	assert.Equal(t, "code-reviewer", f.Name)
	assert.Equal(t, "You are a reviewer.\n", f.Body)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}
