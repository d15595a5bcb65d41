package logstats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	input := strings.Join([]string{
		"connection refused",
		"timeout waiting for response",
		"connection refused",
		"",
		"   ",
		"connection refused",
		"timeout waiting for response",
		"disk full",
	}, "\n")

	entries, err := Summarize(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Count: 3, Line: "connection refused"}, entries[0])
	assert.Equal(t, Entry{Count: 2, Line: "timeout waiting for response"}, entries[1])
	assert.Equal(t, Entry{Count: 1, Line: "disk full"}, entries[2])
}

func TestSummarize_TiesKeepFirstSeenOrder(t *testing.T) {
	input := "beta\nalpha\nbeta\nalpha\n"

	entries, err := Summarize(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "beta", entries[0].Line)
	assert.Equal(t, "alpha", entries[1].Line)
}

func TestSummarize_Empty(t *testing.T) {
	entries, err := Summarize(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{
		{Count: 2, Line: "connection refused"},
		{Count: 1, Line: "disk full"},
	})
	require.NoError(t, err)

	assert.Equal(t, "2\tconnection refused\n1\tdisk full\n", buf.String())
}
