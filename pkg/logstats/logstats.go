// Package logstats summarizes error logs by counting distinct lines.
package logstats

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Entry is a distinct log line with its occurrence count.
type Entry struct {
	Count int
	Line  string
}

// Summarize reads lines from r, drops blank lines, and returns the distinct
// lines ordered by descending count. Ties keep first-seen order so output is
// deterministic.
func Summarize(r io.Reader) ([]Entry, error) {
	counts := make(map[string]int)
	var order []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if counts[line] == 0 {
			order = append(order, line)
		}
		counts[line]++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read log lines")
	}

	entries := make([]Entry, 0, len(order))
	for _, line := range order {
		entries = append(entries, Entry{Count: counts[line], Line: line})
	}

	// Stable sort preserves first-seen order among equal counts.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries, nil
}

// Write renders entries as count<TAB>line rows.
func Write(w io.Writer, entries []Entry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", entry.Count, entry.Line); err != nil {
			return errors.Wrap(err, "failed to write summary")
		}
	}
	return nil
}
