// Package agentfile parses agent definition documents: markdown files with a
// YAML frontmatter block delimited by `---` lines, followed by a system
// prompt body. Parsing is structural and line-oriented so that callers can
// report precisely which part of the document is malformed; scalar values are
// decoded through YAML so quoting behaves as authors expect.
package agentfile

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

var (
	// ErrNoFrontmatter indicates the document does not start with a `---` line.
	ErrNoFrontmatter = errors.New("document must start with a frontmatter delimiter")
	// ErrUnclosedFrontmatter indicates the opening `---` is never closed.
	ErrUnclosedFrontmatter = errors.New("frontmatter block is never closed")
)

// namePattern matches lowercase alphanumeric groups separated by single
// hyphens, with no leading or trailing hyphen.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// MaxNameLength is the upper bound on agent name length.
const MaxNameLength = 64

// Field is a single scalar frontmatter entry, preserving document order.
type Field struct {
	Key   string
	Value string
}

// Block is a nested frontmatter entry such as `permission:`, whose indented
// sub-lines are preserved verbatim rather than deeply parsed.
type Block struct {
	Key   string
	Lines []string
}

// File is a parsed agent definition document.
type File struct {
	Path   string
	Name   string
	Fields []Field
	Blocks []Block
	Body   string
}

// Get returns the scalar value for key and whether it was present.
func (f *File) Get(key string) (string, bool) {
	for _, field := range f.Fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

// GetBlock returns the nested block for key and whether it was present.
func (f *File) GetBlock(key string) (*Block, bool) {
	for i := range f.Blocks {
		if f.Blocks[i].Key == key {
			return &f.Blocks[i], true
		}
	}
	return nil, false
}

// NameFromPath derives the agent name from a file path by stripping the
// directory and the .md extension.
func NameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}

// ValidName reports whether name satisfies the naming rules: lowercase
// letters and digits in hyphen-separated groups, 1-64 characters.
func ValidName(name string) bool {
	if name == "" || len(name) > MaxNameLength {
		return false
	}
	return namePattern.MatchString(name)
}

// Load reads and parses the agent definition at path.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read agent file '%s'", path)
	}

	f, err := Parse(string(content))
	if err != nil {
		return nil, err
	}

	f.Path = path
	f.Name = NameFromPath(path)
	return f, nil
}

// Parse parses document content into a File. Path and Name are left empty;
// Load fills them in. The returned error is ErrNoFrontmatter or
// ErrUnclosedFrontmatter for structural violations.
func Parse(content string) (*File, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != delimiter {
		return nil, ErrNoFrontmatter
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == delimiter {
			closing = i
			break
		}
	}
	if closing == -1 {
		return nil, ErrUnclosedFrontmatter
	}

	f := &File{}
	block := (*Block)(nil)

	for _, line := range lines[1:closing] {
		line = strings.TrimRight(line, "\r")

		// Indented lines continue the current nested block.
		if block != nil && (strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "\t")) {
			block.Lines = append(block.Lines, line)
			continue
		}
		block = nil

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := splitScalar(line)
		if !ok {
			continue
		}

		if value == "" {
			// A bare `key:` opens a nested block; it only stays a block if
			// indented lines follow, but an empty scalar is recorded either
			// way so required-field checks see the key.
			f.Blocks = append(f.Blocks, Block{Key: key})
			block = &f.Blocks[len(f.Blocks)-1]
			f.Fields = append(f.Fields, Field{Key: key, Value: ""})
			continue
		}

		f.Fields = append(f.Fields, Field{Key: key, Value: decodeScalar(value)})
	}

	f.Body = strings.Join(lines[closing+1:], "\n")
	return f, nil
}

// splitScalar splits a top-level `key: value` line. Keys must start at
// column zero; the first colon separates key from value.
func splitScalar(line string) (key, value string, ok bool) {
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return "", "", false
	}

	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// decodeScalar runs a raw scalar through YAML decoding so quoted values and
// escape sequences behave as written. Values YAML cannot decode as a string
// are kept raw.
func decodeScalar(raw string) string {
	var s string
	if err := yaml.Unmarshal([]byte(raw), &s); err != nil {
		return raw
	}
	if s == "" && raw != "" && raw != `""` && raw != "''" {
		// Non-string scalars (numbers, bools, lists) decode to empty; keep
		// the raw text so the report shows what the author wrote.
		return raw
	}
	return s
}
