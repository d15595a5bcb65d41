// Package lint checks agent definition documents for structural problems and
// style issues. Structural violations (missing frontmatter, missing
// description, undersized body, invalid name) are hard failures; everything
// else is advisory. The linter keeps checking what it still can after a
// failure so a single run surfaces every finding.
package lint

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/jingkaihe/agentlint/pkg/agentfile"
	"github.com/jingkaihe/agentlint/pkg/logger"
	"github.com/pkg/errors"
)

const (
	minDescriptionLength = 10
	maxDescriptionLength = 5000
	minBodyLength        = 20
	maxBodyLength        = 10000
)

// reservedNames are identifiers too generic to name an agent after.
var reservedNames = map[string]bool{
	"helper":    true,
	"assistant": true,
	"agent":     true,
	"tool":      true,
}

var validModes = []string{"primary", "subagent"}

// modelPattern is a coarse shape check for provider/model-version values,
// not a registry lookup.
var modelPattern = regexp.MustCompile(`^[a-z0-9.-]+/[a-z0-9.-]*[0-9]$`)

// tagPattern finds angle-bracket markup left over from prompt templates.
var tagPattern = regexp.MustCompile(`<[a-zA-Z][a-zA-Z0-9_-]*>`)

// deprecatedFields maps legacy keys to their replacements, in report order.
var deprecatedFields = []struct {
	key         string
	replacement string
}{
	{"tools", "permission"},
}

// echoedFields are recognized optional scalars surfaced in the report
// without further validation.
var echoedFields = []string{"temperature", "top_p", "disable", "color"}

var voiceMarkers = []string{"you are", "you're", "your role", "your task"}

var structureKeywords = []string{"responsibilities", "process", "steps"}

// Linter runs the full check sequence over agent definition files.
type Linter struct{}

// New creates a Linter.
func New() *Linter {
	return &Linter{}
}

// LintPath validates the agent definition at path and returns the report.
// The report is always complete: a hard failure stops the checks that depend
// on it but independent checks still run.
func (l *Linter) LintPath(ctx context.Context, path string) *Report {
	log := logger.G(ctx).WithField("path", path)
	log.Debug("Linting agent file")

	report := &Report{}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		report.Errorf("file not found: %s", path)
		return report
	}

	l.checkName(agentfile.NameFromPath(path), report)

	content, err := os.ReadFile(path)
	if err != nil {
		report.Errorf("failed to read %s: %v", path, err)
		return report
	}

	f, err := agentfile.Parse(string(content))
	switch {
	case errors.Is(err, agentfile.ErrNoFrontmatter):
		report.Errorf("file must start with a '---' frontmatter delimiter")
		report.Infof("frontmatter and body checks skipped")
		return report
	case errors.Is(err, agentfile.ErrUnclosedFrontmatter):
		report.Errorf("frontmatter block is never closed with a second '---' line")
		report.Infof("frontmatter and body checks skipped")
		return report
	case err != nil:
		report.Errorf("failed to parse %s: %v", path, err)
		return report
	}
	report.Successf("frontmatter delimiters found")

	log.WithField("fields", len(f.Fields)).Debug("Parsed frontmatter")

	l.checkFields(f, report)
	l.checkBody(f.Body, report)

	return report
}

// checkName validates the derived agent name against the naming rules and
// flags reserved generic names.
func (l *Linter) checkName(name string, report *Report) {
	switch {
	case agentfile.ValidName(name):
		report.Successf("agent name '%s' is valid", name)
		if reservedNames[name] {
			report.Warnf("name '%s' is too generic; pick a name that says what the agent does", name)
		}
	case name == "":
		report.Errorf("agent name is empty")
	case len(name) > agentfile.MaxNameLength:
		report.Errorf("agent name '%s' exceeds %d characters", name, agentfile.MaxNameLength)
	case strings.ToLower(name) != name:
		report.Errorf("agent name '%s' contains uppercase characters; names must be lowercase", name)
	case strings.Contains(name, "_"):
		report.Errorf("agent name '%s' contains underscores; use hyphens to separate words", name)
	default:
		report.Errorf("agent name '%s' must be lowercase alphanumeric groups separated by single hyphens", name)
	}
}

// checkFields runs the frontmatter field checks. Each check is independent:
// a missing description does not stop the mode and model checks.
func (l *Linter) checkFields(f *agentfile.File, report *Report) {
	desc, _ := f.Get("description")
	desc = strings.TrimSpace(desc)
	if desc == "" {
		report.Errorf("required field 'description' is missing or empty")
	} else {
		report.Successf("description present (%d chars)", len(desc))
		if len(desc) < minDescriptionLength {
			report.Warnf("description is very short (%d chars); explain when to use this agent", len(desc))
		}
		if len(desc) > maxDescriptionLength {
			report.Warnf("description is very long (%d chars); keep it under %d", len(desc), maxDescriptionLength)
		}
		if tag := tagPattern.FindString(desc); tag != "" {
			report.Warnf("description contains tag-like markup '%s'; remove leftover template text", tag)
		}
	}

	model, hasModel := f.Get("model")
	if hasModel {
		switch {
		case model == "inherit":
			report.Warnf("model 'inherit' is discouraged for agent definitions; name an explicit model")
		case !modelPattern.MatchString(model):
			report.Warnf("model '%s' does not look like 'provider/model-version'", model)
		default:
			report.Successf("model: %s", model)
		}
	}

	mode, hasMode := f.Get("mode")
	if hasMode {
		if isValidMode(mode) {
			report.Successf("mode: %s", mode)
		} else {
			report.Warnf("unknown mode '%s'; expected one of: %s", mode, strings.Join(validModes, ", "))
		}
	}

	if mode == "subagent" && !hasModel {
		report.Warnf("subagents should pin an explicit model; add a 'model' field")
	}
	if mode == "primary" && hasModel {
		report.Warnf("primary agents usually inherit the session model; 'model' may be unnecessary")
	}

	for _, dep := range deprecatedFields {
		if _, ok := f.Get(dep.key); ok {
			report.Warnf("field '%s' is deprecated; use '%s' instead", dep.key, dep.replacement)
		}
	}

	if block, ok := f.GetBlock("permission"); ok {
		report.Infof("permission settings:")
		for _, line := range block.Lines {
			report.Infof("  %s", strings.TrimSpace(line))
		}
	}

	for _, key := range echoedFields {
		if value, ok := f.Get(key); ok && value != "" {
			report.Infof("%s: %s", key, value)
		}
	}
}

// checkBody applies the prompt body checks. A too-short body is a hard
// failure and skips the remaining heuristics, which would only add noise.
func (l *Linter) checkBody(body string, report *Report) {
	trimmed := strings.TrimSpace(body)
	if len(trimmed) < minBodyLength {
		report.Errorf("prompt body is missing or too short (%d chars, minimum %d)", len(trimmed), minBodyLength)
		return
	}

	report.Successf("prompt body present (%d chars)", len(trimmed))

	if len(trimmed) > maxBodyLength {
		report.Warnf("prompt body is very long (%d chars); consider moving detail into skills", len(trimmed))
	}

	lower := strings.ToLower(trimmed)
	if !containsAny(lower, voiceMarkers) {
		report.Infof("body does not address the agent directly; consider phrasing like \"You are ...\"")
	}
	if !containsAny(lower, structureKeywords) {
		report.Infof("consider structuring the prompt with responsibilities, process, or steps")
	}
	if !strings.Contains(lower, "output") {
		report.Infof("consider describing the expected output format")
	}
}

func isValidMode(mode string) bool {
	for _, m := range validModes {
		if mode == m {
			return true
		}
	}
	return false
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
