// Package presenter provides consistent CLI output for user-facing messages:
// success, error, warning, and informational lines with color support and
// quiet mode. Lint diagnostics render through the same surface so reports
// look the same everywhere.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/jingkaihe/agentlint/pkg/lint"
)

// ColorMode represents different color output modes
type ColorMode int

const (
	// ColorAuto detects whether to use colored output from the terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output.
	ColorAlways
	// ColorNever disables colored output.
	ColorNever
)

// TerminalPresenter writes user-facing output to a terminal.
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	quiet       bool
}

// New creates a TerminalPresenter with default settings.
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom settings.
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
		// Let the color package auto-detect.
	}

	return &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
	}
}

// detectColorMode determines the color mode from the environment.
func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv("AGENTLINT_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Error displays an error message to stderr.
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
	} else {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
	}
}

// Success displays a success message.
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(p.output, "✓ %s\n", message)
}

// Warning displays a warning message.
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(p.output, "⚠ %s\n", message)
}

// Info displays an informational message.
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays a section header with consistent formatting.
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}

	headerColor := color.New(color.Bold)
	headerColor.Fprintf(p.output, "%s\n", title)
	headerColor.Fprintf(p.output, "%s\n", strings.Repeat("-", len(title)))
}

// Separator displays a visual separator.
func (p *TerminalPresenter) Separator() {
	if p.quiet {
		return
	}
	color.New(color.Faint).Fprintf(p.output, "%s\n", strings.Repeat("-", 60))
}

// Diagnostic displays a single lint diagnostic with its severity glyph.
// Errors always print, even in quiet mode.
func (p *TerminalPresenter) Diagnostic(d lint.Diagnostic) {
	switch d.Severity {
	case lint.SeverityError:
		color.New(color.FgRed, color.Bold).Fprintf(p.output, "✗ %s\n", d.Message)
	case lint.SeverityWarning:
		p.Warning(d.Message)
	case lint.SeveritySuccess:
		p.Success(d.Message)
	default:
		if !p.quiet {
			fmt.Fprintf(p.output, "ℹ %s\n", d.Message)
		}
	}
}

// Report displays every diagnostic of a report in order, followed by the
// summary line.
func (p *TerminalPresenter) Report(r *lint.Report) {
	for _, d := range r.Diagnostics {
		p.Diagnostic(d)
	}
	p.Summary(r)
}

// Summary displays the closing error/warning count line of a report.
func (p *TerminalPresenter) Summary(r *lint.Report) {
	message := fmt.Sprintf("%d error(s), %d warning(s)", r.Errors, r.Warnings)
	if r.OK() {
		fmt.Fprintf(p.output, "%s\n", message)
		return
	}
	color.New(color.Bold).Fprintf(p.output, "%s\n", message)
}

// SetQuiet enables or disables quiet mode.
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// IsQuiet returns whether quiet mode is enabled.
func (p *TerminalPresenter) IsQuiet() bool {
	return p.quiet
}

// Global presenter instance for convenience
var defaultPresenter = New()

// Error displays an error message using the default presenter instance.
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}

// Success displays a success message using the default presenter instance.
func Success(message string) {
	defaultPresenter.Success(message)
}

// Warning displays a warning message using the default presenter instance.
func Warning(message string) {
	defaultPresenter.Warning(message)
}

// Info displays an informational message using the default presenter instance.
func Info(message string) {
	defaultPresenter.Info(message)
}

// Section displays a section header using the default presenter instance.
func Section(title string) {
	defaultPresenter.Section(title)
}

// Separator displays a visual separator using the default presenter instance.
func Separator() {
	defaultPresenter.Separator()
}

// Diagnostic displays a lint diagnostic using the default presenter instance.
func Diagnostic(d lint.Diagnostic) {
	defaultPresenter.Diagnostic(d)
}

// Report displays a lint report using the default presenter instance.
func Report(r *lint.Report) {
	defaultPresenter.Report(r)
}

// Summary displays a report summary using the default presenter instance.
func Summary(r *lint.Report) {
	defaultPresenter.Summary(r)
}

// SetQuiet enables or disables quiet mode for the default presenter instance.
func SetQuiet(quiet bool) {
	defaultPresenter.SetQuiet(quiet)
}

// IsQuiet returns whether quiet mode is enabled for the default presenter instance.
func IsQuiet() bool {
	return defaultPresenter.IsQuiet()
}
