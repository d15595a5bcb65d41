package lint

import (
	"encoding/json"
	"fmt"
)

// Severity classifies a diagnostic line.
type Severity string

const (
	// SeverityError marks a hard failure that makes the run fail.
	SeverityError Severity = "error"
	// SeverityWarning marks an advisory finding that never fails the run.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks an informational note or suggestion.
	SeverityInfo Severity = "info"
	// SeveritySuccess marks a check that passed.
	SeveritySuccess Severity = "success"
)

// Diagnostic is a single finding emitted in check order.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report accumulates diagnostics and counters for one lint run. It replaces
// imperative global counters: callers read Errors and Warnings after the run
// and map them to an exit code.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Errors      int          `json:"errors"`
	Warnings    int          `json:"warnings"`
}

// OK reports whether the run had no hard failures. Warnings never fail a run.
func (r *Report) OK() bool {
	return r.Errors == 0
}

// Errorf records a hard failure.
func (r *Report) Errorf(format string, args ...any) {
	r.Errors++
	r.add(SeverityError, format, args...)
}

// Warnf records an advisory finding.
func (r *Report) Warnf(format string, args ...any) {
	r.Warnings++
	r.add(SeverityWarning, format, args...)
}

// Infof records an informational note.
func (r *Report) Infof(format string, args ...any) {
	r.add(SeverityInfo, format, args...)
}

// Successf records a passed check.
func (r *Report) Successf(format string, args ...any) {
	r.add(SeveritySuccess, format, args...)
}

func (r *Report) add(severity Severity, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	})
}

// JSON returns the indented JSON representation of the report.
func (r *Report) JSON() (string, error) {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
