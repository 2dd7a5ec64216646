package manifest

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityWarning marks a recoverable issue: the normalizer applies
	// the documented fallback and continues.
	SeverityWarning Severity = iota
	// SeverityFatal marks an issue that aborts the whole pass.
	SeverityFatal
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is one issue found during normalization.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// Reporter receives warnings as the normalizer encounters them, in
// depth-first traversal order. Fatal issues are not reported through
// this interface; they are returned as errors and end the pass.
type Reporter interface {
	Warn(msg string)
}

// LogReporter streams warnings to a zerolog logger.
type LogReporter struct {
	Logger zerolog.Logger
}

// Warn implements Reporter.
func (r LogReporter) Warn(msg string) {
	r.Logger.Warn().Msg(msg)
}

// Recorder collects diagnostics in order. Used by the check command
// and by tests that assert on warning content.
type Recorder struct {
	diags []Diagnostic
}

// Warn implements Reporter.
func (r *Recorder) Warn(msg string) {
	r.diags = append(r.diags, Diagnostic{Severity: SeverityWarning, Message: msg})
}

// Diagnostics returns the collected diagnostics in emission order.
func (r *Recorder) Diagnostics() []Diagnostic {
	return r.diags
}

// multiReporter fans warnings out to several reporters.
type multiReporter []Reporter

func (m multiReporter) Warn(msg string) {
	for _, r := range m {
		r.Warn(msg)
	}
}

// MultiReporter combines reporters; each warning reaches all of them
// in argument order.
func MultiReporter(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

// warnf formats and emits a warning through the normalizer's reporter.
func (n *Normalizer) warnf(format string, args ...interface{}) {
	n.reporter.Warn(fmt.Sprintf(format, args...))
}
