// Package diag provides the structured diagnostic records produced by
// the lexer, parser, and collection validator.
package diag

import (
	"fmt"

	"github.com/solomonhawk/tbl/internal/source"
)

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Diagnostic is an immutable structured report of a lexical, syntactic,
// validation, or generation problem.
type Diagnostic struct {
	Severity   Severity
	Message    string
	Span       source.Span
	Suggestion string // empty if none
	Category   string // e.g. "lex", "parse", "validate", "generate"
}

// String renders a compact one-line representation, mainly for test
// failure output and non-colored CLI fallback.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s at %d:%d: %s", d.Severity, d.Span.Start.Line, d.Span.Start.Column, d.Message)
	if d.Suggestion != "" {
		s += fmt.Sprintf(" (suggestion: %s)", d.Suggestion)
	}
	return s
}

// WithSuggestion returns a copy of d carrying the given suggestion text.
func (d Diagnostic) WithSuggestion(suggestion string) Diagnostic {
	d.Suggestion = suggestion
	return d
}

// Errorf builds an error-severity diagnostic.
func Errorf(span source.Span, category string, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: Error, Span: span, Category: category, Message: fmt.Sprintf(format, args...)}
}

// Warningf builds a warning-severity diagnostic.
func Warningf(span source.Span, category string, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: Warning, Span: span, Category: category, Message: fmt.Sprintf(format, args...)}
}

// Infof builds an info-severity diagnostic.
func Infof(span source.Span, category string, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: Info, Span: span, Category: category, Message: fmt.Sprintf(format, args...)}
}

// HasErrors reports whether any diagnostic in diags is error-severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// JSON is the wire shape for a diagnostic, matching the embedding
// surface's schema.
type JSON struct {
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	Source    string `json:"source,omitempty"`
}

// ToJSON converts a Diagnostic to its wire representation.
func (d Diagnostic) ToJSON() JSON {
	return JSON{
		Message:   d.Message,
		Severity:  d.Severity.String(),
		Line:      d.Span.Start.Line,
		Column:    d.Span.Start.Column,
		EndLine:   d.Span.End.Line,
		EndColumn: d.Span.End.Column,
		Source:    d.Category,
	}
}

// ToJSONSlice converts a slice of Diagnostics to their wire representation.
func ToJSONSlice(diags []Diagnostic) []JSON {
	out := make([]JSON, len(diags))
	for i, d := range diags {
		out[i] = d.ToJSON()
	}
	return out
}
