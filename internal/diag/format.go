package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/solomonhawk/tbl/internal/source"
)

// Formatter renders diagnostics as human-readable, editor-style text:
//
//	<icon> <message>
//	   ┌─ line L:C
//	   │
//	  L │ <source line>
//	   │ <padding>^
//	   │
//	   = suggestion: <suggestion>
type Formatter struct {
	colors      bool
	suggestions bool
	contextLine bool
	sourceMap   *source.Map
}

// NewFormatter builds a Formatter. Suggestions are shown and the
// context line is rendered by default; colors are off by default (the
// caller enables them for an interactive terminal).
func NewFormatter(sourceMap *source.Map) *Formatter {
	return &Formatter{suggestions: true, contextLine: true, sourceMap: sourceMap}
}

// WithColors toggles ANSI color escapes in the rendered output.
func (f *Formatter) WithColors(enabled bool) *Formatter {
	f.colors = enabled
	return f
}

// WithSuggestions toggles the trailing suggestion line.
func (f *Formatter) WithSuggestions(enabled bool) *Formatter {
	f.suggestions = enabled
	return f
}

// WithContextLine toggles the source-line + caret rendering.
func (f *Formatter) WithContextLine(enabled bool) *Formatter {
	f.contextLine = enabled
	return f
}

func (f *Formatter) icon(sev Severity) string {
	switch sev {
	case Error:
		return "✖"
	case Warning:
		return "⚠"
	case Info:
		return "ℹ"
	default:
		return "?"
	}
}

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.colors {
		return s
	}
	return c.Sprint(s)
}

// Format renders a single diagnostic.
func (f *Formatter) Format(d Diagnostic) string {
	var b strings.Builder

	headColor := color.New(color.FgRed, color.Bold)
	if d.Severity == Warning {
		headColor = color.New(color.FgYellow, color.Bold)
	} else if d.Severity == Info {
		headColor = color.New(color.FgCyan, color.Bold)
	}

	fmt.Fprintf(&b, "%s %s\n", f.icon(d.Severity), f.paint(headColor, d.Message))
	fmt.Fprintf(&b, "   ┌─ line %d:%d\n", d.Span.Start.Line, d.Span.Start.Column)

	if f.contextLine && f.sourceMap != nil {
		b.WriteString("   │\n")
		line := f.sourceMap.Line(d.Span.Start.Line)
		fmt.Fprintf(&b, "%3d │ %s\n", d.Span.Start.Line, line)

		padding := strings.Repeat(" ", max0(d.Span.Start.Column-1))
		caret := f.paint(headColor, "^")
		fmt.Fprintf(&b, "   │ %s%s\n", padding, caret)
	}

	if f.suggestions && d.Suggestion != "" {
		b.WriteString("   │\n")
		label := "suggestion"
		fmt.Fprintf(&b, "   = %s: %s\n", label, d.Suggestion)
	}

	return b.String()
}

// FormatAll renders multiple diagnostics, separated by blank lines.
func (f *Formatter) FormatAll(diags []Diagnostic) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = f.Format(d)
	}
	return strings.Join(parts, "\n")
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
