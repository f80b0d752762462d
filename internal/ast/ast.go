// Package ast defines the tagged-variant data model for parsed TBL
// programs: tables, rules, segments, expressions, and modifiers.
package ast

import "github.com/solomonhawk/tbl/internal/source"

// Program is an ordered sequence of tables. Declaration order is
// preserved; it does not affect semantics but is used for diagnostics
// and for table_ids() ordering.
type Program struct {
	Tables []Table
}

// Metadata holds a table's declared identifier and export flag.
type Metadata struct {
	ID       string
	Exported bool
}

// Table is a named, ordered collection of weighted rules.
type Table struct {
	Metadata Metadata
	Rules    []Rule
	Span     source.Span
}

// Rule is a weight and a body consisting of literal text interleaved
// with expressions.
type Rule struct {
	Weight  float64
	Content []Segment
	Span    source.Span
}

// ContentText flattens a rule's literal segments back into plain text,
// ignoring expressions. Used by tooling that wants a rough preview of a
// rule without generating from it.
func (r Rule) ContentText() string {
	var out []byte
	for _, seg := range r.Content {
		if seg.Literal != nil {
			out = append(out, *seg.Literal...)
		}
	}
	return string(out)
}

// Segment is a tagged variant: exactly one of Literal or Expression is
// set.
type Segment struct {
	Literal    *string
	Expression *Expression
}

// LiteralSegment builds a Segment wrapping literal text.
func LiteralSegment(text string) Segment {
	return Segment{Literal: &text}
}

// ExpressionSegment builds a Segment wrapping an expression.
func ExpressionSegment(expr Expression) Segment {
	return Segment{Expression: &expr}
}

// Expression is a tagged variant: exactly one of DiceRoll or
// TableReference is set.
type Expression struct {
	DiceRoll       *DiceRoll
	TableReference *TableReference
	Span           source.Span
}

// DiceRoll is `{[count]d sides}`: the sum of count independent draws
// from uniform{1..=sides}.
type DiceRoll struct {
	Count uint32
	Sides uint32
}

// TableReference is `{#target_id|modifier|...}`: a recursive sample
// from another table, with modifiers applied left to right.
type TableReference struct {
	TargetID  string
	Modifiers []Modifier
}

// Modifier is a named transformation applied to the string produced by
// a table reference.
type Modifier int

const (
	Indefinite Modifier = iota
	Definite
	Capitalize
	Uppercase
	Lowercase
)

var modifierNames = map[Modifier]string{
	Indefinite: "indefinite",
	Definite:   "definite",
	Capitalize: "capitalize",
	Uppercase:  "uppercase",
	Lowercase:  "lowercase",
}

func (m Modifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return "unknown"
}

// LookupModifier returns the Modifier named by s and true, or
// (0, false) if s is not a recognized modifier name.
func LookupModifier(s string) (Modifier, bool) {
	for m, name := range modifierNames {
		if name == s {
			return m, true
		}
	}
	return 0, false
}

// AllModifierNames returns every recognized modifier name, in the
// fixed order used by "unknown modifier" diagnostic suggestions.
func AllModifierNames() []string {
	return []string{"indefinite", "definite", "capitalize", "uppercase", "lowercase"}
}
