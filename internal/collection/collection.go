// Package collection builds a validated, queryable set of tables from a
// parsed program: an id index, cross-table reference validation, and
// cached weight prefix sums ready for generation.
package collection

import (
	"github.com/solomonhawk/tbl/internal/ast"
	"github.com/solomonhawk/tbl/internal/diag"
	"github.com/solomonhawk/tbl/internal/parser"
)

// distribution is the cached weighted-selection data for one table.
type distribution struct {
	total      float64
	prefixSums []float64
}

// Collection is an immutable, validated Program plus derived indexes.
// It is safe for concurrent reads: generate calls never mutate it.
type Collection struct {
	program     ast.Program
	ids         []string // declaration order
	indexByID   map[string]int
	distByID    map[string]distribution
	exportedIDs []string
}

// New parses source, validates it, and builds a Collection. On any
// error-severity diagnostic (lex, parse, or validation) it returns a
// nil Collection and the full diagnostic list.
func New(src string) (*Collection, []diag.Diagnostic) {
	program, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		return nil, diags
	}

	c := &Collection{
		program:   program,
		indexByID: make(map[string]int, len(program.Tables)),
		distByID:  make(map[string]distribution, len(program.Tables)),
	}

	for i, tbl := range program.Tables {
		if existing, dup := c.indexByID[tbl.Metadata.ID]; dup {
			prev := program.Tables[existing]
			diags = append(diags, diag.Errorf(tbl.Span, "validate",
				"Table '%s' is declared more than once (first declared at line %d)",
				tbl.Metadata.ID, prev.Span.Start.Line))
			continue
		}
		c.indexByID[tbl.Metadata.ID] = i
		c.ids = append(c.ids, tbl.Metadata.ID)
		if tbl.Metadata.Exported {
			c.exportedIDs = append(c.exportedIDs, tbl.Metadata.ID)
		}
	}

	for _, tbl := range program.Tables {
		for _, rule := range tbl.Rules {
			walkRefs(rule.Content, func(ref *ast.TableReference, span ast.Expression) {
				if _, ok := c.indexByID[ref.TargetID]; !ok {
					diags = append(diags, diag.Errorf(span.Span, "validate",
						"Table '%s' references unknown table '%s'", tbl.Metadata.ID, ref.TargetID))
				}
			})
		}
	}

	if diag.HasErrors(diags) {
		return nil, diags
	}

	for id, idx := range c.indexByID {
		c.distByID[id] = buildDistribution(program.Tables[idx].Rules)
	}

	return c, diags
}

func walkRefs(segments []ast.Segment, visit func(*ast.TableReference, ast.Expression)) {
	for _, seg := range segments {
		if seg.Expression != nil && seg.Expression.TableReference != nil {
			visit(seg.Expression.TableReference, *seg.Expression)
		}
	}
}

func buildDistribution(rules []ast.Rule) distribution {
	sums := make([]float64, len(rules))
	var total float64
	for i, r := range rules {
		total += r.Weight
		sums[i] = total
	}
	return distribution{total: total, prefixSums: sums}
}

// TableIDs returns every table id in declaration order, without
// duplicates.
func (c *Collection) TableIDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// ExportedTableIDs returns the subset of TableIDs that were declared
// with the export flag, preserving declaration order.
func (c *Collection) ExportedTableIDs() []string {
	out := make([]string, len(c.exportedIDs))
	copy(out, c.exportedIDs)
	return out
}

// HasTable reports whether id names a declared table.
func (c *Collection) HasTable(id string) bool {
	_, ok := c.indexByID[id]
	return ok
}

// Table returns the table named id, and whether it was found.
func (c *Collection) Table(id string) (ast.Table, bool) {
	idx, ok := c.indexByID[id]
	if !ok {
		return ast.Table{}, false
	}
	return c.program.Tables[idx], true
}

// TotalWeight returns a table's precomputed total rule weight.
func (c *Collection) TotalWeight(id string) (float64, bool) {
	d, ok := c.distByID[id]
	if !ok {
		return 0, false
	}
	return d.total, true
}

// PrefixSums returns a table's precomputed weight prefix-sum array, in
// rule declaration order.
func (c *Collection) PrefixSums(id string) ([]float64, bool) {
	d, ok := c.distByID[id]
	if !ok {
		return nil, false
	}
	return d.prefixSums, true
}

// Program returns the underlying validated Program.
func (c *Collection) Program() ast.Program {
	return c.program
}
