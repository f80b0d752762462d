// Package tbl is the embedding-facing facade over the TBL language
// pipeline: parsing, validation, collection construction, and
// generation, with JSON-serializable results for hosts that want the
// AST or diagnostics without linking against the internal packages.
package tbl

import (
	"encoding/json"

	"github.com/solomonhawk/tbl/internal/ast"
	"github.com/solomonhawk/tbl/internal/collection"
	"github.com/solomonhawk/tbl/internal/diag"
	"github.com/solomonhawk/tbl/internal/generate"
	"github.com/solomonhawk/tbl/internal/parser"
)

// ParseResult is the result of Parse: an AST (always present, possibly
// partial) plus any diagnostics gathered along the way.
type ParseResult struct {
	AST         map[string]interface{} `json:"ast_json"`
	Diagnostics []diag.JSON             `json:"diagnostics"`
}

// Parse lexes and parses source, always returning an AST (possibly
// partial) alongside its diagnostics.
func Parse(source string) ParseResult {
	program, diags := parser.Parse(source)
	return ParseResult{
		AST:         ast.ProgramToMap(program),
		Diagnostics: diag.ToJSONSlice(diags),
	}
}

// ValidateResult reports whether source parses with zero error-severity
// diagnostics, omitting the AST.
type ValidateResult struct {
	Success     bool        `json:"success"`
	Diagnostics []diag.JSON `json:"diagnostics"`
}

// Validate lexes and parses source, reporting success and diagnostics
// without building the AST JSON payload.
func Validate(source string) ValidateResult {
	_, diags := parser.Parse(source)
	return ValidateResult{
		Success:     !diag.HasErrors(diags),
		Diagnostics: diag.ToJSONSlice(diags),
	}
}

// Collection wraps a validated internal collection with the
// embedding-facing generate/query surface.
type Collection struct {
	inner *collection.Collection
}

// NewCollection parses, validates, and indexes source. On any
// error-severity diagnostic it returns a nil Collection and the full
// diagnostic list.
func NewCollection(source string) (*Collection, []diag.JSON) {
	c, diags := collection.New(source)
	if c == nil {
		return nil, diag.ToJSONSlice(diags)
	}
	return &Collection{inner: c}, diag.ToJSONSlice(diags)
}

// Generate draws count independent samples from table_id, newline
// joined. If seed is non-nil, generation is deterministic for that
// seed; otherwise a platform-entropy RNG is used.
func (c *Collection) Generate(tableID string, count int, seed *uint64) (string, error) {
	var rng generate.RNG
	if seed != nil {
		rng = generate.NewSeeded(*seed)
	} else {
		rng = generate.NewEntropy()
	}
	return generate.Generate(c.inner, tableID, count, rng)
}

// TableIDs returns every declared table id, in declaration order.
func (c *Collection) TableIDs() []string {
	return c.inner.TableIDs()
}

// ExportedTableIDs returns the subset of TableIDs declared with the
// export flag, preserving declaration order.
func (c *Collection) ExportedTableIDs() []string {
	return c.inner.ExportedTableIDs()
}

// HasTable reports whether tableID names a declared table.
func (c *Collection) HasTable(tableID string) bool {
	return c.inner.HasTable(tableID)
}

// MarshalASTJSON renders source's AST as an indented JSON document,
// matching the external AST schema. Intended for CLI/tooling output.
func MarshalASTJSON(source string, indent bool) ([]byte, error) {
	result := Parse(source)
	if indent {
		return json.MarshalIndent(result.AST, "", "  ")
	}
	return json.Marshal(result.AST)
}
