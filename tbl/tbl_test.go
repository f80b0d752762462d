package tbl

import "testing"

func TestParseReturnsEmptyDiagnosticsForWellFormedSource(t *testing.T) {
	res := Parse("#color\n1.0: red\n2.0: blue\n")
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	tables, ok := res.AST["tables"].([]map[string]interface{})
	if !ok || len(tables) != 1 {
		t.Fatalf("expected 1 table in ast_json, got %#v", res.AST["tables"])
	}
}

func TestValidateDoesNotCheckTableReferences(t *testing.T) {
	res := Validate("#a\n1.0: {#nope}\n")
	// Validate only runs lex+parse, so an unknown reference (a
	// collection-level concern) is not itself a parse failure here.
	if !res.Success {
		t.Fatalf("expected Validate to succeed on a syntactically valid source: %v", res.Diagnostics)
	}
}

func TestNewCollectionRejectsInvalidReference(t *testing.T) {
	c, diags := NewCollection("#a\n1.0: {#nope}\n")
	if c != nil {
		t.Fatalf("expected construction to fail")
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Line != 2 {
		t.Fatalf("diagnostic line = %d, want 2", diags[0].Line)
	}
}

func TestNewCollectionZeroWeightDiagnostic(t *testing.T) {
	_, diags := NewCollection("#a\n0: x\n")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Message != "Weight must be positive, but got 0" {
		t.Fatalf("message = %q", diags[0].Message)
	}
}

func TestCollectionGenerateDeterministicWithSeed(t *testing.T) {
	c, diags := NewCollection("#a\n1.0: x\n")
	if c == nil {
		t.Fatalf("unexpected construction failure: %v", diags)
	}
	seed := uint64(42)
	a, err := c.Generate("a", 1, &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := c.Generate("a", 1, &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b || a != "x" {
		t.Fatalf("got %q and %q, want both %q", a, b, "x")
	}
}

func TestCollectionTableIDsAndExportFilter(t *testing.T) {
	c, diags := NewCollection("#a\n1.0:x\n#b[export]\n1.0:y\n")
	if c == nil {
		t.Fatalf("unexpected construction failure: %v", diags)
	}
	if got := c.TableIDs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("table_ids = %v", got)
	}
	if got := c.ExportedTableIDs(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("exported_table_ids = %v", got)
	}
	if !c.HasTable("a") || c.HasTable("z") {
		t.Fatalf("has_table mismatch")
	}
}
