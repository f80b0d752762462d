package collection

import (
	"testing"

	"github.com/solomonhawk/tbl/internal/diag"
)

func TestNewRejectsInvalidTableReference(t *testing.T) {
	_, diags := New("#a\n1.0: {#nope}\n")
	if !diag.HasErrors(diags) {
		t.Fatalf("expected an InvalidTableReference diagnostic")
	}
	if diags[0].Span.Start.Line != 2 {
		t.Fatalf("diagnostic line = %d, want 2", diags[0].Span.Start.Line)
	}
}

func TestNewRejectsDuplicateTable(t *testing.T) {
	_, diags := New("#a\n1.0: x\n#a\n1.0: y\n")
	if !diag.HasErrors(diags) {
		t.Fatalf("expected a DuplicateTable diagnostic")
	}
}

func TestTableIDsOrderedAndExportFiltered(t *testing.T) {
	c, diags := New("#a\n1.0:x\n#b[export]\n1.0:y\n")
	if diag.HasErrors(diags) {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := c.TableIDs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("table_ids = %v", got)
	}
	if got := c.ExportedTableIDs(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("exported_table_ids = %v", got)
	}
}

func TestHasTableAndWeights(t *testing.T) {
	c, diags := New("#a\n1.0:x\n2.0:y\n")
	if diag.HasErrors(diags) {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if !c.HasTable("a") || c.HasTable("z") {
		t.Fatalf("has_table mismatch")
	}
	total, _ := c.TotalWeight("a")
	if total != 3.0 {
		t.Fatalf("total weight = %v, want 3.0", total)
	}
	sums, _ := c.PrefixSums("a")
	if len(sums) != 2 || sums[0] != 1.0 || sums[1] != 3.0 {
		t.Fatalf("prefix sums = %v", sums)
	}
}

func TestSelfReferenceIsAllowedAtConstructionTime(t *testing.T) {
	_, diags := New("#a\n1.0: plain\n1.0: {#a}\n")
	if diag.HasErrors(diags) {
		t.Fatalf("self-reference should be valid at construction time: %v", diags)
	}
}
