package lexer

import (
	"testing"

	"github.com/solomonhawk/tbl/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []token.Kind, want ...token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("kind count mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kind[%d] = %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestTokenizeTableHeader(t *testing.T) {
	toks, diags := New("#color\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks), token.HASH, token.IDENT, token.NEWLINE, token.EOF)
}

func TestTokenizeTableHeaderWithExportFlag(t *testing.T) {
	toks, diags := New("#color[export]\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks),
		token.HASH, token.IDENT, token.LBRACKET, token.EXPORT, token.RBRACKET, token.NEWLINE, token.EOF)
}

func TestTokenizeUnknownFlag(t *testing.T) {
	_, diags := New("#color[bogus]\n").Tokenize()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Suggestion != "Recognized flags are: export" {
		t.Fatalf("unexpected suggestion: %q", diags[0].Suggestion)
	}
}

func TestTokenizeRuleLine(t *testing.T) {
	toks, diags := New("1.0: red\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks), token.NUMBER, token.COLON, token.TEXT, token.NEWLINE, token.EOF)
	if toks[2].Lexeme != "red" {
		t.Fatalf("text lexeme = %q, want %q", toks[2].Lexeme, "red")
	}
}

func TestTokenizeRuleWithDiceExpression(t *testing.T) {
	toks, diags := New("1.0: {2d6}\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks),
		token.NUMBER, token.COLON, token.LBRACE, token.DICE, token.RBRACE, token.NEWLINE, token.EOF)
	if toks[3].Lexeme != "2d6" {
		t.Fatalf("dice lexeme = %q, want %q", toks[3].Lexeme, "2d6")
	}
}

func TestTokenizeRuleWithTableReferenceAndModifiers(t *testing.T) {
	toks, diags := New("1.0: {#a|indefinite|capitalize}\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks),
		token.NUMBER, token.COLON, token.LBRACE, token.HASH, token.IDENT,
		token.PIPE, token.IDENT, token.PIPE, token.IDENT, token.RBRACE, token.NEWLINE, token.EOF)
}

func TestTokenizeTextInterleavedWithExpression(t *testing.T) {
	// The space before '{' and after '}' is part of the literal text,
	// not incidental whitespace to discard: generation must not
	// concatenate "a" and "b" into "ab" around the expansion.
	toks, _ := New("1.0: a {d6} b\n").Tokenize()
	assertKinds(t, kinds(toks),
		token.NUMBER, token.COLON, token.TEXT, token.LBRACE, token.DICE,
		token.RBRACE, token.TEXT, token.NEWLINE, token.EOF)
	if toks[2].Lexeme != "a " {
		t.Fatalf("first text = %q, want %q", toks[2].Lexeme, "a ")
	}
	if toks[6].Lexeme != " b" {
		t.Fatalf("second text = %q, want %q", toks[6].Lexeme, " b")
	}
}

func TestTokenizeAdjacentExpressionsPreserveSeparatingSpace(t *testing.T) {
	toks, diags := New("1.0: {#color} {#shape}\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks),
		token.NUMBER, token.COLON,
		token.LBRACE, token.HASH, token.IDENT, token.RBRACE,
		token.TEXT,
		token.LBRACE, token.HASH, token.IDENT, token.RBRACE,
		token.NEWLINE, token.EOF)
	if toks[6].Lexeme != " " {
		t.Fatalf("separating text = %q, want a single space", toks[6].Lexeme)
	}
}

func TestTokenizeOnlyLeadingWhitespaceAfterColonIsSkipped(t *testing.T) {
	toks, diags := New("1.0: roll {d6}\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks),
		token.NUMBER, token.COLON, token.TEXT, token.LBRACE, token.DICE, token.RBRACE, token.NEWLINE, token.EOF)
	if toks[2].Lexeme != "roll " {
		t.Fatalf("text = %q, want %q", toks[2].Lexeme, "roll ")
	}
}

func TestTokenizeDiceLiteralRequiresDigitAfterD(t *testing.T) {
	toks, diags := New("1.0: {#dragon}\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks),
		token.NUMBER, token.COLON, token.LBRACE, token.HASH, token.IDENT, token.RBRACE, token.NEWLINE, token.EOF)
	if toks[4].Lexeme != "dragon" {
		t.Fatalf("ident lexeme = %q, want %q", toks[4].Lexeme, "dragon")
	}
}

func TestTokenizeDefiniteModifierIsNotMisreadAsDice(t *testing.T) {
	toks, diags := New("1.0: {#a|definite}\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks),
		token.NUMBER, token.COLON, token.LBRACE, token.HASH, token.IDENT,
		token.PIPE, token.IDENT, token.RBRACE, token.NEWLINE, token.EOF)
	if toks[6].Lexeme != "definite" {
		t.Fatalf("modifier lexeme = %q, want %q", toks[6].Lexeme, "definite")
	}
}

func TestTokenizeLineComment(t *testing.T) {
	toks, diags := New("// a table about colors\n#color\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks), token.NEWLINE, token.HASH, token.IDENT, token.NEWLINE, token.EOF)
}

func TestTokenizeBlockComment(t *testing.T) {
	toks, diags := New("/* note */ #color\n").Tokenize()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, kinds(toks), token.HASH, token.IDENT, token.NEWLINE, token.EOF)
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	_, diags := New("/* oops\n#color\n").Tokenize()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Span.Start.Line != 1 || diags[0].Span.Start.Column != 1 {
		t.Fatalf("unterminated comment diagnostic anchored at %d:%d, want 1:1",
			diags[0].Span.Start.Line, diags[0].Span.Start.Column)
	}
}

func TestTokenizeStrayCharacter(t *testing.T) {
	_, diags := New("-5\n").Tokenize()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Suggestion == "" {
		t.Fatalf("expected a suggestion for a stray '-'")
	}
}

func TestTokenizePositions(t *testing.T) {
	toks, _ := New("#color\n1.0: red\n").Tokenize()
	// #color
	if toks[0].Span.Start.Line != 1 || toks[0].Span.Start.Column != 1 {
		t.Fatalf("hash position = %d:%d, want 1:1", toks[0].Span.Start.Line, toks[0].Span.Start.Column)
	}
	// 1.0 on line 2
	if toks[3].Kind != token.NUMBER || toks[3].Span.Start.Line != 2 || toks[3].Span.Start.Column != 1 {
		t.Fatalf("number token wrong: %v", toks[3])
	}
}
