// Package lexer implements the forward-only scanner that turns TBL
// source text into a stream of spanned tokens.
package lexer

import (
	"strings"

	"github.com/solomonhawk/tbl/internal/diag"
	"github.com/solomonhawk/tbl/internal/source"
	"github.com/solomonhawk/tbl/internal/token"
)

// Lexer scans TBL source text into tokens. It holds no global state and
// is safe to discard after a single Tokenize call.
type Lexer struct {
	text string
	pos  int

	atLineStart     bool
	inFlags         bool
	inRuleBody      bool
	atRuleBodyStart bool
	inExpr          bool

	srcMap *source.Map
	diags  []diag.Diagnostic
}

// New creates a Lexer over the given source text.
func New(text string) *Lexer {
	return &Lexer{text: text, srcMap: source.New(text), atLineStart: true}
}

// Tokenize scans the entire input and returns the token stream plus any
// lex diagnostics accumulated along the way. Scanning never aborts: a
// malformed character still yields a token (ILLEGAL, best-effort) so
// the parser can attempt recovery.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	var toks []token.Token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks, l.diags
}

func (l *Lexer) span(start, end int) source.Span {
	return l.srcMap.Span(start, end)
}

func (l *Lexer) addError(start, end int, category, format string, args ...interface{}) {
	l.diags = append(l.diags, diag.Errorf(l.span(start, end), category, format, args...))
}

func (l *Lexer) setLastSuggestion(s string) {
	l.diags[len(l.diags)-1] = l.diags[len(l.diags)-1].WithSuggestion(s)
}

func (l *Lexer) at(offset int) byte {
	if l.pos+offset >= len(l.text) {
		return 0
	}
	return l.text[l.pos+offset]
}

func (l *Lexer) cur() byte { return l.at(0) }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '-'
}

// next produces the next token, updating lexer mode as a side effect.
func (l *Lexer) next() token.Token {
	if l.pos >= len(l.text) {
		return l.makeTok(token.EOF, l.pos, l.pos)
	}

	if l.inExpr {
		return l.scanExpr()
	}
	if l.inRuleBody {
		return l.scanRuleBody()
	}
	return l.scanDefault()
}

func (l *Lexer) makeTok(k token.Kind, start, end int) token.Token {
	return token.Token{Kind: k, Lexeme: l.text[start:end], Span: l.span(start, end)}
}

// scanDefault handles table headers, flags, weight numbers, and colons —
// everything outside of a rule body or an expression.
func (l *Lexer) scanDefault() token.Token {
	for {
		c := l.cur()

		if c == '\n' {
			start := l.pos
			l.pos++
			l.atLineStart = true
			l.inFlags = false
			return l.makeTok(token.NEWLINE, start, l.pos)
		}

		// Leading whitespace and comments keep the line-start status, so
		// a table header may follow them on the same line.
		if c == ' ' || c == '\t' || c == '\r' {
			l.pos++
			continue
		}

		if c == '/' && l.at(1) == '/' {
			l.skipLineComment()
			continue
		}
		if c == '/' && l.at(1) == '*' {
			l.skipBlockComment()
			continue
		}

		break
	}

	if l.pos >= len(l.text) {
		return l.makeTok(token.EOF, l.pos, l.pos)
	}

	start := l.pos
	c := l.cur()
	wasLineStart := l.atLineStart
	l.atLineStart = false

	switch {
	case c == '#' && wasLineStart:
		l.pos++
		return l.makeTok(token.HASH, start, l.pos)
	case c == '[':
		l.pos++
		l.inFlags = true
		return l.makeTok(token.LBRACKET, start, l.pos)
	case c == ']':
		l.pos++
		l.inFlags = false
		return l.makeTok(token.RBRACKET, start, l.pos)
	case c == ',' && l.inFlags:
		l.pos++
		return l.makeTok(token.COMMA, start, l.pos)
	case c == ':':
		l.pos++
		l.inRuleBody = true
		l.atRuleBodyStart = true
		return l.makeTok(token.COLON, start, l.pos)
	case isDigit(c):
		return l.scanNumber()
	case isIdentStart(c):
		return l.scanIdent()
	default:
		l.pos++
		l.addError(start, l.pos, "lex", "Unexpected character '%c'", c)
		if c == '-' {
			l.setLastSuggestion("Negative numbers are not allowed. Use positive weights like 1.0, 2.5")
		} else {
			l.setLastSuggestion("Only numbers, colons, and rule text are allowed here")
		}
		return l.makeTok(token.ILLEGAL, start, l.pos)
	}
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.text) && l.text[l.pos] != '\n' {
		l.pos++
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.pos
	l.pos += 2 // consume "/*"
	for {
		if l.pos >= len(l.text) {
			l.addError(start, l.pos, "lex", "Unterminated block comment")
			return
		}
		if l.text[l.pos] == '*' && l.at(1) == '/' {
			l.pos += 2
			return
		}
		l.pos++
	}
}

func (l *Lexer) scanNumber() token.Token {
	start := l.pos
	for isDigit(l.cur()) {
		l.pos++
	}
	if l.cur() == '.' && isDigit(l.at(1)) {
		l.pos++
		for isDigit(l.cur()) {
			l.pos++
		}
	}
	return l.makeTok(token.NUMBER, start, l.pos)
}

func (l *Lexer) scanIdent() token.Token {
	start := l.pos
	for isIdentPart(l.cur()) {
		l.pos++
	}
	lexeme := l.text[start:l.pos]

	if lexeme == "export" && l.inFlags {
		return l.makeTok(token.EXPORT, start, l.pos)
	}

	if l.inFlags {
		d := diag.Errorf(l.span(start, l.pos), "lex", "Unknown flag '%s'", lexeme).
			WithSuggestion("Recognized flags are: export")
		l.diags = append(l.diags, d)
	}

	return l.makeTok(token.IDENT, start, l.pos)
}

// scanRuleBody handles text and the opening '{' of an expression,
// inside a rule body (after the weight's colon, until newline).
func (l *Lexer) scanRuleBody() token.Token {
	if l.cur() == '\n' {
		start := l.pos
		l.pos++
		l.inRuleBody = false
		l.atRuleBodyStart = false
		l.atLineStart = true
		return l.makeTok(token.NEWLINE, start, l.pos)
	}

	if l.cur() == '{' {
		start := l.pos
		l.pos++
		l.inExpr = true
		l.atRuleBodyStart = false
		return l.makeTok(token.LBRACE, start, l.pos)
	}

	// Skip a single run of leading whitespace right after the colon.
	// Whitespace elsewhere in the rule body, including the space
	// separating adjacent expressions, is preserved as text.
	if l.atRuleBodyStart {
		l.atRuleBodyStart = false
		for l.pos < len(l.text) && (l.cur() == ' ' || l.cur() == '\t') {
			l.pos++
		}
	}

	start := l.pos
	for l.pos < len(l.text) && l.text[l.pos] != '{' && l.text[l.pos] != '\n' {
		l.pos++
	}
	text := strings.TrimRight(l.text[start:l.pos], "\r")

	if text == "" {
		return l.next()
	}

	return token.Token{Kind: token.TEXT, Lexeme: text, Span: l.span(start, l.pos)}
}

// scanExpr handles tokens inside a `{ ... }` expression.
func (l *Lexer) scanExpr() token.Token {
	for l.cur() == ' ' || l.cur() == '\t' || l.cur() == '\r' {
		l.pos++
	}

	if l.pos >= len(l.text) {
		l.addError(l.pos, l.pos, "lex", "Unterminated expression")
		l.inExpr = false
		return l.makeTok(token.EOF, l.pos, l.pos)
	}

	start := l.pos
	c := l.cur()

	switch {
	case c == '\n':
		l.addError(start, start+1, "lex", "Unterminated expression")
		l.inExpr = false
		l.pos++
		l.atLineStart = true
		return l.makeTok(token.NEWLINE, start, l.pos)
	case c == '}':
		l.pos++
		l.inExpr = false
		return l.makeTok(token.RBRACE, start, l.pos)
	case c == '#':
		l.pos++
		return l.makeTok(token.HASH, start, l.pos)
	case c == '|':
		l.pos++
		return l.makeTok(token.PIPE, start, l.pos)
	case isDigit(c):
		return l.scanDice()
	case c == 'd' && isDigit(l.at(1)):
		return l.scanDice()
	case isIdentStart(c):
		return l.scanIdent()
	default:
		l.pos++
		l.addError(start, l.pos, "lex", "Unexpected character '%c' in expression", c)
		return l.makeTok(token.ILLEGAL, start, l.pos)
	}
}

// scanDice scans a best-effort `[digits] "d" digits` run. Malformed
// shapes are still returned as a DICE token for the parser to reject
// with a precise "malformed dice literal" diagnostic.
func (l *Lexer) scanDice() token.Token {
	start := l.pos
	for isDigit(l.cur()) {
		l.pos++
	}
	if l.cur() == 'd' {
		l.pos++
		for isDigit(l.cur()) {
			l.pos++
		}
	}
	return l.makeTok(token.DICE, start, l.pos)
}
