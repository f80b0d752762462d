// Package parser implements a recursive-descent parser over the TBL
// token stream, producing an AST plus diagnostics. A single malformed
// construct never aborts the whole parse: the parser resynchronizes to
// the next table or rule line and keeps going.
package parser

import (
	"math"
	"strconv"

	"github.com/solomonhawk/tbl/internal/ast"
	"github.com/solomonhawk/tbl/internal/diag"
	"github.com/solomonhawk/tbl/internal/lexer"
	"github.com/solomonhawk/tbl/internal/source"
	"github.com/solomonhawk/tbl/internal/token"
)

// Parser consumes a token slice and builds an ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  []diag.Diagnostic
}

// New creates a Parser over an already-lexed token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes and parses a complete TBL source string in one call.
func Parse(src string) (ast.Program, []diag.Diagnostic) {
	toks, lexDiags := lexer.New(src).Tokenize()
	p := New(toks)
	p.diags = append(p.diags, lexDiags...)
	prog := p.ParseProgram()
	return prog, p.diags
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token { return p.tokens[p.pos] }

func (p *Parser) peekKind() token.Kind { return p.tokens[p.pos].Kind }

func (p *Parser) prevKind() token.Kind {
	if p.pos == 0 {
		return token.ILLEGAL
	}
	return p.tokens[p.pos-1].Kind
}

func (p *Parser) isAtEnd() bool { return p.peekKind() == token.EOF }

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(k token.Kind) bool { return p.peekKind() == k }

func (p *Parser) match(k token.Kind) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind k, or emits a diagnostic at the
// current token's span with the given message/suggestion.
func (p *Parser) expect(k token.Kind, message, suggestion string) (token.Token, bool) {
	if tok, ok := p.match(k); ok {
		return tok, true
	}
	d := diag.Errorf(p.peek().Span, "parse", "%s", message)
	if suggestion != "" {
		d = d.WithSuggestion(suggestion)
	}
	p.diags = append(p.diags, d)
	return token.Token{}, false
}

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// synchronize skips tokens until the one just consumed was a NEWLINE
// and the next token starts a new table or rule, guaranteeing progress
// even when called at the error token itself.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.prevKind() == token.NEWLINE && (p.peekKind() == token.HASH || p.peekKind() == token.NUMBER) {
			return
		}
		p.advance()
	}
}

// ---- grammar ----

// ParseProgram parses `{ table } eof`.
func (p *Parser) ParseProgram() ast.Program {
	var tables []ast.Table
	p.skipNewlines()

	for !p.isAtEnd() {
		if p.check(token.HASH) {
			tables = append(tables, p.parseTable())
			p.skipNewlines()
			continue
		}

		p.diags = append(p.diags, diag.Errorf(p.peek().Span, "parse",
			"Expected '#' to start table declaration").WithSuggestion("Expected '#' to start table declaration"))
		p.synchronize()
		p.skipNewlines()
	}

	return ast.Program{Tables: tables}
}

// parseTable parses `"#" ident [ "[" flag { "," flag } "]" ] newline rule { rule }`.
func (p *Parser) parseTable() ast.Table {
	startSpan := p.peek().Span
	p.advance() // '#'

	identTok, ok := p.expect(token.IDENT, "Expected a table identifier after '#'", "")
	id := identTok.Lexeme
	if !ok {
		id = ""
	}

	exported := false
	if _, ok := p.match(token.LBRACKET); ok {
		exported = p.parseFlags()
		p.expect(token.RBRACKET, "Expected ']' to close the flag list", "")
	}

	p.expect(token.NEWLINE, "Expected a newline after the table declaration", "")

	var rules []ast.Rule
	for p.check(token.NUMBER) {
		rules = append(rules, p.parseRule())
	}

	if len(rules) == 0 {
		p.diags = append(p.diags, diag.Errorf(startSpan, "parse",
			"Table '%s' has no rules", id).WithSuggestion("Every table needs at least one weighted rule"))
	}

	endSpan := startSpan
	if len(rules) > 0 {
		endSpan = rules[len(rules)-1].Span
	}

	return ast.Table{
		Metadata: ast.Metadata{ID: id, Exported: exported},
		Rules:    rules,
		Span:     source.Span{Start: startSpan.Start, End: endSpan.End},
	}
}

// parseFlags parses `flag { "," flag }` and returns whether "export"
// was present.
func (p *Parser) parseFlags() bool {
	exported := false
	for {
		switch p.peekKind() {
		case token.EXPORT:
			p.advance()
			exported = true
		case token.IDENT:
			// The lexer already flagged the unknown name; consume it
			// for recovery without emitting a second diagnostic.
			p.advance()
		default:
			p.diags = append(p.diags, diag.Errorf(p.peek().Span, "parse",
				"Expected a flag name").WithSuggestion("Recognized flags are: export"))
			return exported
		}

		if _, ok := p.match(token.COMMA); !ok {
			return exported
		}
	}
}

// parseRule parses `number ":" rule_body newline`.
func (p *Parser) parseRule() ast.Rule {
	weightTok := p.advance()
	weight, err := strconv.ParseFloat(weightTok.Lexeme, 64)
	if err != nil {
		p.diags = append(p.diags, diag.Errorf(weightTok.Span, "parse",
			"'%s' is not a valid number", weightTok.Lexeme).
			WithSuggestion("Numbers should be positive decimal values like 1.5, 2.0, or 42"))
	} else if weight <= 0 || math.IsInf(weight, 0) || math.IsNaN(weight) {
		p.diags = append(p.diags, diag.Errorf(weightTok.Span, "parse",
			"Weight must be positive, but got %s", formatWeight(weight)).
			WithSuggestion("Try using a positive number like 1.0, 2.5, or 10"))
	}

	p.expect(token.COLON, "Only numbers, colons, and rule text are allowed in this language", "")

	content := p.parseRuleBody()

	endSpan := weightTok.Span
	if len(content) > 0 {
		if last := content[len(content)-1]; last.Expression != nil {
			endSpan = last.Expression.Span
		}
	}

	if _, ok := p.match(token.NEWLINE); !ok && !p.isAtEnd() {
		p.diags = append(p.diags, diag.Errorf(p.peek().Span, "parse",
			"Expected a newline to end the rule").WithSuggestion(""))
	}

	return ast.Rule{
		Weight:  weight,
		Content: content,
		Span:    source.Span{Start: weightTok.Span.Start, End: endSpan.End},
	}
}

func formatWeight(w float64) string {
	if w == math.Trunc(w) && !math.IsInf(w, 0) {
		return strconv.FormatFloat(w, 'f', 0, 64)
	}
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// parseRuleBody parses `{ text | expression }`.
func (p *Parser) parseRuleBody() []ast.Segment {
	var segments []ast.Segment
	for {
		switch p.peekKind() {
		case token.TEXT:
			tok := p.advance()
			segments = append(segments, ast.LiteralSegment(tok.Lexeme))
		case token.LBRACE:
			segments = append(segments, ast.ExpressionSegment(p.parseExpression()))
		default:
			return segments
		}
	}
}

// parseExpression parses `"{" ( dice | ref ) "}"`.
func (p *Parser) parseExpression() ast.Expression {
	startSpan := p.peek().Span
	p.advance() // '{'

	var expr ast.Expression
	switch p.peekKind() {
	case token.DICE:
		expr = p.parseDice()
	case token.HASH:
		expr = p.parseRef()
	default:
		p.diags = append(p.diags, diag.Errorf(p.peek().Span, "parse",
			"Expected a dice roll or table reference").
			WithSuggestion("Use {d6}, {2d10}, or {#table_id} inside an expression"))
		for !p.check(token.RBRACE) && !p.check(token.NEWLINE) && !p.isAtEnd() {
			p.advance()
		}
	}

	var endTok token.Token
	if p.check(token.RBRACE) {
		endTok = p.advance()
	} else {
		endTok = p.peek()
		if p.peekKind() != token.NEWLINE && !p.isAtEnd() {
			p.diags = append(p.diags, diag.Errorf(endTok.Span, "parse",
				"Expected '}' to close the expression").WithSuggestion(""))
		}
	}

	expr.Span = source.Span{Start: startSpan.Start, End: endTok.Span.End}
	return expr
}

// parseDice parses `dice := [ digits ] "d" digits` from a single DICE
// token's lexeme.
func (p *Parser) parseDice() ast.Expression {
	tok := p.advance()

	countStr, sidesStr, ok := splitDice(tok.Lexeme)
	if !ok {
		p.diags = append(p.diags, diag.Errorf(tok.Span, "parse",
			"'%s' is not a valid dice literal", tok.Lexeme).
			WithSuggestion("Dice literals look like d6 or 2d10"))
		return ast.Expression{DiceRoll: &ast.DiceRoll{Count: 1, Sides: 1}}
	}

	count := uint64(1)
	if countStr != "" {
		var err error
		count, err = strconv.ParseUint(countStr, 10, 32)
		if err != nil || count < 1 {
			p.diags = append(p.diags, diag.Errorf(tok.Span, "parse",
				"Dice count must be a positive whole number").
				WithSuggestion("Dice literals look like d6 or 2d10"))
			count = 1
		}
	}

	sides, err := strconv.ParseUint(sidesStr, 10, 32)
	if err != nil || sides < 1 {
		p.diags = append(p.diags, diag.Errorf(tok.Span, "parse",
			"Dice sides must be a positive whole number").
			WithSuggestion("Dice literals look like d6 or 2d10"))
		sides = 1
	}

	return ast.Expression{DiceRoll: &ast.DiceRoll{Count: uint32(count), Sides: uint32(sides)}}
}

// splitDice splits a dice lexeme like "2d10" or "d6" into its count and
// sides digit runs.
func splitDice(lexeme string) (count, sides string, ok bool) {
	idx := -1
	for i := 0; i < len(lexeme); i++ {
		if lexeme[i] == 'd' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", "", false
	}
	count = lexeme[:idx]
	sides = lexeme[idx+1:]
	if sides == "" {
		return "", "", false
	}
	for i := 0; i < len(count); i++ {
		if count[i] < '0' || count[i] > '9' {
			return "", "", false
		}
	}
	for i := 0; i < len(sides); i++ {
		if sides[i] < '0' || sides[i] > '9' {
			return "", "", false
		}
	}
	return count, sides, true
}

// parseRef parses `ref := "#" ident { "|" modifier }`.
func (p *Parser) parseRef() ast.Expression {
	p.advance() // '#'

	identTok, _ := p.expect(token.IDENT, "Expected a table identifier after '#'", "")

	var modifiers []ast.Modifier
	for {
		if _, ok := p.match(token.PIPE); !ok {
			break
		}
		modTok, ok := p.expect(token.IDENT, "Expected a modifier name after '|'", "")
		if !ok {
			continue
		}
		m, known := ast.LookupModifier(modTok.Lexeme)
		if !known {
			p.diags = append(p.diags, diag.Errorf(modTok.Span, "parse",
				"Unknown modifier '%s'", modTok.Lexeme).
				WithSuggestion("Available modifiers: indefinite, definite, capitalize, uppercase, lowercase"))
			continue
		}
		modifiers = append(modifiers, m)
	}

	return ast.Expression{TableReference: &ast.TableReference{TargetID: identTok.Lexeme, Modifiers: modifiers}}
}
