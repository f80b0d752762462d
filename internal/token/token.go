// Package token defines the token kinds produced by the lexer.
package token

import (
	"fmt"

	"github.com/solomonhawk/tbl/internal/source"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	NEWLINE

	HASH     // #
	IDENT    // table id, modifier name, flag name
	NUMBER   // decimal weight, lexed as text
	COLON    // :
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	PIPE     // |
	DICE     // [count] "d" sides, only inside { }
	TEXT     // a run of literal rule-body text
	EXPORT   // the "export" flag keyword, flag-context only
)

var kindNames = map[Kind]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	NEWLINE:  "NEWLINE",
	HASH:     "#",
	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	COLON:    ":",
	LBRACE:   "{",
	RBRACE:   "}",
	LBRACKET: "[",
	RBRACKET: "]",
	COMMA:    ",",
	PIPE:     "|",
	DICE:     "DICE",
	TEXT:     "TEXT",
	EXPORT:   "export",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexeme with its kind, literal text, and source span.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   source.Span
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %d:%d", t.Kind, t.Lexeme, t.Span.Start.Line, t.Span.Start.Column)
}
