package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solomonhawk/tbl/internal/diag"
	"github.com/solomonhawk/tbl/internal/lexer"
	"github.com/solomonhawk/tbl/internal/source"
	"github.com/solomonhawk/tbl/internal/token"
)

func newTokensCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream for a TBL source file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			toks, diags := lexer.New(src).Tokenize()

			if flags.jsonOutput {
				printTokensJSON(toks, diags)
				return nil
			}
			printTokensText(toks, diags, src, flags)
			if diag.HasErrors(diags) {
				os.Exit(1)
			}
			return nil
		},
	}
}

type tokenJSON struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func printTokensJSON(toks []token.Token, diags []diag.Diagnostic) {
	out := make([]tokenJSON, len(toks))
	for i, t := range toks {
		out[i] = tokenJSON{Kind: t.Kind.String(), Lexeme: t.Lexeme, Line: t.Span.Start.Line, Column: t.Span.Start.Column}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]interface{}{
		"tokens":      out,
		"diagnostics": diag.ToJSONSlice(diags),
	})
}

func printTokensText(toks []token.Token, diags []diag.Diagnostic, src string, flags *globalFlags) {
	for _, t := range toks {
		if t.Kind == token.NEWLINE {
			fmt.Printf("%-8s %-20q %d:%d\n", t.Kind, "\\n", t.Span.Start.Line, t.Span.Start.Column)
			continue
		}
		fmt.Printf("%-8s %-20q %d:%d\n", t.Kind, t.Lexeme, t.Span.Start.Line, t.Span.Start.Column)
	}
	printDiagsText(diags, src, flags)
}

func printDiagsText(diags []diag.Diagnostic, src string, flags *globalFlags) {
	if len(diags) == 0 {
		return
	}
	formatter := diag.NewFormatter(source.New(src)).
		WithColors(!flags.noColor).
		WithSuggestions(!flags.noSuggest)
	fmt.Fprint(os.Stderr, formatter.FormatAll(diags))
}
