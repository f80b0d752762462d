package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solomonhawk/tbl/internal/ast"
	"github.com/solomonhawk/tbl/internal/diag"
	"github.com/solomonhawk/tbl/internal/parser"
)

func newParseCmd(flags *globalFlags) *cobra.Command {
	var indent bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a TBL source file and print its AST",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			program, diags := parser.Parse(src)

			if flags.jsonOutput {
				out := map[string]interface{}{
					"ast_json":    ast.ProgramToMap(program),
					"diagnostics": diag.ToJSONSlice(diags),
				}
				enc := json.NewEncoder(os.Stdout)
				if indent {
					enc.SetIndent("", "  ")
				}
				if err := enc.Encode(out); err != nil {
					return err
				}
			} else {
				data, err := json.MarshalIndent(ast.ProgramToMap(program), "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				printDiagsText(diags, src, flags)
			}

			if diag.HasErrors(diags) {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&indent, "indent", true, "pretty-print JSON output")

	return cmd
}
