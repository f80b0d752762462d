package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solomonhawk/tbl/internal/collection"
	"github.com/solomonhawk/tbl/internal/diag"
)

func newValidateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a TBL source file: parse, check references, and compute weights",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			c, diags := collection.New(src)
			success := c != nil

			if flags.jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				_ = enc.Encode(map[string]interface{}{
					"success":     success,
					"diagnostics": diag.ToJSONSlice(diags),
				})
			} else {
				if success {
					fmt.Println("ok: no errors")
				} else {
					fmt.Println("failed: see diagnostics below")
				}
				printDiagsText(diags, src, flags)
			}

			if !success {
				os.Exit(1)
			}
			return nil
		},
	}
}
