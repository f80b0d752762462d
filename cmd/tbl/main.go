// Command tbl is the TBL language CLI: tokenize, parse, validate, and
// generate from table definitions, plus an interactive REPL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
