package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/solomonhawk/tbl/internal/config"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	jsonOutput bool
	noColor    bool
	noSuggest  bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "tbl",
		Short:         "Author and sample weighted random-generation tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "emit JSON instead of text")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable ANSI colors in diagnostics")
	root.PersistentFlags().BoolVar(&flags.noSuggest, "no-suggestions", false, "omit suggestion lines from diagnostics")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a .tblrc.toml or .tblrc.yaml file")

	root.AddCommand(newTokensCmd(flags))
	root.AddCommand(newParseCmd(flags))
	root.AddCommand(newValidateCmd(flags))
	root.AddCommand(newGenerateCmd(flags))
	root.AddCommand(newReplCmd(flags))

	return root
}

func (f *globalFlags) loadConfig() *config.Config {
	if f.configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
		return config.Default()
	}
	return cfg
}

// readSource reads TBL source from a file argument, or from stdin when
// args is empty or "-".
func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
