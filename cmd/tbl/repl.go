package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/solomonhawk/tbl/internal/collection"
	"github.com/solomonhawk/tbl/internal/diag"
	"github.com/solomonhawk/tbl/internal/generate"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

func newReplCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive TBL session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(flags)
			return nil
		},
	}
}

// replSession holds a single REPL's running source text, the most
// recent successfully-built collection, and a session id shown in the
// startup banner.
type replSession struct {
	id     string
	source strings.Builder
	coll   *collection.Collection
	cfg    *globalFlags
}

func runRepl(flags *globalFlags) {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".tbl_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            colorGreen + "tbl> " + colorReset,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	sess := &replSession{id: uuid.NewString(), cfg: flags}

	fmt.Fprintf(rl.Stdout(), "%s%stbl REPL%s %s(session %s, type 'exit' or Ctrl+D to quit)%s\n",
		colorBold, colorCyan, colorReset, colorGray, sess.id[:8], colorReset)
	fmt.Fprintf(rl.Stdout(), "%sdefine tables, or use :tables, :generate <id> [count], :reset%s\n\n", colorGray, colorReset)

	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt(colorGray + "...  " + colorReset)
		} else {
			rl.SetPrompt(colorGreen + "tbl> " + colorReset)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if braceDepth > 0 {
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s(use 'exit' or Ctrl+D to quit)%s\n", colorGray, colorReset)
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		if braceDepth == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			handleMetaCommand(rl, sess, strings.TrimSpace(line))
			continue
		}

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		chunk := accumulated.String()
		accumulated.Reset()

		if strings.TrimSpace(chunk) == "" {
			continue
		}

		candidate := sess.source.String() + chunk
		c, diags := collection.New(candidate)
		if c == nil {
			printDiagsColored(rl.Stderr(), diags)
			continue
		}
		if diag.HasErrors(diags) {
			printDiagsColored(rl.Stderr(), diags)
			continue
		}

		sess.source.WriteString(chunk)
		sess.coll = c
		fmt.Fprintf(rl.Stdout(), "%sok%s\n", colorGreen, colorReset)
	}
}

func handleMetaCommand(rl *readline.Instance, sess *replSession, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":tables":
		if sess.coll == nil {
			fmt.Fprintf(rl.Stdout(), "%sno tables defined yet%s\n", colorGray, colorReset)
			return
		}
		for _, id := range sess.coll.TableIDs() {
			fmt.Fprintln(rl.Stdout(), id)
		}
	case ":reset":
		sess.source.Reset()
		sess.coll = nil
		fmt.Fprintf(rl.Stdout(), "%ssession reset%s\n", colorGray, colorReset)
	case ":generate":
		if sess.coll == nil {
			fmt.Fprintf(rl.Stderr(), "%sno tables defined yet%s\n", colorRed, colorReset)
			return
		}
		if len(fields) < 2 {
			fmt.Fprintf(rl.Stderr(), "%susage: :generate <table-id> [count]%s\n", colorRed, colorReset)
			return
		}
		tableID := fields[1]
		count := 1
		if len(fields) >= 3 {
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				fmt.Fprintf(rl.Stderr(), "%sinvalid count %q%s\n", colorRed, fields[2], colorReset)
				return
			}
			count = n
		}
		out, err := generate.Generate(sess.coll, tableID, count, generate.NewEntropy())
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "%s%v%s\n", colorRed, err, colorReset)
			return
		}
		fmt.Fprintln(rl.Stdout(), out)
	default:
		fmt.Fprintf(rl.Stderr(), "%sunknown command %q%s\n", colorRed, fields[0], colorReset)
	}
}

func printDiagsColored(w io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s%s%s\n", colorRed, d.String(), colorReset)
	}
}
