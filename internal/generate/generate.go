// Package generate implements weighted-random sampling over a
// collection: rule selection, dice arithmetic, recursive table-reference
// expansion, and modifier application.
package generate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/solomonhawk/tbl/internal/ast"
	"github.com/solomonhawk/tbl/internal/collection"
)

// MaxDepth bounds how many nested table-reference expansions a single
// sample may perform. Self-reference is fine as long as some branch
// terminates before this limit.
const MaxDepth = 64

// RNG is the minimal randomness surface the generator needs. Callers
// provide their own source so generation stays deterministic under a
// fixed seed and free of hidden global state.
type RNG interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
	// IntN returns a pseudo-random number in [0, n).
	IntN(n int) int
}

// ErrorKind classifies a generation failure.
type ErrorKind int

const (
	UnknownTable ErrorKind = iota
	RecursionLimitExceeded
	EmptyTable
)

// Error is returned by Generate on any runtime failure. It never
// indicates a problem with the Collection itself — the Collection is
// never mutated or invalidated by a failed generation.
type Error struct {
	Kind    ErrorKind
	TableID string
	Chain   []string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownTable:
		return fmt.Sprintf("unknown table %q", e.TableID)
	case RecursionLimitExceeded:
		return fmt.Sprintf("recursion limit exceeded expanding %q (chain: %s)", e.TableID, strings.Join(e.Chain, " -> "))
	case EmptyTable:
		return fmt.Sprintf("table %q has no rules", e.TableID)
	default:
		return "generation error"
	}
}

// Generate draws count independent samples from table_id and joins them
// with a newline.
func Generate(c *collection.Collection, tableID string, count int, rng RNG) (string, error) {
	if !c.HasTable(tableID) {
		return "", &Error{Kind: UnknownTable, TableID: tableID}
	}

	samples := make([]string, count)
	for i := 0; i < count; i++ {
		s, err := generateOne(c, tableID, rng, nil)
		if err != nil {
			return "", err
		}
		samples[i] = s
	}
	return strings.Join(samples, "\n"), nil
}

func generateOne(c *collection.Collection, tableID string, rng RNG, chain []string) (string, error) {
	if len(chain) >= MaxDepth {
		full := append(append([]string{}, chain...), tableID)
		return "", &Error{Kind: RecursionLimitExceeded, TableID: tableID, Chain: full}
	}

	tbl, ok := c.Table(tableID)
	if !ok {
		return "", &Error{Kind: UnknownTable, TableID: tableID}
	}
	if len(tbl.Rules) == 0 {
		return "", &Error{Kind: EmptyTable, TableID: tableID}
	}

	total, _ := c.TotalWeight(tableID)
	prefixSums, _ := c.PrefixSums(tableID)
	idx := selectRule(prefixSums, rng.Float64()*total)
	rule := tbl.Rules[idx]

	nextChain := append(append([]string{}, chain...), tableID)

	var b strings.Builder
	for _, seg := range rule.Content {
		if seg.Literal != nil {
			b.WriteString(*seg.Literal)
			continue
		}

		expr := seg.Expression
		if expr.DiceRoll != nil {
			b.WriteString(strconv.Itoa(rollDice(rng, *expr.DiceRoll)))
			continue
		}

		ref := expr.TableReference
		s, err := generateOne(c, ref.TargetID, rng, nextChain)
		if err != nil {
			return "", err
		}
		for _, m := range ref.Modifiers {
			s = applyModifier(m, s)
		}
		b.WriteString(s)
	}

	return b.String(), nil
}

// selectRule finds the smallest index i such that prefixSums[i] > u.
func selectRule(prefixSums []float64, u float64) int {
	return sort.Search(len(prefixSums), func(i int) bool {
		return prefixSums[i] > u
	})
}

func rollDice(rng RNG, d ast.DiceRoll) int {
	sum := 0
	for i := uint32(0); i < d.Count; i++ {
		sum += rng.IntN(int(d.Sides)) + 1
	}
	return sum
}

func applyModifier(m ast.Modifier, s string) string {
	switch m {
	case ast.Uppercase:
		return strings.ToUpper(s)
	case ast.Lowercase:
		return strings.ToLower(s)
	case ast.Capitalize:
		return capitalize(s)
	case ast.Definite:
		return "the " + s
	case ast.Indefinite:
		return indefiniteArticle(s) + s
	default:
		return s
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func indefiniteArticle(s string) string {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if isVowel(r) {
			return "an "
		}
		return "a "
	}
	return "a "
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}
