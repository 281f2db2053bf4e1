package core

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildTableText renders a paired, tab-delimited table for numbers 1..45
// and six slots with percentages from prob.
func buildTableText(prob func(n, slot int) float64) string {
	var b strings.Builder
	b.WriteString("번호")
	for s := 1; s <= ComboSize; s++ {
		fmt.Fprintf(&b, "\t%d칸\t확률", s)
	}
	b.WriteString("\n")
	for n := 1; n <= DefaultPoolSize; n++ {
		fmt.Fprintf(&b, "%d", n)
		for s := 1; s <= ComboSize; s++ {
			fmt.Fprintf(&b, "\t%d\t%.2f%%", n+s, prob(n, s))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func buildTable(t *testing.T, prob func(n, slot int) float64) *Table {
	t.Helper()
	tbl, err := ParseTable(buildTableText(prob), DefaultParseOptions())
	require.NoError(t, err)
	return tbl
}

func uniform(p float64) func(n, slot int) float64 {
	return func(int, int) float64 { return p }
}

// scriptedRand returns seq values in order (modulo n), then zeros.
// It records every bound it was asked for.
type scriptedRand struct {
	seq    []int
	i      int
	bounds []int
}

func (r *scriptedRand) IntN(n int) int {
	r.bounds = append(r.bounds, n)
	if r.i >= len(r.seq) {
		return 0
	}
	v := r.seq[r.i] % n
	r.i++
	return v
}

// textSource is an in-memory TextSource.
type textSource struct {
	name string
	text string
	err  error
}

func (s *textSource) ReadText(context.Context) (string, error) {
	return s.text, s.err
}

func (s *textSource) Name() string {
	if s.name == "" {
		return "memory"
	}
	return s.name
}

func allPolicies(p Policy) SlotPolicies {
	sp := make(SlotPolicies, ComboSize)
	for s := 1; s <= ComboSize; s++ {
		sp[s] = p
	}
	return sp
}
