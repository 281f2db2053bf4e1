package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestParseTable_PairedTab(t *testing.T) {
	raw := "번호\t1칸\t확률\t2칸\t확률\n" +
		"1\t10\t2.5%\t3\t-\n" +
		"2\t5\t0.1%\t7\t없음\n"

	tbl, err := ParseTable(raw, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"번호", "1칸", "1칸확률", "2칸", "2칸확률"}, tbl.Columns())
	assert.Equal(t, LayoutPaired, tbl.Layout())
	assert.Equal(t, DelimiterTab, tbl.Delimiter())
	assert.Equal(t, 2, tbl.SlotCount())
	require.Equal(t, 2, tbl.RowCount())

	rows := tbl.Rows()
	assert.Equal(t, Row{Number: 1, NumberOK: true, HasCounts: true, Counts: []int{10, 3}, Probabilities: []float64{2.5, 0}}, rows[0])
	assert.Equal(t, []float64{0.1, 0}, rows[1].Probabilities)

	p, ok := tbl.Probability(1, "1칸확률")
	require.True(t, ok)
	assert.Equal(t, 2.5, p)

	col, ok := tbl.SlotColumn(2)
	require.True(t, ok)
	assert.Equal(t, "2칸확률", col)
}

func TestParseTable_PairedWhitespace(t *testing.T) {
	raw := "번호  1칸 확률   2칸 확률\n1 10 2.5%  3 1.0%\n"

	tbl, err := ParseTable(raw, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, DelimiterSpace, tbl.Delimiter())
	assert.Equal(t, LayoutPaired, tbl.Layout())
	assert.Equal(t, []float64{2.5, 1.0}, tbl.Rows()[0].Probabilities)
}

func TestParseTable_PairedColumnCount(t *testing.T) {
	tbl := buildTable(t, uniform(1.0))

	assert.Len(t, tbl.Columns(), 1+2*ComboSize)
	for _, r := range tbl.Rows() {
		require.Len(t, r.Probabilities, ComboSize)
		for _, p := range r.Probabilities {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 100.0)
		}
	}
}

func TestParseTable_Compact(t *testing.T) {
	t.Run("with identity column", func(t *testing.T) {
		tbl, err := ParseTable("번호 1칸확률 2칸확률\n1 2.5% 1.0\n2 - 0.3%\n", DefaultParseOptions())
		require.NoError(t, err)

		assert.Equal(t, LayoutCompact, tbl.Layout())
		assert.Equal(t, []string{"번호", "1칸확률", "2칸확률"}, tbl.Columns())
		rows := tbl.Rows()
		assert.False(t, rows[0].HasCounts)
		assert.Equal(t, []float64{2.5, 1.0}, rows[0].Probabilities)
		assert.Equal(t, []float64{0, 0.3}, rows[1].Probabilities)
	})

	t.Run("without identity column", func(t *testing.T) {
		tbl, err := ParseTable("1칸확률\t2칸확률\n7\t3.5\t1.0\n", DefaultParseOptions())
		require.NoError(t, err)

		assert.Equal(t, []string{"번호", "1칸확률", "2칸확률"}, tbl.Columns())
		assert.Equal(t, DelimiterTab, tbl.Delimiter())
		p, ok := tbl.Probability(7, "1칸확률")
		require.True(t, ok)
		assert.Equal(t, 3.5, p)
	})
}

func TestParseTable_CustomIndicator(t *testing.T) {
	opts := ParseOptions{Indicator: "prob"}
	tbl, err := ParseTable("no 1st PROB 2nd Prob\n1 4 2.0 5 3.0\n", opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"no", "1st", "1stprob", "2nd", "2ndprob"}, tbl.Columns())
}

func TestParseTable_Normalisation(t *testing.T) {
	raw := "\ufeff" + norm.NFD.String("번호\t1칸\t확률") + "\r\n1\t１０\t２.５％\r\n"

	tbl, err := ParseTable(raw, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"번호", "1칸", "1칸확률"}, tbl.Columns())
	assert.Equal(t, Row{Number: 1, NumberOK: true, HasCounts: true, Counts: []int{10}, Probabilities: []float64{2.5}}, tbl.Rows()[0])
}

func TestParseTable_SentinelsNormaliseToZero(t *testing.T) {
	raw := "번호 1칸 확률\n1 0 -\n2 0 none\n3 0 NULL\n4 0 n/a\n5 0 없음\n"

	tbl, err := ParseTable(raw, DefaultParseOptions())
	require.NoError(t, err)

	for _, r := range tbl.Rows() {
		assert.Equal(t, 0.0, r.Probabilities[0], "number %d", r.Number)
	}
}

func TestParseTable_LenientRows(t *testing.T) {
	raw := "번호\t1칸\t확률\t2칸\t확률\n" +
		"x\t1\t3.0\t1\t3.0\n" +
		"\n" +
		"2\tabc\t1.5\n"

	tbl, err := ParseTable(raw, DefaultParseOptions())
	require.NoError(t, err)
	require.Equal(t, 2, tbl.RowCount(), "blank lines are skipped")

	rows := tbl.Rows()
	assert.False(t, rows[0].NumberOK)
	assert.Equal(t, []int{2}, tbl.Numbers())

	assert.Equal(t, []int{0, 0}, rows[1].Counts, "unparseable count counts as zero")
	assert.Equal(t, []float64{1.5, 0}, rows[1].Probabilities, "missing trailing cells are zero")
}

func TestParseTable_FormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantLine int
		wantCol  string
		wantMsg  string
	}{
		{
			name:    "empty input",
			raw:     "",
			wantMsg: "insufficient lines",
		},
		{
			name:    "header only",
			raw:     "번호\t1칸\t확률\n",
			wantMsg: "insufficient lines",
		},
		{
			name:     "misspelled indicator",
			raw:      "번호 1칸 확율 2칸 확률\n1 1 1 1 1\n",
			wantLine: 1,
			wantMsg:  "'1칸 확율'",
		},
		{
			name:     "indicator missing",
			raw:      "번호 1칸 2칸\n1 1 1\n",
			wantLine: 1,
			wantMsg:  "header does not match",
		},
		{
			name:     "invalid percentage",
			raw:      "번호 1칸 확률\n1 3 2.0\n2 3 abc\n",
			wantLine: 3,
			wantCol:  "1칸확률",
			wantMsg:  "invalid percentage",
		},
		{
			name:     "negative percentage",
			raw:      "번호 1칸 확률\n1 3 -2.0%\n",
			wantLine: 2,
			wantCol:  "1칸확률",
			wantMsg:  "negative probability",
		},
		{
			name:     "percentage above 100",
			raw:      "번호 1칸 확률\n1 3 150%\n",
			wantLine: 2,
			wantCol:  "1칸확률",
			wantMsg:  "probability out of range",
		},
		{
			name:     "not a number",
			raw:      "번호 1칸 확률\n1 3 NaN\n",
			wantLine: 2,
			wantMsg:  "invalid percentage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ParseTable(tt.raw, DefaultParseOptions())
			require.Error(t, err)
			assert.Nil(t, tbl)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantLine, fe.Line)
			if tt.wantCol != "" {
				assert.Equal(t, tt.wantCol, fe.Column)
			}
			assert.True(t, strings.Contains(fe.Error(), tt.wantMsg), "error %q should contain %q", fe.Error(), tt.wantMsg)
		})
	}
}

func TestParseTable_PercentBounds(t *testing.T) {
	tbl, err := ParseTable("번호 1칸 확률\n1 3 100%\n2 0 0%\n", DefaultParseOptions())
	require.NoError(t, err)

	p, ok := tbl.Probability(1, "1칸확률")
	require.True(t, ok)
	assert.Equal(t, 100.0, p)

	p, ok = tbl.Probability(2, "1칸확률")
	require.True(t, ok)
	assert.Equal(t, 0.0, p)
}

func TestParseTable_Idempotent(t *testing.T) {
	raw := buildTableText(func(n, slot int) float64 { return float64((n*slot)%7) / 2 })

	first, err := ParseTable(raw, DefaultParseOptions())
	require.NoError(t, err)
	second, err := ParseTable(raw, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Columns(), second.Columns())
	assert.Equal(t, first.Rows(), second.Rows())
}

func TestTable_SortedByAndNonZero(t *testing.T) {
	raw := "번호 1칸확률\n3 1.0\n1 2.0\n2 1.0\n4 0\n"
	tbl, err := ParseTable(raw, DefaultParseOptions())
	require.NoError(t, err)

	desc := tbl.SortedBy("1칸확률", false)
	assert.Equal(t, []NumberProb{{1, 2.0}, {2, 1.0}, {3, 1.0}, {4, 0}}, desc)

	asc := tbl.SortedBy("1칸확률", true)
	assert.Equal(t, []NumberProb{{4, 0}, {2, 1.0}, {3, 1.0}, {1, 2.0}}, asc)

	assert.Equal(t, []NumberProb{{3, 1.0}, {1, 2.0}, {2, 1.0}}, tbl.NonZero("1칸확률"))
	assert.Nil(t, tbl.SortedBy("missing", true))
}

func TestTable_NilSafe(t *testing.T) {
	var tbl *Table

	_, ok := tbl.SlotColumn(1)
	assert.False(t, ok)
	assert.False(t, tbl.HasColumn("1칸확률"))
	_, ok = tbl.Probability(1, "1칸확률")
	assert.False(t, ok)
	assert.Empty(t, tbl.Numbers())
}
