package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bandProbs gives slot 1 a spread of boundary values and every other cell 1.0.
func bandProbs(n, slot int) float64 {
	if slot != 1 {
		return 1.0
	}
	switch n {
	case 1:
		return 3.5
	case 2:
		return 2.0
	case 3:
		return 2.5
	case 4:
		return 0.2
	case 5:
		return 0.1
	case 6:
		return 0
	case 7:
		return 2.51
	default:
		return 1.0
	}
}

func rangeInts(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, n)
	}
	return out
}

func TestThresholdSelector(t *testing.T) {
	tbl := buildTable(t, bandProbs)
	sel, err := NewSelector(DefaultBandConfig())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 7}, sel.Eligible(tbl, "1칸확률", PolicyTop))
	assert.Equal(t, append([]int{2, 3, 4}, rangeInts(8, 45)...), sel.Eligible(tbl, "1칸확률", PolicyBottom))

	random := sel.Eligible(tbl, "1칸확률", PolicyRandom)
	assert.Len(t, random, 44)
	assert.NotContains(t, random, 6)
}

func TestThresholdSelector_BelowDirection(t *testing.T) {
	tbl := buildTable(t, bandProbs)
	cfg := DefaultBandConfig()
	cfg.TopDirection = DirectionBelow
	sel, err := NewSelector(cfg)
	require.NoError(t, err)

	top := sel.Eligible(tbl, "1칸확률", PolicyTop)
	assert.NotContains(t, top, 1)
	assert.NotContains(t, top, 2, "2.0 is not strictly below 2.0")
	assert.Contains(t, top, 5)
}

func TestSelector_SoftFailures(t *testing.T) {
	tbl := buildTable(t, bandProbs)

	for _, mode := range []string{ModeThreshold, ModeRank} {
		t.Run(mode, func(t *testing.T) {
			cfg := DefaultBandConfig()
			cfg.Mode = mode
			sel, err := NewSelector(cfg)
			require.NoError(t, err)

			assert.Empty(t, sel.Eligible(nil, "1칸확률", PolicyTop))
			assert.Empty(t, sel.Eligible(tbl, "7칸확률", PolicyTop))
			assert.Empty(t, sel.Eligible(tbl, "1칸확률", Policy("middle")))
		})
	}
}

func TestSelector_ExcludesUnparsedNumbers(t *testing.T) {
	tbl, err := ParseTable("번호 1칸확률\nx 9.0\n3 9.0\n", DefaultParseOptions())
	require.NoError(t, err)
	sel, err := NewSelector(DefaultBandConfig())
	require.NoError(t, err)

	assert.Equal(t, []int{3}, sel.Eligible(tbl, "1칸확률", PolicyTop))
}

func TestThresholdSelector_BandProperties(t *testing.T) {
	tbl := buildTable(t, func(n, slot int) float64 { return float64((n*7+slot*3)%40) / 10 })
	sel, err := NewSelector(DefaultBandConfig())
	require.NoError(t, err)

	for slot := 1; slot <= ComboSize; slot++ {
		col, ok := tbl.SlotColumn(slot)
		require.True(t, ok)

		for _, n := range sel.Eligible(tbl, col, PolicyTop) {
			p, _ := tbl.Probability(n, col)
			assert.Greater(t, p, 2.0, "TOP slot %d number %d", slot, n)
		}
		for _, n := range sel.Eligible(tbl, col, PolicyBottom) {
			p, _ := tbl.Probability(n, col)
			assert.GreaterOrEqual(t, p, 0.2, "BOTTOM slot %d number %d", slot, n)
			assert.LessOrEqual(t, p, 2.5, "BOTTOM slot %d number %d", slot, n)
		}
		for _, n := range sel.Eligible(tbl, col, PolicyRandom) {
			p, _ := tbl.Probability(n, col)
			assert.Greater(t, p, 0.0, "RANDOM slot %d number %d", slot, n)
		}
	}
}

func TestRankSelector(t *testing.T) {
	cfg := DefaultBandConfig()
	cfg.Mode = ModeRank
	sel, err := NewSelector(cfg)
	require.NoError(t, err)

	t.Run("takes the most and least probable non-zero numbers", func(t *testing.T) {
		tbl := buildTable(t, func(n, _ int) float64 {
			if n > 40 {
				return 0
			}
			return float64(n) / 10
		})

		assert.Equal(t, []int{36, 37, 38, 39, 40}, sel.Eligible(tbl, "1칸확률", PolicyTop))
		assert.Equal(t, rangeInts(1, 8), sel.Eligible(tbl, "1칸확률", PolicyBottom))
		assert.Equal(t, rangeInts(1, 40), sel.Eligible(tbl, "1칸확률", PolicyRandom))
	})

	t.Run("ties break by ascending number", func(t *testing.T) {
		tbl := buildTable(t, uniform(1.0))

		assert.Equal(t, rangeInts(1, 5), sel.Eligible(tbl, "3칸확률", PolicyTop))
		assert.Equal(t, rangeInts(1, 8), sel.Eligible(tbl, "3칸확률", PolicyBottom))
	})
}

func TestModeRegistry(t *testing.T) {
	assert.Contains(t, Modes(), ModeThreshold)
	assert.Contains(t, Modes(), ModeRank)

	_, ok := LookupMode(" RANK ")
	assert.True(t, ok)

	_, err := NewSelector(BandConfig{Mode: "weighted"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")

	assert.Panics(t, func() {
		RegisterMode(ModeThreshold, func(BandConfig) Selector { return nil })
	})
}
