package core

import (
	"sort"
)

// Selector returns the numbers eligible for a slot column under a policy.
//
// Implementations are pure filters: no randomness, no errors. A nil table,
// an unknown column, or an unknown policy all yield an empty result.
// The returned numbers are unique and sorted ascending.
type Selector interface {
	Eligible(t *Table, column string, p Policy) []int
}

const (
	ModeThreshold = "threshold"
	ModeRank      = "rank"
)

// Direction is the comparison used by the TOP threshold.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// BandConfig holds the numeric boundaries of the selection bands.
type BandConfig struct {
	Mode         string
	TopThreshold float64   // threshold mode: TOP compares against this value
	TopDirection Direction // threshold mode: above (p > t) or below (p < t)
	BottomMin    float64   // threshold mode: BOTTOM lower bound, inclusive
	BottomMax    float64   // threshold mode: BOTTOM upper bound, inclusive
	TopK         int       // rank mode: how many of the most probable numbers
	BottomK      int       // rank mode: how many of the least probable numbers
}

// DefaultBandConfig returns the threshold bands used by the current data format.
func DefaultBandConfig() BandConfig {
	return BandConfig{
		Mode:         ModeThreshold,
		TopThreshold: 2.0,
		TopDirection: DirectionAbove,
		BottomMin:    0.2,
		BottomMax:    2.5,
		TopK:         5,
		BottomK:      8,
	}
}

// collect returns the sorted, de-duplicated numbers whose value satisfies keep.
func collect(vals []NumberProb, keep func(float64) bool) []int {
	seen := make(map[int]bool, len(vals))
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		if !keep(v.Probability) || seen[v.Number] {
			continue
		}
		seen[v.Number] = true
		out = append(out, v.Number)
	}
	sort.Ints(out)
	return out
}

// firstK returns up to k distinct numbers from an ordered list, sorted ascending.
func firstK(vals []NumberProb, k int) []int {
	seen := make(map[int]bool, k)
	out := make([]int, 0, k)
	for _, v := range vals {
		if len(out) >= k {
			break
		}
		if seen[v.Number] {
			continue
		}
		seen[v.Number] = true
		out = append(out, v.Number)
	}
	sort.Ints(out)
	return out
}

func positive(p float64) bool { return p > 0 }
