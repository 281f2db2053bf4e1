package core

func init() {
	RegisterMode(ModeThreshold, func(cfg BandConfig) Selector { return thresholdSelector{cfg: cfg} })
	RegisterMode(ModeRank, func(cfg BandConfig) Selector { return rankSelector{cfg: cfg} })
}

// thresholdSelector filters the whole column by fixed percentage bands.
type thresholdSelector struct {
	cfg BandConfig
}

func (s thresholdSelector) Eligible(t *Table, column string, p Policy) []int {
	if !t.HasColumn(column) {
		return nil
	}
	vals := t.columnValues(column)

	switch p {
	case PolicyTop:
		limit := s.cfg.TopThreshold
		if s.cfg.TopDirection == DirectionBelow {
			return collect(vals, func(v float64) bool { return v < limit })
		}
		return collect(vals, func(v float64) bool { return v > limit })
	case PolicyBottom:
		lo, hi := s.cfg.BottomMin, s.cfg.BottomMax
		return collect(vals, func(v float64) bool { return v >= lo && v <= hi })
	case PolicyRandom:
		return collect(vals, positive)
	default:
		return nil
	}
}

// rankSelector takes a fixed number of the most or least probable
// non-zero numbers instead of filtering by value.
type rankSelector struct {
	cfg BandConfig
}

func (s rankSelector) Eligible(t *Table, column string, p Policy) []int {
	if !t.HasColumn(column) {
		return nil
	}

	switch p {
	case PolicyTop:
		return firstK(nonZero(t.SortedBy(column, false)), s.cfg.TopK)
	case PolicyBottom:
		return firstK(nonZero(t.SortedBy(column, true)), s.cfg.BottomK)
	case PolicyRandom:
		return collect(t.columnValues(column), positive)
	default:
		return nil
	}
}

func nonZero(vals []NumberProb) []NumberProb {
	out := vals[:0]
	for _, v := range vals {
		if v.Probability > 0 {
			out = append(out, v)
		}
	}
	return out
}
