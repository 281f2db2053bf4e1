package core

const (
	// ComboSize is the number of distinct numbers in one combination.
	ComboSize = 6

	// DefaultPoolSize is the highest lotto number drawn by random fill.
	DefaultPoolSize = 45

	// MinCombinations and MaxCombinations bound a single generation request.
	MinCombinations = 1
	MaxCombinations = 20

	// SeparatorEvery is how many records are shown between visual separators.
	SeparatorEvery = 5

	// MaxProbability is the upper bound of a percentage cell.
	MaxProbability = 100.0
)

// FillStatus reports how an under-filled combination was completed.
type FillStatus string

const (
	FillNone          FillStatus = "none"
	FillPartialRandom FillStatus = "partial_random_fill"
	FillFailed        FillStatus = "failed_fill"
)

// Layout is the header shape detected by the parser.
type Layout string

const (
	// LayoutPaired headers carry "label indicator" pairs, rows carry count + percent.
	LayoutPaired Layout = "paired"
	// LayoutCompact headers carry one "label+indicator" token per slot, rows carry percent only.
	LayoutCompact Layout = "compact"
)

// Delimiter is the cell separator family used by a table source.
type Delimiter string

const (
	DelimiterTab   Delimiter = "tab"
	DelimiterSpace Delimiter = "whitespace"
)

// Row is one lottery number's statistics across all slots.
type Row struct {
	Number        int       `json:"number"`
	NumberOK      bool      `json:"number_ok"`  // false when the number cell did not parse as an integer
	HasCounts     bool      `json:"has_counts"` // false for compact tables
	Counts        []int     `json:"counts"`
	Probabilities []float64 `json:"probabilities"` // per-slot percentages on a 0-100 scale
}

// Combination is the result of assembling one set of numbers.
type Combination struct {
	Numbers     []int // in selection order; fill numbers last
	RandomPicks []int // numbers chosen by RANDOM slots, in selection order
	FillNumbers []int // numbers added by random fill
	Fill        FillStatus
}

// Record is a display-ready rendering of one combination.
type Record struct {
	Index       int    `json:"index"`
	Label       string `json:"label"`
	Numbers     []int  `json:"numbers"`
	Suffix      string `json:"suffix,omitempty"`
	RandomPicks []int  `json:"random_picks,omitempty"`
	RandomLine  string `json:"random_line,omitempty"`
	Fill        string `json:"fill"`
}

// Entry is an element of a formatted batch: a record or a separator.
type Entry struct {
	Separator bool    `json:"separator,omitempty"`
	Record    *Record `json:"record,omitempty"`
}
