package core

// parser.go turns raw probability table text into a Table.
//
// The source format changed over time, so several header shapes are accepted:
//
//	번호	1칸	확률	2칸	확률 ...      paired, tab-delimited
//	번호 1칸 확률 2칸 확률 ...          paired, whitespace-delimited
//	번호 1칸확률 2칸확률 ...             compact, one token per probability column
//
// Paired rows carry "count percent" per slot; compact rows carry the percent only.
// The header shape is detected first and then fixes how every data row is split.

import (
	"math"
	"strconv"
	"strings"
)

// defaultIdentity names the number column when a compact header omits it.
const defaultIdentity = "번호"

// ParseOptions controls header matching and cell clean-up.
type ParseOptions struct {
	Indicator string   // header token marking a probability column (default "확률")
	Sentinels []string // cell values treated as 0.00%
}

// DefaultParseOptions returns the options used by the data files in production.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Indicator: DefaultIndicator,
		Sentinels: append([]string(nil), DefaultSentinels...),
	}
}

// header is the result of header detection.
type header struct {
	layout   Layout
	delim    Delimiter
	identity string
	labels   []string // base labels for paired layout, full column names for compact
}

// ParseTable parses raw table text. It returns a *FormatError when the input
// has fewer than two lines, the header matches no known shape, or a
// percentage cell is not a non-negative number.
//
// Parsing is deterministic: the same input always yields an identical table.
func ParseTable(raw string, opts ParseOptions) (*Table, error) {
	if opts.Indicator == "" {
		opts.Indicator = DefaultIndicator
	}
	if opts.Sentinels == nil {
		opts.Sentinels = DefaultSentinels
	}

	text := strings.TrimSpace(NormalizeText(raw))
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	if text == "" || len(lines) < 2 {
		return nil, formatErrorf(0, "", "insufficient lines: need a header and at least one data row")
	}

	h, err := detectHeader(lines[0], opts.Indicator)
	if err != nil {
		return nil, err
	}

	columns := []string{h.identity}
	slotLabels := make([]string, len(h.labels))
	for i, label := range h.labels {
		switch h.layout {
		case LayoutPaired:
			slotLabels[i] = label + opts.Indicator
			columns = append(columns, label, slotLabels[i])
		default:
			slotLabels[i] = label
			columns = append(columns, label)
		}
	}

	rows := make([]Row, 0, len(lines)-1)
	for i, line := range lines[1:] {
		cells := splitCells(line, h.delim)
		if len(cells) == 0 {
			continue
		}
		row, err := parseRow(cells, i+2, h.layout, slotLabels, opts.Sentinels)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return newTable(columns, slotLabels, rows, h.layout, h.delim), nil
}

// detectHeader inspects the header line and commits to a layout and delimiter.
// Paired shapes are tried before compact, tab before whitespace.
func detectHeader(line, indicator string) (header, error) {
	delims := []Delimiter{DelimiterSpace}
	if strings.Contains(line, "\t") {
		delims = []Delimiter{DelimiterTab, DelimiterSpace}
	}

	var offending string
	for _, d := range delims {
		tokens := splitCells(line, d)
		labels, bad, ok := pairedLabels(tokens, indicator)
		if ok {
			return header{layout: LayoutPaired, delim: d, identity: tokens[0], labels: labels}, nil
		}
		if offending == "" {
			offending = bad
		}
	}

	for _, d := range delims {
		tokens := splitCells(line, d)
		if identity, labels, ok := compactLabels(tokens, indicator); ok {
			return header{layout: LayoutCompact, delim: d, identity: identity, labels: labels}, nil
		}
	}

	return header{}, formatErrorf(1, "",
		"header does not match the 'X %s' pattern: offending part '%s'", indicator, offending)
}

// pairedLabels checks the "identity (label indicator)+" shape.
// On mismatch it returns the first offending pair for the error message.
func pairedLabels(tokens []string, indicator string) ([]string, string, bool) {
	if len(tokens) < 3 {
		return nil, strings.Join(tokens, " "), false
	}
	rest := tokens[1:]
	labels := make([]string, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		if i+1 >= len(rest) {
			return nil, rest[i], false
		}
		if !strings.EqualFold(rest[i+1], indicator) {
			return nil, rest[i] + " " + rest[i+1], false
		}
		labels = append(labels, rest[i])
	}
	return labels, "", true
}

// compactLabels checks the "[identity] label+indicator ..." shape.
func compactLabels(tokens []string, indicator string) (string, []string, bool) {
	if len(tokens) == 0 {
		return "", nil, false
	}
	identity := defaultIdentity
	slots := tokens
	if !hasIndicatorSuffix(tokens[0], indicator) {
		identity = tokens[0]
		slots = tokens[1:]
	}
	if len(slots) == 0 {
		return "", nil, false
	}
	for _, tok := range slots {
		if !hasIndicatorSuffix(tok, indicator) {
			return "", nil, false
		}
	}
	return identity, append([]string(nil), slots...), true
}

// hasIndicatorSuffix reports whether tok is "<label><indicator>" with a non-empty label.
func hasIndicatorSuffix(tok, indicator string) bool {
	if len(tok) <= len(indicator) {
		return false
	}
	return strings.EqualFold(tok[len(tok)-len(indicator):], indicator)
}

// splitCells splits a line by delimiter family and drops empty cells.
func splitCells(line string, d Delimiter) []string {
	if d != DelimiterTab {
		return strings.Fields(line)
	}
	parts := strings.Split(line, "\t")
	cells := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

// parseRow builds one Row. Cells missing at the end of a short row stay zero.
func parseRow(cells []string, lineNo int, layout Layout, slotLabels, sentinels []string) (Row, error) {
	k := len(slotLabels)
	row := Row{
		HasCounts:     layout == LayoutPaired,
		Counts:        make([]int, k),
		Probabilities: make([]float64, k),
	}

	n, err := strconv.Atoi(cells[0])
	row.Number = n
	row.NumberOK = err == nil

	rest := cells[1:]
	for s := 0; s < k; s++ {
		pi := s
		if layout == LayoutPaired {
			ci := 2 * s
			pi = ci + 1
			if ci < len(rest) {
				row.Counts[s] = parseCountCell(rest[ci], sentinels)
			}
		}
		if pi >= len(rest) {
			continue
		}
		p, err := ParsePercent(rest[pi], sentinels)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
			return Row{}, formatErrorf(lineNo, slotLabels[s], "invalid percentage %q", rest[pi])
		}
		if p < 0 {
			return Row{}, formatErrorf(lineNo, slotLabels[s], "negative probability %q", rest[pi])
		}
		if p > MaxProbability {
			return Row{}, formatErrorf(lineNo, slotLabels[s], "probability out of range %q", rest[pi])
		}
		row.Probabilities[s] = p
	}
	return row, nil
}
