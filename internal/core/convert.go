package core

// convert.go provides cell clean-up for probability table text.
//
// Table files come from spreadsheets and copy-paste, so cells carry artifacts:
//   - a UTF-8 BOM on the first line
//   - decomposed Hangul (NFD) from macOS clipboards
//   - full-width digits and percent signs from Korean IMEs
//   - "missing" sentinels such as "-" or "없음" in place of 0.00%

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// DefaultIndicator is the header token that marks a probability column.
const DefaultIndicator = "확률"

// DefaultSentinels are cell values treated as a 0.00% probability.
var DefaultSentinels = []string{"-", "none", "null", "n/a", "없음"}

// NormalizeText prepares raw table text for tokenizing: BOM removed,
// Unicode composed to NFC, and full-width forms folded to ASCII.
func NormalizeText(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = norm.NFC.String(s)
	return width.Fold.String(s)
}

// CleanPercent strips a trailing percent marker and maps missing-value
// sentinels to "0.00". The result is ready for strconv.ParseFloat.
func CleanPercent(s string, sentinels []string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	for _, sentinel := range sentinels {
		if strings.EqualFold(s, sentinel) {
			return "0.00"
		}
	}
	return s
}

// ParsePercent converts a percentage cell to a float on the 0-100 scale.
func ParsePercent(s string, sentinels []string) (float64, error) {
	return strconv.ParseFloat(CleanPercent(s, sentinels), 64)
}

// parseCountCell converts an occurrence count cell. Sentinels and thousands
// separators are accepted; anything else unparseable counts as zero.
func parseCountCell(s string, sentinels []string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	for _, sentinel := range sentinels {
		if strings.EqualFold(s, sentinel) {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
