package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Display labels shown to users.
const (
	LabelCombination = "조합"
	LabelRandomLine  = "랜덤값"
	SuffixPartial    = "랜덤 보충"
	SuffixFailed     = "보충 실패"
)

// FillSuffix returns the human-readable annotation for a fill status,
// or "" when nothing needs to be said.
func FillSuffix(f FillStatus) string {
	switch f {
	case FillPartialRandom:
		return SuffixPartial
	case FillFailed:
		return SuffixFailed
	default:
		return ""
	}
}

// FormatRecord renders one combination for display. index is 1-based.
func FormatRecord(index int, c Combination) Record {
	fill := c.Fill
	if fill == "" {
		fill = FillNone
	}
	rec := Record{
		Index:   index,
		Label:   fmt.Sprintf("%s %d", LabelCombination, index),
		Numbers: sortedCopy(c.Numbers),
		Suffix:  FillSuffix(fill),
		Fill:    string(fill),
	}
	if len(c.RandomPicks) > 0 {
		rec.RandomPicks = sortedCopy(c.RandomPicks)
		rec.RandomLine = LabelRandomLine + ": " + joinInts(rec.RandomPicks, ", ")
	}
	return rec
}

// FormatBatch renders combinations in order, inserting a separator after
// every SeparatorEvery records except after the last.
func FormatBatch(combos []Combination) []Entry {
	entries := make([]Entry, 0, len(combos)+len(combos)/SeparatorEvery)
	for i, c := range combos {
		rec := FormatRecord(i+1, c)
		entries = append(entries, Entry{Record: &rec})
		if (i+1)%SeparatorEvery == 0 && i+1 < len(combos) {
			entries = append(entries, Entry{Separator: true})
		}
	}
	return entries
}

// Text renders the record as plain text lines.
func (r Record) Text() string {
	var b strings.Builder
	b.WriteString(r.Label)
	b.WriteString(": ")
	b.WriteString(joinInts(r.Numbers, ", "))
	if r.Suffix != "" {
		b.WriteString(" (")
		b.WriteString(r.Suffix)
		b.WriteString(")")
	}
	if r.RandomLine != "" {
		b.WriteString("\n  ")
		b.WriteString(r.RandomLine)
	}
	return b.String()
}

func sortedCopy(nums []int) []int {
	out := append([]int(nil), nums...)
	sort.Ints(out)
	return out
}

func joinInts(nums []int, sep string) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
