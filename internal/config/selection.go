package config

// selection.go loads band thresholds and named slot presets from YAML.
//
//	mode: threshold
//	threshold:
//	  top: 2.0
//	  top_direction: above
//	  bottom_min: 0.2
//	  bottom_max: 2.5
//	rank:
//	  top_k: 5
//	  bottom_k: 8
//	default_preset: balanced
//	presets:
//	  balanced: [top, bottom, random, random, random, random]
//
// A missing file yields the defaults; fields absent from the file keep them.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/JonMunkholm/lotto/internal/core"
	"gopkg.in/yaml.v3"
)

// Selection is the contents of the selection file.
type Selection struct {
	Mode          string              `yaml:"mode"`
	Threshold     ThresholdBands      `yaml:"threshold"`
	Rank          RankBands           `yaml:"rank"`
	DefaultPreset string              `yaml:"default_preset"`
	Presets       map[string][]string `yaml:"presets"`
}

// ThresholdBands configures the threshold selection mode.
type ThresholdBands struct {
	Top          float64 `yaml:"top"`
	TopDirection string  `yaml:"top_direction"`
	BottomMin    float64 `yaml:"bottom_min"`
	BottomMax    float64 `yaml:"bottom_max"`
}

// RankBands configures the rank selection mode.
type RankBands struct {
	TopK    int `yaml:"top_k"`
	BottomK int `yaml:"bottom_k"`
}

// DefaultSelection returns the built-in bands and presets.
func DefaultSelection() *Selection {
	band := core.DefaultBandConfig()
	return &Selection{
		Mode: band.Mode,
		Threshold: ThresholdBands{
			Top:          band.TopThreshold,
			TopDirection: string(band.TopDirection),
			BottomMin:    band.BottomMin,
			BottomMax:    band.BottomMax,
		},
		Rank: RankBands{
			TopK:    band.TopK,
			BottomK: band.BottomK,
		},
		DefaultPreset: "balanced",
		Presets: map[string][]string{
			"balanced":   {"top", "bottom", "random", "random", "random", "random"},
			"all-random": {"random", "random", "random", "random", "random", "random"},
			"hot":        {"top", "top", "top", "random", "random", "random"},
			"cold":       {"bottom", "bottom", "bottom", "random", "random", "random"},
		},
	}
}

// LoadSelection reads and validates the selection file at path.
func LoadSelection(path string) (*Selection, error) {
	sel := DefaultSelection()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sel, nil
		}
		return nil, fmt.Errorf("failed to read selection file: %w", err)
	}

	var file Selection
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse selection file: %w", err)
	}
	sel.merge(file)

	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("selection file %s: %w", path, err)
	}
	return sel, nil
}

// merge overlays the non-zero fields of other.
// A presets map in the file replaces the built-in presets entirely.
func (s *Selection) merge(other Selection) {
	if other.Mode != "" {
		s.Mode = other.Mode
	}
	if other.Threshold.Top != 0 {
		s.Threshold.Top = other.Threshold.Top
	}
	if other.Threshold.TopDirection != "" {
		s.Threshold.TopDirection = other.Threshold.TopDirection
	}
	if other.Threshold.BottomMin != 0 {
		s.Threshold.BottomMin = other.Threshold.BottomMin
	}
	if other.Threshold.BottomMax != 0 {
		s.Threshold.BottomMax = other.Threshold.BottomMax
	}
	if other.Rank.TopK != 0 {
		s.Rank.TopK = other.Rank.TopK
	}
	if other.Rank.BottomK != 0 {
		s.Rank.BottomK = other.Rank.BottomK
	}
	if other.Presets != nil {
		s.Presets = other.Presets
		if other.DefaultPreset == "" {
			s.DefaultPreset = ""
		}
	}
	if other.DefaultPreset != "" {
		s.DefaultPreset = other.DefaultPreset
	}
}

// Validate checks bands and presets, collecting every problem.
func (s *Selection) Validate() error {
	var errs []string

	if _, ok := core.LookupMode(s.Mode); !ok {
		errs = append(errs, fmt.Sprintf("mode %q must be one of: %s", s.Mode, strings.Join(core.Modes(), ", ")))
	}
	switch core.Direction(strings.ToLower(s.Threshold.TopDirection)) {
	case core.DirectionAbove, core.DirectionBelow:
	default:
		errs = append(errs, fmt.Sprintf("threshold.top_direction %q must be above or below", s.Threshold.TopDirection))
	}
	if s.Threshold.Top < 0 {
		errs = append(errs, "threshold.top must be non-negative")
	}
	if s.Threshold.BottomMin < 0 {
		errs = append(errs, "threshold.bottom_min must be non-negative")
	}
	if s.Threshold.BottomMin > s.Threshold.BottomMax {
		errs = append(errs, fmt.Sprintf("threshold.bottom_min (%g) must be <= threshold.bottom_max (%g)",
			s.Threshold.BottomMin, s.Threshold.BottomMax))
	}
	if s.Rank.TopK <= 0 {
		errs = append(errs, "rank.top_k must be positive")
	}
	if s.Rank.BottomK <= 0 {
		errs = append(errs, "rank.bottom_k must be positive")
	}

	for _, name := range s.PresetNames() {
		if _, err := core.ParsePolicies(s.Presets[name]); err != nil {
			errs = append(errs, fmt.Sprintf("preset %q: %v", name, err))
		}
	}
	if s.DefaultPreset != "" {
		if _, ok := s.Presets[s.DefaultPreset]; !ok {
			errs = append(errs, fmt.Sprintf("default_preset %q is not defined", s.DefaultPreset))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// BandConfig converts the file's bands to core configuration.
func (s *Selection) BandConfig() core.BandConfig {
	return core.BandConfig{
		Mode:         strings.ToLower(s.Mode),
		TopThreshold: s.Threshold.Top,
		TopDirection: core.Direction(strings.ToLower(s.Threshold.TopDirection)),
		BottomMin:    s.Threshold.BottomMin,
		BottomMax:    s.Threshold.BottomMax,
		TopK:         s.Rank.TopK,
		BottomK:      s.Rank.BottomK,
	}
}

// PresetNames returns the preset names, sorted.
func (s *Selection) PresetNames() []string {
	names := make([]string, 0, len(s.Presets))
	for name := range s.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SlotPresets converts presets to core slot policies.
func (s *Selection) SlotPresets() (map[string]core.SlotPolicies, error) {
	out := make(map[string]core.SlotPolicies, len(s.Presets))
	for name, tokens := range s.Presets {
		sp, err := core.ParsePolicies(tokens)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		out[name] = sp
	}
	return out, nil
}
