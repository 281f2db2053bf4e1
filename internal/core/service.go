package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/lotto/internal/logging"
	"github.com/google/uuid"
)

// ServiceOptions configures a Service. Zero values take defaults.
type ServiceOptions struct {
	Band      BandConfig
	Assembler AssemblerOptions
	Rand      Rand                    // nil means a time-seeded PCG
	Presets   map[string]SlotPolicies // named slot layouts
	// DefaultPreset preselects a layout in the UI. Empty or unknown names
	// fall back to the first preset in sorted order.
	DefaultPreset string
}

// Service provides the generation use case on top of a TableStore.
type Service struct {
	store   *TableStore
	source  TextSource
	sel     Selector
	mode    string
	presets map[string]SlotPolicies
	defPre  string

	// Assembler draws share one Rand, which is not safe for concurrent use.
	mu  sync.Mutex
	asm *Assembler
}

// GenerateRequest asks for Count combinations using the given slot policies.
type GenerateRequest struct {
	Count    int
	Policies SlotPolicies
}

// GenerateResult is one generated batch.
type GenerateResult struct {
	BatchID      string        `json:"batch_id"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Source       string        `json:"source"`
	Slots        []string      `json:"slots"`
	Combinations []Combination `json:"-"`
	Records      []Record      `json:"records"`
	Entries      []Entry       `json:"entries"`
}

// NewService creates a Service. src is used by Reload and may be nil when
// the caller loads the store itself.
func NewService(store *TableStore, src TextSource, opts ServiceOptions) (*Service, error) {
	band := opts.Band
	if band == (BandConfig{}) {
		band = DefaultBandConfig()
	}
	if band.Mode == "" {
		band.Mode = ModeThreshold
	}
	sel, err := NewSelector(band)
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng, err = NewRand(RandomSourcePCG, 0)
		if err != nil {
			return nil, err
		}
	}

	presets := make(map[string]SlotPolicies, len(opts.Presets))
	for name, sp := range opts.Presets {
		presets[name] = sp
	}

	svc := &Service{
		store:   store,
		source:  src,
		sel:     sel,
		mode:    band.Mode,
		presets: presets,
		asm:     NewAssembler(sel, rng, opts.Assembler),
	}
	if _, ok := presets[opts.DefaultPreset]; ok {
		svc.defPre = opts.DefaultPreset
	} else if names := svc.Presets(); len(names) > 0 {
		svc.defPre = names[0]
	}
	return svc, nil
}

// Status returns the table store snapshot.
func (s *Service) Status() StoreStatus {
	return s.store.Status()
}

// Table returns the loaded table or an error wrapping ErrNotLoaded.
func (s *Service) Table() (*Table, error) {
	return s.store.Table()
}

// Reload reads the configured source into the store again.
func (s *Service) Reload(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("reload: no table source configured")
	}
	return s.store.Load(ctx, s.source)
}

// Presets returns the preset names, sorted.
func (s *Service) Presets() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPreset returns the preset shown first, or "" when none exist.
func (s *Service) DefaultPreset() string {
	return s.defPre
}

// Mode returns the selection mode in use.
func (s *Service) Mode() string {
	return s.mode
}

// Preset returns the slot policies stored under name.
func (s *Service) Preset(name string) (SlotPolicies, error) {
	sp, ok := s.presets[name]
	if !ok {
		return nil, ValidationError{Field: FieldPreset, Value: name, Message: "unknown preset"}
	}
	return sp, nil
}

// Eligible returns the numbers a slot may draw under a policy with the
// current table, for display.
func (s *Service) Eligible(slot int, p Policy) ([]int, error) {
	t, err := s.store.Table()
	if err != nil {
		return nil, err
	}
	column, ok := t.SlotColumn(slot)
	if !ok {
		return nil, nil
	}
	return s.sel.Eligible(t, column, p), nil
}

// Generate validates the request and assembles a batch synchronously.
// Invalid requests and an unloaded table are rejected before any draw.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if err := ValidateCount(req.Count); err != nil {
		return nil, err
	}
	if len(req.Policies) != ComboSize {
		return nil, ValidationError{
			Field:   FieldSlots,
			Message: fmt.Sprintf("expected %d slot policies, got %d", ComboSize, len(req.Policies)),
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	t, err := s.store.Table()
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	start := time.Now()
	combos := make([]Combination, req.Count)
	s.mu.Lock()
	for i := range combos {
		combos[i] = s.asm.Assemble(t, req.Policies)
	}
	s.mu.Unlock()

	entries := FormatBatch(combos)
	records := make([]Record, 0, len(combos))
	for _, e := range entries {
		if e.Record != nil {
			records = append(records, *e.Record)
		}
	}

	result := &GenerateResult{
		BatchID:      uuid.New().String(),
		GeneratedAt:  time.Now(),
		Source:       s.store.Status().Source,
		Slots:        req.Policies.Strings(ComboSize),
		Combinations: combos,
		Records:      records,
		Entries:      entries,
	}

	var partial, failed int
	for _, c := range combos {
		switch c.Fill {
		case FillPartialRandom:
			partial++
		case FillFailed:
			failed++
		}
	}

	logger := logging.WithFields(ctx,
		"batch_id", result.BatchID,
		"client_ip", GetIPAddressFromContext(ctx),
		"user_agent", GetUserAgentFromContext(ctx),
	)
	logger.Info("combinations generated",
		"count", req.Count,
		"slots", result.Slots,
		"partial_fill", partial,
		"failed_fill", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if failed > 0 {
		logger.Warn("random fill pool exhausted", "failed_fill", failed)
	}

	return result, nil
}
