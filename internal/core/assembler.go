package core

// assembler.go builds one combination from per-slot band selections.
//
// Slots are visited in priority order (TOP, then BOTTOM, then RANDOM; ascending
// slot number inside a group) so that RANDOM slots fill in after the narrower
// bands have taken their numbers. Each visited slot draws one number uniformly
// from its eligible set minus the numbers already chosen. Probabilities act
// only as an inclusion filter, never as sampling weights.
//
// When the slots leave the combination short, the remainder is drawn without
// replacement from the unused part of 1..PoolSize.

import (
	"fmt"
	"strings"
)

// Order is the slot visiting order.
type Order string

const (
	// OrderGrouped visits slots grouped by policy priority.
	OrderGrouped Order = "grouped"
	// OrderSequential visits slots 1..N regardless of policy.
	OrderSequential Order = "sequential"
)

// ParseOrder converts a configuration value to an Order.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderGrouped:
		return OrderGrouped, nil
	case OrderSequential:
		return OrderSequential, nil
	default:
		return "", fmt.Errorf("unknown slot order %q (use %s or %s)", s, OrderGrouped, OrderSequential)
	}
}

// AssemblerOptions configures combination size and fill behaviour.
type AssemblerOptions struct {
	Size     int // numbers per combination, also the number of slots
	PoolSize int // random fill draws from 1..PoolSize
	Order    Order
}

// DefaultAssemblerOptions returns 6-of-45 with grouped ordering.
func DefaultAssemblerOptions() AssemblerOptions {
	return AssemblerOptions{Size: ComboSize, PoolSize: DefaultPoolSize, Order: OrderGrouped}
}

// Assembler builds combinations. It is not safe for concurrent use when its
// Rand is not; Service serializes access.
type Assembler struct {
	sel  Selector
	rng  Rand
	opts AssemblerOptions
}

// NewAssembler creates an Assembler. Zero option fields take their defaults.
func NewAssembler(sel Selector, rng Rand, opts AssemblerOptions) *Assembler {
	def := DefaultAssemblerOptions()
	if opts.Size <= 0 {
		opts.Size = def.Size
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = def.PoolSize
	}
	if opts.Order == "" {
		opts.Order = def.Order
	}
	return &Assembler{sel: sel, rng: rng, opts: opts}
}

// SlotOrder returns the slots in the order Assemble visits them.
// In grouped order, slots whose policy is not recognised are omitted.
func (a *Assembler) SlotOrder(policies SlotPolicies) []int {
	order := make([]int, 0, a.opts.Size)
	if a.opts.Order == OrderSequential {
		for slot := 1; slot <= a.opts.Size; slot++ {
			order = append(order, slot)
		}
		return order
	}
	for _, p := range Policies {
		for slot := 1; slot <= a.opts.Size; slot++ {
			if policies[slot] == p {
				order = append(order, slot)
			}
		}
	}
	return order
}

// Assemble builds one combination. It never returns duplicates and never
// more than Size numbers; empty bands and shortfalls are reported through
// Combination.Fill rather than as errors.
func (a *Assembler) Assemble(t *Table, policies SlotPolicies) Combination {
	size := a.opts.Size
	chosen := make(map[int]bool, size)
	c := Combination{
		Numbers: make([]int, 0, size),
		Fill:    FillNone,
	}

	for _, slot := range a.SlotOrder(policies) {
		if len(c.Numbers) >= size {
			break
		}
		p := policies[slot]
		column, ok := t.SlotColumn(slot)
		if !ok {
			continue
		}
		eligible := without(a.sel.Eligible(t, column, p), chosen)
		if len(eligible) == 0 {
			continue
		}
		n := eligible[a.rng.IntN(len(eligible))]
		chosen[n] = true
		c.Numbers = append(c.Numbers, n)
		if p == PolicyRandom {
			c.RandomPicks = append(c.RandomPicks, n)
		}
	}

	short := size - len(c.Numbers)
	if short <= 0 {
		return c
	}

	pool := without(poolNumbers(a.opts.PoolSize), chosen)
	if len(pool) < short {
		c.Fill = FillFailed
		return c
	}
	for i := 0; i < short; i++ {
		j := a.rng.IntN(len(pool))
		n := pool[j]
		pool = append(pool[:j], pool[j+1:]...)
		c.Numbers = append(c.Numbers, n)
		c.FillNumbers = append(c.FillNumbers, n)
	}
	c.Fill = FillPartialRandom
	return c
}

// without returns nums minus the excluded set, preserving order.
func without(nums []int, excluded map[int]bool) []int {
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if !excluded[n] {
			out = append(out, n)
		}
	}
	return out
}

func poolNumbers(size int) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
