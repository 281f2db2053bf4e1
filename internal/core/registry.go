package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// SelectorFactory builds a Selector for one selection mode.
type SelectorFactory func(cfg BandConfig) Selector

var (
	registry   = make(map[string]SelectorFactory)
	registryMu sync.RWMutex
)

// RegisterMode adds a selection mode to the registry.
// Panics if a mode with the same name is already registered.
func RegisterMode(name string, factory SelectorFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	key := strings.ToLower(name)
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("selection mode already registered: %s", name))
	}
	registry[key] = factory
}

// LookupMode returns the factory for a mode name.
// Returns false if not found.
func LookupMode(name string) (SelectorFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Modes returns all registered mode names, sorted alphabetically.
func Modes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSelector builds the Selector named by cfg.Mode.
func NewSelector(cfg BandConfig) (Selector, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeThreshold
	}
	factory, ok := LookupMode(cfg.Mode)
	if !ok {
		return nil, fmt.Errorf("unknown selection mode %q (known: %s)", cfg.Mode, strings.Join(Modes(), ", "))
	}
	return factory(cfg), nil
}
