package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TextSource supplies raw table text. Implementations live in internal/source.
type TextSource interface {
	ReadText(ctx context.Context) (string, error)
	Name() string
}

// State is the load state of a TableStore.
type State string

const (
	StateEmpty  State = "empty"
	StateLoaded State = "loaded"
	StateFailed State = "failed"
)

// StoreStatus is a point-in-time snapshot of a TableStore.
type StoreStatus struct {
	State    State     `json:"state"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
	Rows     int       `json:"rows"`
	Slots    int       `json:"slots"`
	Layout   Layout    `json:"layout,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// TableStore holds the single loaded probability table.
//
// A successful Load swaps the table in atomically. A failed Load clears it,
// so generation is rejected until a later Load succeeds.
type TableStore struct {
	opts ParseOptions

	mu       sync.RWMutex
	state    State
	table    *Table
	source   string
	loadedAt time.Time
	lastErr  error
}

// NewTableStore creates an empty store that parses with opts.
func NewTableStore(opts ParseOptions) *TableStore {
	return &TableStore{opts: opts, state: StateEmpty}
}

// Load reads src, parses it and replaces the current table.
func (s *TableStore) Load(ctx context.Context, src TextSource) error {
	start := time.Now()
	raw, err := src.ReadText(ctx)
	if err != nil {
		err = fmt.Errorf("read %s: %w", src.Name(), err)
		s.fail(src.Name(), err)
		return err
	}

	t, err := ParseTable(raw, s.opts)
	if err != nil {
		err = fmt.Errorf("parse %s: %w", src.Name(), err)
		s.fail(src.Name(), err)
		return err
	}

	s.mu.Lock()
	s.state = StateLoaded
	s.table = t
	s.source = src.Name()
	s.loadedAt = time.Now()
	s.lastErr = nil
	s.mu.Unlock()

	slog.Info("probability table loaded",
		"source", src.Name(),
		"rows", t.RowCount(),
		"slots", t.SlotCount(),
		"layout", t.Layout(),
		"delimiter", t.Delimiter(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *TableStore) fail(source string, err error) {
	s.mu.Lock()
	s.state = StateFailed
	s.table = nil
	s.source = source
	s.lastErr = err
	s.mu.Unlock()

	slog.Error("probability table load failed", "source", source, "error", err)
}

// Table returns the loaded table. It returns an error wrapping ErrNotLoaded
// (and the load failure, if any) unless the store is Loaded.
func (s *TableStore) Table() (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.state {
	case StateLoaded:
		return s.table, nil
	case StateFailed:
		return nil, errors.Join(ErrNotLoaded, s.lastErr)
	default:
		return nil, ErrNotLoaded
	}
}

// Status returns a snapshot of the store.
func (s *TableStore) Status() StoreStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := StoreStatus{State: s.state, Source: s.source}
	if s.table != nil {
		st.LoadedAt = s.loadedAt
		st.Rows = s.table.RowCount()
		st.Slots = s.table.SlotCount()
		st.Layout = s.table.Layout()
	}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	return st
}
