package store

import (
	"context"
	"slices"
	"sync"

	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/errors"
)

// Memory is a map-backed Store guarded by a single RWMutex.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*analysis.Record
	order   []string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]*analysis.Record),
	}
}

// Insert stores a copy of rec unless its ID is already present.
func (m *Memory) Insert(_ context.Context, rec *analysis.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[rec.ID]; exists {
		return errors.NewConflict(rec.ID)
	}
	m.records[rec.ID] = rec.Clone()
	m.order = append(m.order, rec.ID)
	return nil
}

// Get returns a copy of the record with the given ID.
func (m *Memory) Get(_ context.Context, id string) (*analysis.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, errors.NewNotFound(id)
	}
	return rec.Clone(), nil
}

// Delete removes the record with the given ID.
func (m *Memory) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return false, nil
	}
	delete(m.records, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return true, nil
}

// All returns copies of every record in insertion order.
func (m *Memory) All(_ context.Context) ([]*analysis.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*analysis.Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id].Clone())
	}
	return out, nil
}

// Count returns the number of stored records.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// Close is a no-op; records are dropped with the process.
func (m *Memory) Close() error {
	return nil
}
