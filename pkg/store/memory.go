package store

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"sync"
)

// Memory is an in-process Repository. It backs the "memory" store driver and
// the use-case tests.
type Memory struct {
	mu     sync.RWMutex
	order  []string
	rows   map[string]Record
	unique []string
}

// MemoryOption configures a Memory repository.
type MemoryOption func(*Memory)

// WithUnique makes Insert and Update reject a second row with the same value
// in any of columns, mirroring a unique index.
func WithUnique(columns ...string) MemoryOption {
	return func(m *Memory) {
		m.unique = append(m.unique, columns...)
	}
}

// NewMemory creates an empty in-memory repository.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{rows: make(map[string]Record)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) FindBy(ctx context.Context, column string, value any) ([]Record, error) {
	return m.FindIn(ctx, column, []any{value})
}

func (m *Memory) FindIn(_ context.Context, column string, values []any) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for _, id := range m.order {
		row := m.rows[id]
		for _, v := range values {
			if sameValue(row[column], v) {
				out = append(out, maps.Clone(row))
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return maps.Clone(row), nil
}

func (m *Memory) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, maps.Clone(m.rows[id]))
	}
	return out, nil
}

func (m *Memory) Insert(_ context.Context, rec Record) error {
	id, ok := rec["id"].(string)
	if !ok || id == "" {
		return ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rows[id]; exists {
		return fmt.Errorf("%w: id %s", ErrConflict, id)
	}
	if err := m.checkUnique("", rec); err != nil {
		return err
	}

	m.rows[id] = maps.Clone(rec)
	m.order = append(m.order, id)
	return nil
}

func (m *Memory) Update(_ context.Context, id string, changes Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}

	next := maps.Clone(row)
	for k, v := range changes {
		if k == "id" {
			continue
		}
		next[k] = v
	}
	if err := m.checkUnique(id, next); err != nil {
		return nil, err
	}

	m.rows[id] = next
	return maps.Clone(next), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// checkUnique must be called with the write lock held.
func (m *Memory) checkUnique(selfID string, rec Record) error {
	for _, column := range m.unique {
		v, ok := rec[column]
		if !ok || v == nil {
			continue
		}
		for id, row := range m.rows {
			if id != selfID && sameValue(row[column], v) {
				return fmt.Errorf("%w: %s", ErrConflict, column)
			}
		}
	}
	return nil
}

func sameValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
