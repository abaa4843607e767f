package validator

import (
	"context"
	"fmt"
	"sync"
)

// Source supplies the reference records of one data entity.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// DataContext maps a data entity name (e.g. "customersByEmail") to its
// records. It is built fresh for every validation call and only read by rules.
type DataContext map[string]Source

// Records returns the records of entity, resolving a lazy source on first use.
func (d DataContext) Records(ctx context.Context, entity string) ([]Record, error) {
	src, ok := d[entity]
	if !ok || src == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataEntity, entity)
	}
	return src.Records(ctx)
}

type eagerSource []Record

func (s eagerSource) Records(context.Context) ([]Record, error) {
	return s, nil
}

// Eager wraps records that are already loaded.
func Eager(records ...Record) Source {
	return eagerSource(records)
}

// LoadFunc fetches the records of a lazy source.
type LoadFunc func(ctx context.Context) ([]Record, error)

type lazySource struct {
	load    LoadFunc
	mu      sync.Mutex
	done    bool
	records []Record
	err     error
}

// Lazy defers load until a rule first reads the entity. The result, including
// an error, is memoized so concurrent fields share a single lookup. A failure
// observed while the caller's context is done is not memoized, so a later
// read with a live context loads again.
func Lazy(load LoadFunc) Source {
	return &lazySource{load: load}
}

func (s *lazySource) Records(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return s.records, s.err
	}

	records, err := s.load(ctx)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}
	s.records, s.err, s.done = records, err, true
	return records, err
}
