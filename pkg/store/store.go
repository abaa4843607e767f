package store

import "context"

// Record is one stored row keyed by column name. Records double as
// validator data-context records, so relational rules match on column names.
type Record = map[string]any

// Repository is the persistence boundary used by the use-cases. Every
// implementation keys rows by the "id" column.
type Repository interface {
	// FindBy returns the rows whose column equals value, in insertion order.
	FindBy(ctx context.Context, column string, value any) ([]Record, error)
	// FindIn returns the rows whose column equals any of values.
	FindIn(ctx context.Context, column string, values []any) ([]Record, error)
	// Get returns the row with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Insert(ctx context.Context, rec Record) error
	// Update applies changes to the row with the given id and returns the
	// updated row. A missing row is ErrNotFound.
	Update(ctx context.Context, id string, changes Record) (Record, error)
	Delete(ctx context.Context, id string) error
}
