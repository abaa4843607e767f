package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/storefront/pkg/pg"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres is a Repository over one table. Column names are checked against
// the list given at construction, so they are safe to interpolate.
type Postgres struct {
	db      Querier
	table   string
	columns []string
}

// NewPostgres creates a repository for table. columns must include "id".
func NewPostgres(db Querier, table string, columns ...string) *Postgres {
	return &Postgres{
		db:      db,
		table:   pgx.Identifier{table}.Sanitize(),
		columns: columns,
	}
}

func (p *Postgres) FindBy(ctx context.Context, column string, value any) ([]Record, error) {
	if err := p.checkColumn(column); err != nil {
		return nil, err
	}
	sql := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 ORDER BY created_at", p.table, quote(column))
	return p.query(ctx, sql, value)
}

func (p *Postgres) FindIn(ctx context.Context, column string, values []any) ([]Record, error) {
	if err := p.checkColumn(column); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("SELECT * FROM %s WHERE %s IN (%s) ORDER BY created_at",
		p.table, quote(column), strings.Join(placeholders, ", "))
	return p.query(ctx, sql, values...)
}

func (p *Postgres) Get(ctx context.Context, id string) (Record, error) {
	rows, err := p.FindBy(ctx, "id", id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (p *Postgres) List(ctx context.Context) ([]Record, error) {
	return p.query(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY created_at", p.table))
}

func (p *Postgres) Insert(ctx context.Context, rec Record) error {
	if _, ok := rec["id"]; !ok {
		return ErrMissingID
	}

	columns, args, err := p.split(rec)
	if err != nil {
		return err
	}
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		p.table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	if _, err := p.db.Exec(ctx, sql, args...); err != nil {
		return classify(err)
	}
	return nil
}

func (p *Postgres) Update(ctx context.Context, id string, changes Record) (Record, error) {
	changes = withoutID(changes)
	if len(changes) == 0 {
		return p.Get(ctx, id)
	}

	columns, args, err := p.split(changes)
	if err != nil {
		return nil, err
	}
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		p.table, strings.Join(sets, ", "), len(args))
	rows, err := p.query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := p.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", p.table), id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) query(ctx context.Context, sql string, args ...any) ([]Record, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify(err)
	}
	for _, rec := range records {
		normalize(rec)
	}
	return records, nil
}

func (p *Postgres) checkColumn(column string) error {
	if !slices.Contains(p.columns, column) {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	return nil
}

// split returns quoted column names and their values in a stable order.
func (p *Postgres) split(rec Record) ([]string, []any, error) {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if err := p.checkColumn(k); err != nil {
			return nil, nil, err
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	columns := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		columns[i] = quote(k)
		args[i] = rec[k]
	}
	return columns, args, nil
}

func quote(column string) string {
	return pgx.Identifier{column}.Sanitize()
}

func withoutID(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		if k != "id" {
			out[k] = v
		}
	}
	return out
}

// normalize turns pgx uuid values into their canonical string so records
// render as JSON the same way request bodies carry ids.
func normalize(rec Record) {
	for k, v := range rec {
		if b, ok := v.([16]byte); ok {
			rec[k] = uuid.UUID(b).String()
		}
	}
}

func classify(err error) error {
	switch {
	case pg.IsNotFoundError(err):
		return errors.Join(ErrNotFound, err)
	case pg.IsDuplicateKeyError(err), pg.IsForeignKeyViolationError(err):
		return errors.Join(ErrConflict, err)
	default:
		return err
	}
}
