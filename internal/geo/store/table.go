package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"georef/internal/geo/metrics"
	"georef/internal/geo/query"
	"georef/pkg/platform/sentinel"
)

// DB is the subset of *sql.DB the stores use.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Table reads one entity from PostgreSQL.
type Table[T any] struct {
	db      DB
	schema  Schema[T]
	metrics *metrics.Metrics
}

// NewTable constructs a PostgreSQL-backed table for schema. metrics may be nil.
func NewTable[T any](db DB, schema Schema[T], m *metrics.Metrics) *Table[T] {
	return &Table[T]{db: db, schema: schema, metrics: m}
}

// FindAll returns every row satisfying all conditions, ordered by id.
func (t *Table[T]) FindAll(ctx context.Context, conds []query.Condition[T]) (result []T, err error) {
	start := time.Now()
	ctx, span := startSpan(ctx, t.schema.Entity, "find_all")
	defer func() { endSpan(span, err) }()

	q, args := buildSelect(t.schema, conds)
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		t.observe("find_all", start, metrics.OutcomeError)
		return nil, newDataSourceError(fmt.Sprintf("list %s", t.schema.Entity), err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		record, err := t.schema.Scan(rows)
		if err != nil {
			t.observe("find_all", start, metrics.OutcomeError)
			return nil, newDataSourceError(fmt.Sprintf("scan %s", t.schema.Entity), err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		t.observe("find_all", start, metrics.OutcomeError)
		return nil, newDataSourceError(fmt.Sprintf("list %s", t.schema.Entity), err)
	}

	outcome := metrics.OutcomeFound
	if len(records) == 0 {
		outcome = metrics.OutcomeNotFound
	}
	t.observe("find_all", start, outcome)
	return records, nil
}

// FindByID returns the row with the given primary key, or nil when there is
// none.
func (t *Table[T]) FindByID(ctx context.Context, id int64) (result *T, err error) {
	start := time.Now()
	ctx, span := startSpan(ctx, t.schema.Entity, "find_by_id")
	defer func() { endSpan(span, err) }()

	cond := query.Equal(t.schema.IDColumn, id, t.schema.ID)
	q, args := buildSelect(t.schema, []query.Condition[T]{cond})
	record, err := scanOne(t.schema, t.db.QueryRowContext(ctx, q, args...))
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		t.observe("find_by_id", start, metrics.OutcomeNotFound)
		return nil, nil
	case err != nil:
		t.observe("find_by_id", start, metrics.OutcomeError)
		return nil, newDataSourceError(fmt.Sprintf("find %s %d", t.schema.Entity, id), err)
	}
	t.observe("find_by_id", start, metrics.OutcomeFound)
	return record, nil
}

func (t *Table[T]) observe(operation string, start time.Time, outcome metrics.Outcome) {
	t.metrics.ObserveLookup(t.schema.Entity, operation, start, outcome)
}

// scanOne scans a single row, reporting sql.ErrNoRows as sentinel.ErrNotFound.
func scanOne[T any](schema Schema[T], row Scanner) (*T, error) {
	record, err := schema.Scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
