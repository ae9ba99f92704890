package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"georef/internal/geo/models"
	"georef/internal/geo/query"
)

// MemoryTable keeps rows in memory and evaluates the same conditions as
// Table. Rows are kept ordered by id to match the SQL ordering.
type MemoryTable[T any] struct {
	mu     sync.RWMutex
	schema Schema[T]
	rows   []T
}

// NewMemoryTable constructs an in-memory table seeded with rows.
func NewMemoryTable[T any](schema Schema[T], rows ...T) *MemoryTable[T] {
	t := &MemoryTable[T]{schema: schema}
	t.Insert(rows...)
	return t
}

// Insert adds rows, replacing any row with the same id.
func (t *MemoryTable[T]) Insert(rows ...T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, row := range rows {
		id := t.schema.ID(row)
		t.rows = slices.DeleteFunc(t.rows, func(existing T) bool { return t.schema.ID(existing) == id })
		t.rows = append(t.rows, row)
	}
	slices.SortFunc(t.rows, func(a, b T) int {
		return cmp.Compare(t.schema.ID(a), t.schema.ID(b))
	})
}

func (t *MemoryTable[T]) FindAll(_ context.Context, conds []query.Condition[T]) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	result := make([]T, 0)
	for _, row := range t.rows {
		if query.MatchAll(conds, row) {
			result = append(result, row)
		}
	}
	return result, nil
}

func (t *MemoryTable[T]) FindByID(_ context.Context, id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if t.schema.ID(row) == id {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

// Bounds is an axis-aligned box in longitude/latitude.
type Bounds struct {
	MinLongitude, MinLatitude float64
	MaxLongitude, MaxLatitude float64
}

// Contains reports whether the point lies inside or on the edge of the box.
func (b Bounds) Contains(longitude, latitude float64) bool {
	return longitude >= b.MinLongitude && longitude <= b.MaxLongitude &&
		latitude >= b.MinLatitude && latitude <= b.MaxLatitude
}

// Region pairs a neighborhood with the box standing in for its polygon.
type Region struct {
	Neighborhood models.Neighborhood
	Bounds       Bounds
}

// MemoryLocator answers coordinate lookups from boxes instead of polygons.
type MemoryLocator struct {
	regions []Region
}

// NewMemoryLocator constructs a locator over regions; on overlap the lowest
// neighborhood id wins, as in the SQL locator.
func NewMemoryLocator(regions ...Region) *MemoryLocator {
	sorted := slices.Clone(regions)
	slices.SortFunc(sorted, func(a, b Region) int {
		return cmp.Compare(a.Neighborhood.ID, b.Neighborhood.ID)
	})
	return &MemoryLocator{regions: sorted}
}

func (l *MemoryLocator) FindByCoordinates(_ context.Context, longitude, latitude float64) (*models.Neighborhood, error) {
	for _, r := range l.regions {
		if r.Bounds.Contains(longitude, latitude) {
			n := r.Neighborhood
			return &n, nil
		}
	}
	return nil, nil
}
