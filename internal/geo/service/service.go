package service

import (
	"context"

	"georef/internal/geo/query"
)

// Repository reads one entity kind from a data source.
type Repository[T any] interface {
	FindAll(ctx context.Context, conds []query.Condition[T]) ([]T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
}

// Filter turns optional query fields into predicates.
type Filter[T any] interface {
	Conditions() []query.Condition[T]
}

// Catalog serves listings and id lookups for one entity kind. It adds no
// rules of its own; data source faults propagate unchanged.
type Catalog[T any, F Filter[T]] struct {
	repo Repository[T]
}

// NewCatalog constructs a Catalog over repo.
func NewCatalog[T any, F Filter[T]](repo Repository[T]) *Catalog[T, F] {
	return &Catalog[T, F]{repo: repo}
}

// FindAll lists records matching filter. A nil filter applies no predicates.
func (c *Catalog[T, F]) FindAll(ctx context.Context, filter *F) ([]T, error) {
	var conds []query.Condition[T]
	if filter != nil {
		conds = (*filter).Conditions()
	}
	return c.repo.FindAll(ctx, conds)
}

// FindByID returns the record with id, or nil when there is none.
func (c *Catalog[T, F]) FindByID(ctx context.Context, id int64) (*T, error) {
	return c.repo.FindByID(ctx, id)
}
