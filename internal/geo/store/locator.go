package store

import (
	"context"
	"errors"
	"time"

	"georef/internal/geo/metrics"
	"georef/internal/geo/models"
	"georef/pkg/platform/sentinel"
)

// locateQuery calls the containment procedure. A point on a shared border can
// fall in two polygons; the lowest id wins.
const locateQuery = `SELECT id, name, city_id FROM get_neighborhood_by_point($1, $2) ORDER BY id LIMIT 1`

var neighborhoodSchema = Schema[models.Neighborhood]{
	Entity:   "neighborhood",
	From:     "neighborhood",
	Columns:  []string{"id", "name", "city_id"},
	IDColumn: "id",
	ID:       func(n models.Neighborhood) int64 { return n.ID },
	Scan: func(s Scanner) (models.Neighborhood, error) {
		var n models.Neighborhood
		err := s.Scan(&n.ID, &n.Name, &n.CityID)
		return n, err
	},
}

// Locator answers point-in-polygon lookups through the database.
type Locator struct {
	db      DB
	metrics *metrics.Metrics
}

// NewLocator constructs a PostgreSQL-backed neighborhood locator.
func NewLocator(db DB, m *metrics.Metrics) *Locator {
	return &Locator{db: db, metrics: m}
}

// FindByCoordinates returns the neighborhood containing the point, or nil when
// no polygon contains it. Coordinates are forwarded as given.
func (l *Locator) FindByCoordinates(ctx context.Context, longitude, latitude float64) (result *models.Neighborhood, err error) {
	start := time.Now()
	ctx, span := startSpan(ctx, neighborhoodSchema.Entity, "find_by_point")
	defer func() { endSpan(span, err) }()

	n, err := scanOne(neighborhoodSchema, l.db.QueryRowContext(ctx, locateQuery, longitude, latitude))
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		l.metrics.ObserveLookup(neighborhoodSchema.Entity, "find_by_point", start, metrics.OutcomeNotFound)
		return nil, nil
	case err != nil:
		l.metrics.ObserveLookup(neighborhoodSchema.Entity, "find_by_point", start, metrics.OutcomeError)
		return nil, newDataSourceError("geo query failed", err)
	}
	l.metrics.ObserveLookup(neighborhoodSchema.Entity, "find_by_point", start, metrics.OutcomeFound)
	return n, nil
}
