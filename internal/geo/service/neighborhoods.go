package service

import (
	"context"
	"math"

	"georef/internal/geo/models"
	dErrors "georef/pkg/domain-errors"
)

type Locator interface {
	FindByCoordinates(ctx context.Context, longitude, latitude float64) (*models.Neighborhood, error)
}

// Neighborhoods resolves a point to the neighborhood polygon containing it.
type Neighborhoods struct {
	locator Locator
}

func NewNeighborhoods(locator Locator) *Neighborhoods {
	return &Neighborhoods{locator: locator}
}

// FindByCoordinates returns the containing neighborhood or nil. Zero is a
// valid coordinate; non-finite or out-of-range values are rejected.
func (s *Neighborhoods) FindByCoordinates(ctx context.Context, longitude, latitude float64) (*models.Neighborhood, error) {
	if !inRange(longitude, 180) {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "longitude must be between -180 and 180")
	}
	if !inRange(latitude, 90) {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "latitude must be between -90 and 90")
	}
	return s.locator.FindByCoordinates(ctx, longitude, latitude)
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -limit && v <= limit
}
