// Package store reads geographic records from PostgreSQL/PostGIS.
//
// Table is generic over an entity Schema and translates query conditions into
// a parameterized SELECT. Zero rows on an id lookup is not an error: it comes
// back as a nil record. Every other database fault is returned as a
// *DataSourceError. Locator calls the get_neighborhood_by_point procedure.
//
// MemoryTable and MemoryLocator implement the same contracts in memory.
package store

import (
	"georef/internal/geo/metrics"
	"georef/internal/geo/models"
)

func NewCountryTable(db DB, m *metrics.Metrics) *Table[models.Country] {
	return NewTable(db, CountrySchema, m)
}

func NewDepartmentTable(db DB, m *metrics.Metrics) *Table[models.Department] {
	return NewTable(db, DepartmentSchema, m)
}

// NewCityTable returns the city table joined with its department and country.
func NewCityTable(db DB, m *metrics.Metrics) *Table[models.City] {
	return NewTable(db, CitySchema, m)
}
