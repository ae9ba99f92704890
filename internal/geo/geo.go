// Package geo assembles the geographic reference API: a repository, service
// and controller per entity kind, bound to registry tokens and mounted under
// /api/v1.
package geo

import (
	"georef/internal/geo/handler"
	"georef/internal/geo/models"
	"georef/internal/geo/service"
	"georef/internal/registry"
)

// Shared capabilities registered as instances by the composition root.
const (
	TokenDataSource registry.Token = "DataSource"
	TokenLogger     registry.Token = "Logger"
	TokenMetrics    registry.Token = "Metrics"
)

const (
	TokenCountryRepository registry.Token = "CountryRepository"
	TokenCountryService    registry.Token = "CountryService"
	TokenCountryController registry.Token = "CountryController"

	TokenDepartmentRepository registry.Token = "DepartmentRepository"
	TokenDepartmentService    registry.Token = "DepartmentService"
	TokenDepartmentController registry.Token = "DepartmentController"

	TokenCityRepository registry.Token = "CityRepository"
	TokenCityService    registry.Token = "CityService"
	TokenCityController registry.Token = "CityController"

	TokenNeighborhoodRepository registry.Token = "NeighborhoodRepository"
	TokenNeighborhoodService    registry.Token = "NeighborhoodService"
	TokenNeighborhoodController registry.Token = "NeighborhoodController"
)

type (
	CountryService      = service.Catalog[models.Country, models.CountryFilter]
	DepartmentService   = service.Catalog[models.Department, models.DepartmentFilter]
	CityService         = service.Catalog[models.City, models.CityFilter]
	NeighborhoodService = service.Neighborhoods

	CountryController      = handler.Resource[models.Country, models.CountryFilter]
	DepartmentController   = handler.Resource[models.Department, models.DepartmentFilter]
	CityController         = handler.Resource[models.City, models.CityFilter]
	NeighborhoodController = handler.Neighborhood
)
