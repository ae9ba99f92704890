package geo

import (
	"log/slog"

	"georef/internal/geo/handler"
	"georef/internal/geo/metrics"
	"georef/internal/geo/models"
	"georef/internal/geo/service"
	"georef/internal/geo/store"
	"georef/internal/registry"
)

// Wire registers the repository, service and controller factories of every
// entity kind. c must already hold TokenDataSource, TokenLogger and
// TokenMetrics. Nothing is constructed until a token is resolved.
func Wire(c *registry.Container) {
	wireCatalog(c, catalogTokens{
		repository: TokenCountryRepository,
		service:    TokenCountryService,
		controller: TokenCountryController,
	}, "Country", store.CountrySchema, handler.ParseCountryFilter)

	wireCatalog(c, catalogTokens{
		repository: TokenDepartmentRepository,
		service:    TokenDepartmentService,
		controller: TokenDepartmentController,
	}, "Department", store.DepartmentSchema, handler.ParseDepartmentFilter)

	wireCatalog(c, catalogTokens{
		repository: TokenCityRepository,
		service:    TokenCityService,
		controller: TokenCityController,
	}, "City", store.CitySchema, handler.ParseCityFilter)

	c.RegisterFactory(TokenNeighborhoodRepository, func(r registry.Resolver) (any, error) {
		db, m, err := dataSource(r)
		if err != nil {
			return nil, err
		}
		return store.NewLocator(db, m), nil
	})
	c.RegisterFactory(TokenNeighborhoodService, func(r registry.Resolver) (any, error) {
		locator, err := registry.Resolve[service.Locator](r, TokenNeighborhoodRepository)
		if err != nil {
			return nil, err
		}
		return service.NewNeighborhoods(locator), nil
	})
	c.RegisterFactory(TokenNeighborhoodController, func(r registry.Resolver) (any, error) {
		svc, err := registry.Resolve[handler.NeighborhoodService](r, TokenNeighborhoodService)
		if err != nil {
			return nil, err
		}
		logger, err := registry.Resolve[*slog.Logger](r, TokenLogger)
		if err != nil {
			return nil, err
		}
		return handler.NewNeighborhood(svc, logger), nil
	})
}

type catalogTokens struct {
	repository registry.Token
	service    registry.Token
	controller registry.Token
}

func wireCatalog[T any, F service.Filter[T]](
	c *registry.Container,
	tokens catalogTokens,
	entity string,
	schema store.Schema[T],
	parse handler.FilterParser[F],
) {
	c.RegisterFactory(tokens.repository, func(r registry.Resolver) (any, error) {
		db, m, err := dataSource(r)
		if err != nil {
			return nil, err
		}
		return store.NewTable(db, schema, m), nil
	})
	c.RegisterFactory(tokens.service, func(r registry.Resolver) (any, error) {
		repo, err := registry.Resolve[service.Repository[T]](r, tokens.repository)
		if err != nil {
			return nil, err
		}
		return service.NewCatalog[T, F](repo), nil
	})
	c.RegisterFactory(tokens.controller, func(r registry.Resolver) (any, error) {
		svc, err := registry.Resolve[handler.Service[T, F]](r, tokens.service)
		if err != nil {
			return nil, err
		}
		logger, err := registry.Resolve[*slog.Logger](r, TokenLogger)
		if err != nil {
			return nil, err
		}
		return handler.NewResource(entity, svc, parse, logger), nil
	})
}

func dataSource(r registry.Resolver) (store.DB, *metrics.Metrics, error) {
	db, err := registry.Resolve[store.DB](r, TokenDataSource)
	if err != nil {
		return nil, nil, err
	}
	m, err := registry.Resolve[*metrics.Metrics](r, TokenMetrics)
	if err != nil {
		return nil, nil, err
	}
	return db, m, nil
}

// Both store flavours satisfy the service contracts.
var (
	_ service.Repository[models.City] = (*store.MemoryTable[models.City])(nil)
	_ service.Repository[models.City] = (*store.Table[models.City])(nil)
	_ service.Locator                 = (*store.MemoryLocator)(nil)
	_ service.Locator                 = (*store.Locator)(nil)
)
