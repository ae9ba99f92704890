package geo_test

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"georef/internal/geo"
	"georef/internal/geo/metrics"
	"georef/internal/geo/models"
	"georef/internal/geo/store"
	"georef/internal/registry"
	"georef/pkg/testutil"
)

func newContainer(t *testing.T) *registry.Container {
	t.Helper()
	// sql.Open does not connect; nothing in these tests reaches the database.
	db, err := sql.Open("postgres", "postgres://georef@127.0.0.1:1/georef?sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c := registry.New()
	c.RegisterInstance(geo.TokenDataSource, db)
	c.RegisterInstance(geo.TokenLogger, testutil.DiscardLogger())
	c.RegisterInstance(geo.TokenMetrics, metrics.New(prometheus.NewRegistry()))
	geo.Wire(c)
	return c
}

func TestWireRegistersEveryEntity(t *testing.T) {
	c := newContainer(t)

	for _, token := range []registry.Token{
		geo.TokenCountryRepository, geo.TokenCountryService, geo.TokenCountryController,
		geo.TokenDepartmentRepository, geo.TokenDepartmentService, geo.TokenDepartmentController,
		geo.TokenCityRepository, geo.TokenCityService, geo.TokenCityController,
		geo.TokenNeighborhoodRepository, geo.TokenNeighborhoodService, geo.TokenNeighborhoodController,
	} {
		assert.Contains(t, c.Tokens(), token)
	}

	cityRepo, err := registry.Resolve[*store.Table[models.City]](c, geo.TokenCityRepository)
	require.NoError(t, err)
	assert.NotNil(t, cityRepo)

	_, err = registry.Resolve[*geo.CityService](c, geo.TokenCityService)
	require.NoError(t, err)
	_, err = registry.Resolve[*geo.NeighborhoodController](c, geo.TokenNeighborhoodController)
	require.NoError(t, err)
}

func TestControllersAreSingletons(t *testing.T) {
	c := newContainer(t)

	first, err := c.Resolve(geo.TokenCountryController)
	require.NoError(t, err)
	second, err := c.Resolve(geo.TokenCountryController)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestRoutesFailsWithoutDataSource(t *testing.T) {
	c := registry.New()
	c.RegisterInstance(geo.TokenLogger, testutil.DiscardLogger())
	c.RegisterInstance(geo.TokenMetrics, metrics.New(prometheus.NewRegistry()))
	geo.Wire(c)
	router := chi.NewRouter()

	err := geo.Routes(c, router)

	require.ErrorIs(t, err, registry.ErrUnknownToken)
	assert.Contains(t, err.Error(), "DataSource")
	assert.Empty(t, router.Routes(), "nothing is mounted when wiring fails")
}

func TestRoutesFailsOnWrongDataSourceType(t *testing.T) {
	c := newContainer(t)
	c.RegisterInstance(geo.TokenDataSource, "not a database")

	err := geo.Routes(c, chi.NewRouter())

	assert.ErrorIs(t, err, registry.ErrTypeMismatch)
}

// ScenarioSuite drives the full router with the repositories replaced by
// in-memory tables.
type ScenarioSuite struct {
	suite.Suite
	router *chi.Mux
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func (s *ScenarioSuite) SetupTest() {
	c := newContainer(s.T())
	c.RegisterInstance(geo.TokenCountryRepository, store.NewMemoryTable(store.CountrySchema,
		models.Country{ID: 1, Name: "Colombia", IsoAlpha2Code: "CO", IsoAlpha3Code: "COL", IsoNumericCode: "170"},
	))
	c.RegisterInstance(geo.TokenDepartmentRepository, store.NewMemoryTable(store.DepartmentSchema,
		models.Department{ID: 11, Name: "Bogotá D.C.", DaneCode: "11", CountryID: 1},
		models.Department{ID: 5, Name: "Antioquia", DaneCode: "05", CountryID: 1},
	))
	c.RegisterInstance(geo.TokenCityRepository, store.NewMemoryTable(store.CitySchema,
		models.City{ID: 1, Name: "Bogotá", DaneCode: "11001", DepartmentID: 11, DepartmentName: "Bogotá D.C.", CountryID: 1, CountryName: "Colombia"},
		models.City{ID: 2, Name: "Medellín", DaneCode: "05001", DepartmentID: 5, DepartmentName: "Antioquia", CountryID: 1, CountryName: "Colombia"},
		models.City{ID: 3, Name: "Bogotana", DaneCode: "11002", DepartmentID: 11, DepartmentName: "Bogotá D.C.", CountryID: 1, CountryName: "Colombia"},
	))
	c.RegisterInstance(geo.TokenNeighborhoodRepository, store.NewMemoryLocator(store.Region{
		Neighborhood: models.Neighborhood{ID: 5, Name: "Chapinero", CityID: 1},
		Bounds:       store.Bounds{MinLongitude: -74.10, MinLatitude: 4.58, MaxLongitude: -74.05, MaxLatitude: 4.67},
	}))

	s.router = chi.NewRouter()
	s.Require().NoError(geo.Routes(c, s.router))
}

func (s *ScenarioSuite) TestCityNameFilter() {
	rr := testutil.DoRequest(s.router, testutil.Get(s.T(), "/api/v1/cities?name=Bog"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	got := testutil.UnmarshalResponse[[]models.City](s.T(), rr)
	names := make([]string, len(got))
	for i, city := range got {
		names[i] = city.Name
		s.Equal("Colombia", city.CountryName)
	}
	s.Equal([]string{"Bogotá", "Bogotana"}, names)
	s.NotContains(names, "Medellín")
}

func (s *ScenarioSuite) TestCityNotFound() {
	rr := testutil.DoRequest(s.router, testutil.Get(s.T(), "/api/v1/cities/999999"))

	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	s.JSONEq(`{"message":"City not found"}`, rr.Body.String())
}

func (s *ScenarioSuite) TestNeighborhoodByPoint() {
	rr := testutil.DoRequest(s.router, testutil.Get(s.T(), "/api/v1/neighborhoods/point?longitude=-74.08&latitude=4.60"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.JSONEq(`{
		"id": 5,
		"name": "Chapinero",
		"city_id": 1,
		"context": {"longitude": -74.08, "latitude": 4.60}
	}`, rr.Body.String())
}

func (s *ScenarioSuite) TestDepartmentsNoMatch() {
	rr := testutil.DoRequest(s.router, testutil.Get(s.T(), "/api/v1/departments?countryId=1&name=xyz"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.JSONEq(`[]`, rr.Body.String())
}

func (s *ScenarioSuite) TestDepartmentsOrderedByID() {
	rr := testutil.DoRequest(s.router, testutil.Get(s.T(), "/api/v1/departments?countryId=1"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	got := testutil.UnmarshalResponse[[]models.Department](s.T(), rr)
	s.Require().Len(got, 2)
	s.Equal([]int64{5, 11}, []int64{got[0].ID, got[1].ID})
}

func (s *ScenarioSuite) TestCountryByID() {
	rr := testutil.DoRequest(s.router, testutil.Get(s.T(), "/api/v1/countries/1"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	testutil.AssertJSONContains(s.T(), rr, "iso_alpha3_code", "COL")
}
