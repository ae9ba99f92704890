package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"georef/internal/geo/models"
	"georef/internal/geo/store"
)

type MemoryTableSuite struct {
	suite.Suite
	cities *store.MemoryTable[models.City]
}

func TestMemoryTableSuite(t *testing.T) {
	suite.Run(t, new(MemoryTableSuite))
}

func (s *MemoryTableSuite) SetupTest() {
	s.cities = store.NewMemoryTable(store.CitySchema,
		models.City{ID: 3, Name: "Medellín", DaneCode: "05001", DepartmentID: 2, DepartmentName: "Antioquia", CountryID: 1, CountryName: "Colombia"},
		models.City{ID: 1, Name: "Bogotá", DaneCode: "11001", DepartmentID: 1, DepartmentName: "Bogotá D.C.", CountryID: 1, CountryName: "Colombia"},
		models.City{ID: 2, Name: "Quito", DaneCode: "", DepartmentID: 9, DepartmentName: "Pichincha", CountryID: 2, CountryName: "Ecuador"},
	)
}

func (s *MemoryTableSuite) TestFindAllOrdersByID() {
	got, err := s.cities.FindAll(context.Background(), nil)

	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal([]int64{1, 2, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func (s *MemoryTableSuite) TestFindAllFiltersCaseInsensitively() {
	filter := models.CityFilter{Name: "BOG"}

	got, err := s.cities.FindAll(context.Background(), filter.Conditions())

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Bogotá", got[0].Name)
}

func (s *MemoryTableSuite) TestFindAllCombinesFilters() {
	countryID := int64(1)
	filter := models.CityFilter{CountryID: &countryID, DepartmentName: "antio"}

	got, err := s.cities.FindAll(context.Background(), filter.Conditions())

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(int64(3), got[0].ID)
}

func (s *MemoryTableSuite) TestFindAllNoMatchIsEmptyNotNil() {
	got, err := s.cities.FindAll(context.Background(), models.CityFilter{Name: "zzz"}.Conditions())

	s.Require().NoError(err)
	s.NotNil(got)
	s.Empty(got)
}

func (s *MemoryTableSuite) TestFindByID() {
	s.Run("existing", func() {
		got, err := s.cities.FindByID(context.Background(), 2)
		s.Require().NoError(err)
		s.Require().NotNil(got)
		s.Equal("Quito", got.Name)
	})

	s.Run("missing is nil without error", func() {
		got, err := s.cities.FindByID(context.Background(), 99)
		s.Require().NoError(err)
		s.Nil(got)
	})
}

func (s *MemoryTableSuite) TestInsertReplacesSameID() {
	s.cities.Insert(models.City{ID: 2, Name: "Guayaquil", CountryID: 2})

	got, err := s.cities.FindAll(context.Background(), nil)

	s.Require().NoError(err)
	s.Len(got, 3)
	s.Equal("Guayaquil", got[1].Name)
}

func TestMemoryLocator(t *testing.T) {
	locator := store.NewMemoryLocator(
		store.Region{
			Neighborhood: models.Neighborhood{ID: 8, Name: "Chicó", CityID: 1},
			Bounds:       store.Bounds{MinLongitude: -74.06, MinLatitude: 4.66, MaxLongitude: -74.04, MaxLatitude: 4.70},
		},
		store.Region{
			Neighborhood: models.Neighborhood{ID: 5, Name: "Chapinero", CityID: 1},
			Bounds:       store.Bounds{MinLongitude: -74.07, MinLatitude: 4.63, MaxLongitude: -74.05, MaxLatitude: 4.67},
		},
	)
	ctx := context.Background()

	t.Run("point inside one region", func(t *testing.T) {
		got, err := locator.FindByCoordinates(ctx, -74.065, 4.64)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Chapinero", got.Name)
	})

	t.Run("overlap resolves to lowest id", func(t *testing.T) {
		got, err := locator.FindByCoordinates(ctx, -74.055, 4.665)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(5), got.ID)
	})

	t.Run("point outside every region", func(t *testing.T) {
		got, err := locator.FindByCoordinates(ctx, 0, 0)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
