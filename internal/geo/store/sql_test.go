package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"georef/internal/geo/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildSelect(t *testing.T) {
	t.Run("no conditions lists everything ordered by id", func(t *testing.T) {
		q, args := buildSelect(CountrySchema, nil)

		assert.Equal(t,
			"SELECT id, name, iso_alpha2_code, iso_alpha3_code, iso_numeric_code FROM country ORDER BY id", q)
		assert.Empty(t, args)
	})

	t.Run("city name filter matches on the joined alias", func(t *testing.T) {
		q, args := buildSelect(CitySchema, models.CityFilter{Name: "bog"}.Conditions())

		assert.Equal(t,
			"SELECT c.id, c.name, c.dane_code, c.department_id, d.name, d.country_id, co.name "+
				"FROM city c JOIN department d ON d.id = c.department_id JOIN country co ON co.id = d.country_id "+
				"WHERE c.name ILIKE $1 ORDER BY c.id", q)
		assert.Equal(t, []any{"%bog%"}, args)
	})

	t.Run("multiple conditions are numbered in order", func(t *testing.T) {
		filter := models.DepartmentFilter{Name: "ant", DaneCode: "05", CountryID: int64Ptr(1)}

		q, args := buildSelect(DepartmentSchema, filter.Conditions())

		assert.Contains(t, q, "WHERE ")
		assert.Contains(t, q, "$1")
		assert.Contains(t, q, "$2")
		assert.Contains(t, q, "$3")
		assert.NotContains(t, q, "$4")
		assert.Len(t, args, 3)
		assert.Contains(t, args, "%ant%")
		assert.Contains(t, args, "05")
		assert.Contains(t, args, int64(1))
	})

	t.Run("client input never reaches the query text", func(t *testing.T) {
		q, args := buildSelect(CountrySchema, models.CountryFilter{Name: "'; DROP TABLE country; --"}.Conditions())

		assert.NotContains(t, q, "DROP")
		assert.Equal(t, []any{"%'; DROP TABLE country; --%"}, args)
	})
}

func TestLikeEscaping(t *testing.T) {
	_, args := buildSelect(CountrySchema, models.CountryFilter{Name: `50%_off\`}.Conditions())

	assert.Equal(t, []any{`%50\%\_off\\%`}, args)
}
