package store

import (
	"georef/internal/geo/models"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Schema describes how an entity is read: the FROM clause, the selected
// columns in scan order, the primary key column and accessor.
type Schema[T any] struct {
	Entity   string
	From     string
	Columns  []string
	IDColumn string
	ID       func(T) int64
	Scan     func(s Scanner) (T, error)
}

var CountrySchema = Schema[models.Country]{
	Entity:   "country",
	From:     "country",
	Columns:  []string{"id", "name", "iso_alpha2_code", "iso_alpha3_code", "iso_numeric_code"},
	IDColumn: "id",
	ID:       func(c models.Country) int64 { return c.ID },
	Scan: func(s Scanner) (models.Country, error) {
		var c models.Country
		err := s.Scan(&c.ID, &c.Name, &c.IsoAlpha2Code, &c.IsoAlpha3Code, &c.IsoNumericCode)
		return c, err
	},
}

var DepartmentSchema = Schema[models.Department]{
	Entity:   "department",
	From:     "department",
	Columns:  []string{"id", "name", "dane_code", "country_id"},
	IDColumn: "id",
	ID:       func(d models.Department) int64 { return d.ID },
	Scan: func(s Scanner) (models.Department, error) {
		var d models.Department
		err := s.Scan(&d.ID, &d.Name, &d.DaneCode, &d.CountryID)
		return d, err
	},
}

// CitySchema joins each city to its department and country so listings can
// filter and report by parent names.
var CitySchema = Schema[models.City]{
	Entity: "city",
	From: "city c " +
		"JOIN department d ON d.id = c.department_id " +
		"JOIN country co ON co.id = d.country_id",
	Columns:  []string{"c.id", "c.name", "c.dane_code", "c.department_id", "d.name", "d.country_id", "co.name"},
	IDColumn: "c.id",
	ID:       func(c models.City) int64 { return c.ID },
	Scan: func(s Scanner) (models.City, error) {
		var c models.City
		err := s.Scan(&c.ID, &c.Name, &c.DaneCode, &c.DepartmentID, &c.DepartmentName, &c.CountryID, &c.CountryName)
		return c, err
	},
}
