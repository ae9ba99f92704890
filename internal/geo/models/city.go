package models

import "georef/internal/geo/query"

// City is a city row joined with the names of its department and country.
type City struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DaneCode       string `json:"dane_code"`
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	CountryID      int64  `json:"country_id"`
	CountryName    string `json:"country_name"`
}

// CityFilter narrows a city listing. Name filters match substrings
// case-insensitively; ids and codes match exactly.
type CityFilter struct {
	CountryID      *int64
	DepartmentID   *int64
	Name           string
	DaneCode       string
	CountryName    string
	DepartmentName string
}

// Conditions returns one predicate per present field. Column names are
// qualified with the aliases of the city join.
func (f CityFilter) Conditions() []query.Condition[City] {
	var conds []query.Condition[City]
	if f.CountryID != nil {
		conds = append(conds, query.Equal("d.country_id", *f.CountryID, func(c City) int64 { return c.CountryID }))
	}
	if f.DepartmentID != nil {
		conds = append(conds, query.Equal("c.department_id", *f.DepartmentID, func(c City) int64 { return c.DepartmentID }))
	}
	if f.Name != "" {
		conds = append(conds, query.Contains("c.name", f.Name, func(c City) string { return c.Name }))
	}
	if f.DaneCode != "" {
		conds = append(conds, query.Equal("c.dane_code", f.DaneCode, func(c City) string { return c.DaneCode }))
	}
	if f.CountryName != "" {
		conds = append(conds, query.Contains("co.name", f.CountryName, func(c City) string { return c.CountryName }))
	}
	if f.DepartmentName != "" {
		conds = append(conds, query.Contains("d.name", f.DepartmentName, func(c City) string { return c.DepartmentName }))
	}
	return conds
}
