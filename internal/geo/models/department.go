package models

import "georef/internal/geo/query"

// Department mirrors a row of the department table.
type Department struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	DaneCode  string `json:"dane_code"`
	CountryID int64  `json:"country_id"`
}

// DepartmentFilter narrows a department listing.
type DepartmentFilter struct {
	Name      string
	DaneCode  string
	CountryID *int64
}

// Conditions returns one predicate per present field.
func (f DepartmentFilter) Conditions() []query.Condition[Department] {
	var conds []query.Condition[Department]
	if f.Name != "" {
		conds = append(conds, query.Contains("name", f.Name, func(d Department) string { return d.Name }))
	}
	if f.DaneCode != "" {
		conds = append(conds, query.Equal("dane_code", f.DaneCode, func(d Department) string { return d.DaneCode }))
	}
	if f.CountryID != nil {
		conds = append(conds, query.Equal("country_id", *f.CountryID, func(d Department) int64 { return d.CountryID }))
	}
	return conds
}
