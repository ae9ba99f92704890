package models

import "georef/internal/geo/query"

// Country mirrors a row of the country table.
type Country struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	IsoAlpha2Code  string `json:"iso_alpha2_code"`
	IsoAlpha3Code  string `json:"iso_alpha3_code"`
	IsoNumericCode string `json:"iso_numeric_code"`
}

// CountryFilter narrows a country listing. Empty fields impose no predicate.
type CountryFilter struct {
	Name           string
	IsoAlpha2Code  string
	IsoAlpha3Code  string
	IsoNumericCode string
}

// Conditions returns one predicate per present field.
func (f CountryFilter) Conditions() []query.Condition[Country] {
	var conds []query.Condition[Country]
	if f.Name != "" {
		conds = append(conds, query.Contains("name", f.Name, func(c Country) string { return c.Name }))
	}
	if f.IsoAlpha2Code != "" {
		conds = append(conds, query.Equal("iso_alpha2_code", f.IsoAlpha2Code, func(c Country) string { return c.IsoAlpha2Code }))
	}
	if f.IsoAlpha3Code != "" {
		conds = append(conds, query.Equal("iso_alpha3_code", f.IsoAlpha3Code, func(c Country) string { return c.IsoAlpha3Code }))
	}
	if f.IsoNumericCode != "" {
		conds = append(conds, query.Equal("iso_numeric_code", f.IsoNumericCode, func(c Country) string { return c.IsoNumericCode }))
	}
	return conds
}
