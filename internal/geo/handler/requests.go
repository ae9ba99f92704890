package handler

import (
	"net/url"
	"strconv"

	"georef/internal/geo/models"
	dErrors "georef/pkg/domain-errors"
)

// Query parameter names.
const (
	paramName           = "name"
	paramDaneCode       = "daneCode"
	paramCountryID      = "countryId"
	paramDepartmentID   = "departmentId"
	paramCountryName    = "countryName"
	paramDepartmentName = "departmentName"
	paramIsoAlpha2Code  = "isoAlpha2Code"
	paramIsoAlpha3Code  = "isoAlpha3Code"
	paramIsoNumericCode = "isoNumericCode"
	paramLongitude      = "longitude"
	paramLatitude       = "latitude"
)

// ParseCountryFilter reads the country listing parameters.
func ParseCountryFilter(q url.Values) (*models.CountryFilter, error) {
	if len(q) == 0 {
		return nil, nil
	}
	return &models.CountryFilter{
		Name:           q.Get(paramName),
		IsoAlpha2Code:  q.Get(paramIsoAlpha2Code),
		IsoAlpha3Code:  q.Get(paramIsoAlpha3Code),
		IsoNumericCode: q.Get(paramIsoNumericCode),
	}, nil
}

// ParseDepartmentFilter reads the department listing parameters.
func ParseDepartmentFilter(q url.Values) (*models.DepartmentFilter, error) {
	if len(q) == 0 {
		return nil, nil
	}
	countryID, err := optionalInt(q, paramCountryID)
	if err != nil {
		return nil, err
	}
	return &models.DepartmentFilter{
		Name:      q.Get(paramName),
		DaneCode:  q.Get(paramDaneCode),
		CountryID: countryID,
	}, nil
}

// ParseCityFilter reads the city listing parameters.
func ParseCityFilter(q url.Values) (*models.CityFilter, error) {
	if len(q) == 0 {
		return nil, nil
	}
	countryID, err := optionalInt(q, paramCountryID)
	if err != nil {
		return nil, err
	}
	departmentID, err := optionalInt(q, paramDepartmentID)
	if err != nil {
		return nil, err
	}
	return &models.CityFilter{
		CountryID:      countryID,
		DepartmentID:   departmentID,
		Name:           q.Get(paramName),
		DaneCode:       q.Get(paramDaneCode),
		CountryName:    q.Get(paramCountryName),
		DepartmentName: q.Get(paramDepartmentName),
	}, nil
}

// optionalInt returns nil when the parameter is absent or empty.
func optionalInt(q url.Values, param string) (*int64, error) {
	raw := q.Get(param)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, param+" must be an integer")
	}
	return &v, nil
}

// parsePoint reads longitude and latitude. Both are required.
func parsePoint(q url.Values) (models.Point, error) {
	rawLon, rawLat := q.Get(paramLongitude), q.Get(paramLatitude)
	if rawLon == "" || rawLat == "" {
		return models.Point{}, dErrors.New(dErrors.CodeBadRequest, "Invalid request params, missing longitude or latitude")
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return models.Point{}, dErrors.New(dErrors.CodeBadRequest, paramLongitude+" must be a number")
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return models.Point{}, dErrors.New(dErrors.CodeBadRequest, paramLatitude+" must be a number")
	}
	return models.Point{Longitude: lon, Latitude: lat}, nil
}
