package models

// Neighborhood is the attribute part of a neighborhood row. Its polygon stays
// in the database and is only used by the containment procedure.
type Neighborhood struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	CityID int64  `json:"city_id"`
}

// Point is a WGS84 coordinate as sent by the client.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// NeighborhoodMatch is a coordinate lookup hit with the queried point echoed
// back as context.
type NeighborhoodMatch struct {
	Neighborhood
	Context Point `json:"context"`
}
