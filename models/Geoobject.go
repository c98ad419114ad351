package models

import "gorm.io/gorm"

// Geoobject is a named point of interest (city center, airport, landmark)
// that search can use as the origin of a radius filter.
type Geoobject struct {
	gorm.Model
	CityID *uint   `json:"city_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Long   float64 `json:"long"`
}
