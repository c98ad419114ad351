package services

import "math"

// GeoobjectRadiusKm bounds "near a geo-object" searches.
const GeoobjectRadiusKm = 10.0

// CalculateDistance returns the great-circle distance in kilometers between
// two lat/long points using the haversine formula.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	const R = 6371 // Earth's radius in kilometers

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// IsWithinRadius reports whether a point lies within radiusKm of an origin.
func IsWithinRadius(lat, lng, originLat, originLng, radiusKm float64) bool {
	return CalculateDistance(lat, lng, originLat, originLng) <= radiusKm
}
