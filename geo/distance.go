package geo

import (
	"math"

	"technician-tracker/models"
)

// EarthRadiusMiles is the sphere radius used for every distance in the tracker.
const EarthRadiusMiles = 3959.0

// Haversine returns the great-circle distance between p and q in miles.
func Haversine(p, q models.GeoPoint) float64 {
	dLat := toRad(q.Lat - p.Lat)
	dLng := toRad(q.Lng - p.Lng)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(p.Lat))*math.Cos(toRad(q.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// Interpolate moves from toward to by fraction f of the remaining
// latitude and longitude deltas.
func Interpolate(from, to models.GeoPoint, f float64) models.GeoPoint {
	return models.GeoPoint{
		Lat: from.Lat + (to.Lat-from.Lat)*f,
		Lng: from.Lng + (to.Lng-from.Lng)*f,
	}
}

func toRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
