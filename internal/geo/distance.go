package geo

import "math"

const earthRadiusKM = 6371.0

// Distance returns the haversine great-circle distance in kilometers.
// Symmetric, zero for identical points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
