package models

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm = 6371.0 // Earth's radius in kilometers
	metersPerMile = 1609.34
)

type Location struct {
	Lat float64 `json:"lat" parquet:"name=lat, type=DOUBLE"`
	Lng float64 `json:"lng" parquet:"name=lng, type=DOUBLE"`
}

func (l Location) String() string {
	return fmt.Sprintf("%f,%f", l.Lat, l.Lng)
}

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func MetersToMiles(m int) float64 {
	return float64(m) / metersPerMile
}

// Round returns v rounded half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
