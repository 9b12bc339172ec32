package mgrs

import "github.com/golang/geo/s2"

// Distance returns the length in meters of the geodesic between a and b on
// the ellipsoid.
func (e Ellipsoid) Distance(a, b s2.LatLng) float64 {
	if !e.valid() {
		e = WGS84
	}
	var s12 float64
	e.geod.Inverse(a.Lat.Degrees(), a.Lng.Degrees(), b.Lat.Degrees(), b.Lng.Degrees(), &s12, nil, nil)
	return s12
}
