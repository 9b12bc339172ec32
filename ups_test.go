package mgrs_test

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotrans/mgrs"
)

func TestUPSRoundTrip(t *testing.T) {
	ups, err := mgrs.NewUPS(mgrs.WGS84)
	require.NoError(t, err)

	const latInc = 0.5
	const lngInc = 0.5
	for lng := -190.0; lng < 190; lng += lngInc {
		for lat := -100.0; lat < 100; lat += latInc {
			geo := s2.LatLngFromDegrees(lat, lng)
			uc, err := ups.ConvertFromGeodetic(geo)
			if err != nil {
				continue
			}
			geo2, err := ups.ConvertToGeodetic(uc)
			require.NoError(t, err, "round trip of %s", geo)
			require.Less(t, geo.Distance(geo2).Radians(), 1e-9, "expected %s, got %s", geo, geo2)
		}
	}
}

func TestUPSPoles(t *testing.T) {
	ups := mgrs.Default.UPS()

	north, err := ups.ConvertFromGeodetic(s2.LatLngFromDegrees(90, 45))
	require.NoError(t, err)
	assert.Equal(t, mgrs.UPSCoord{Hemisphere: mgrs.HemisphereNorth, Easting: 2000000, Northing: 2000000}, north)

	south, err := ups.ConvertFromGeodetic(s2.LatLngFromDegrees(-90, 0))
	require.NoError(t, err)
	assert.Equal(t, mgrs.UPSCoord{Hemisphere: mgrs.HemisphereSouth, Easting: 2000000, Northing: 2000000}, south)

	// the 0° meridian runs toward grid south in the north and grid north in the south
	n, err := ups.ConvertFromGeodetic(s2.LatLngFromDegrees(85, 0))
	require.NoError(t, err)
	assert.InDelta(t, 2000000, n.Easting, 1e-6)
	assert.Less(t, n.Northing, 2000000.0)

	s, err := ups.ConvertFromGeodetic(s2.LatLngFromDegrees(-85, 0))
	require.NoError(t, err)
	assert.InDelta(t, 2000000, s.Easting, 1e-6)
	assert.Greater(t, s.Northing, 2000000.0)
}

func TestUPSFaults(t *testing.T) {
	ups := mgrs.Default.UPS()

	_, err := ups.ConvertFromGeodetic(s2.LatLngFromDegrees(80, 0))
	assert.Equal(t, mgrs.ErrLatitude, mgrs.FaultOf(err))

	_, err = ups.ConvertFromGeodetic(s2.LatLngFromDegrees(-79, 0))
	assert.Equal(t, mgrs.ErrLatitude, mgrs.FaultOf(err))

	_, err = ups.ConvertToGeodetic(mgrs.UPSCoord{Easting: 5000000, Northing: 2000000})
	assert.Equal(t, mgrs.ErrHemisphere|mgrs.ErrEasting, mgrs.FaultOf(err))

	// two thousand km from the pole is far outside the cap
	_, err = ups.ConvertToGeodetic(mgrs.UPSCoord{Hemisphere: mgrs.HemisphereNorth, Easting: 2000000, Northing: 0})
	assert.Equal(t, mgrs.ErrLatitude, mgrs.FaultOf(err))
}
