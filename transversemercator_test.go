package mgrs_test

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotrans/mgrs"
)

func TestTransverseMercatorRoundTrip(t *testing.T) {
	tm, err := mgrs.NewTransverseMercator(mgrs.WGS84, rad(9), 0, 500000, 0, 0.9996)
	require.NoError(t, err)

	for lat := -80.0; lat <= 84; lat += 4 {
		for lon := -6.0; lon <= 24; lon += 3 {
			geo := s2.LatLngFromDegrees(lat, lon)
			xy, err := tm.ConvertFromGeodetic(geo)
			require.NoError(t, err, geo)

			back, err := tm.ConvertToGeodetic(xy)
			require.NoError(t, err, geo)
			assert.Less(t, geo.Distance(back).Radians(), 1e-9, "expected %s, got %s", geo, back)
		}
	}
}

func TestTransverseMercatorCentralMeridian(t *testing.T) {
	tm, err := mgrs.NewTransverseMercator(mgrs.WGS84, rad(9), 0, 500000, 0, 0.9996)
	require.NoError(t, err)

	// on the central meridian easting is the false easting and northing is
	// the scaled meridian arc
	xy, err := tm.ConvertFromGeodetic(s2.LatLngFromDegrees(45, 9))
	require.NoError(t, err)
	assert.InDelta(t, 500000, xy.Easting, 1e-6)
	assert.InDelta(t, 0.9996*4984944.378, xy.Northing, 1e-2)
}

func TestTransverseMercatorOrigin(t *testing.T) {
	// a non zero origin latitude moves the origin onto the false northing
	tm, err := mgrs.NewTransverseMercator(mgrs.WGS84, 0, rad(49), 400000, -100000, 0.9996012717)
	require.NoError(t, err)

	xy, err := tm.ConvertFromGeodetic(s2.LatLngFromDegrees(49, 0))
	require.NoError(t, err)
	assert.InDelta(t, 400000, xy.Easting, 1e-6)
	assert.InDelta(t, -100000, xy.Northing, 1e-6)
}

func TestTransverseMercatorNamedAndDerivedCoefficients(t *testing.T) {
	named, err := mgrs.NewTransverseMercator(mgrs.WGS84, 0, 0, 0, 0, 1)
	require.NoError(t, err)

	unnamed, err := mgrs.NewEllipsoid(mgrs.WGS84.SemiMajorAxis, mgrs.WGS84.Flattening)
	require.NoError(t, err)
	derived, err := mgrs.NewTransverseMercator(unnamed, 0, 0, 0, 0, 1)
	require.NoError(t, err)

	for _, g := range []s2.LatLng{
		s2.LatLngFromDegrees(0, 3),
		s2.LatLngFromDegrees(45, -5),
		s2.LatLngFromDegrees(-70, 20),
	} {
		a, err := named.ConvertFromGeodetic(g)
		require.NoError(t, err)
		b, err := derived.ConvertFromGeodetic(g)
		require.NoError(t, err)
		assert.InDelta(t, a.Easting, b.Easting, 1e-4, g)
		assert.InDelta(t, a.Northing, b.Northing, 1e-4, g)
	}
}

func TestTransverseMercatorFaults(t *testing.T) {
	_, err := mgrs.NewTransverseMercator(mgrs.WGS84, 0, 0, 0, 0, 0.01)
	assert.Error(t, err)

	_, err = mgrs.NewTransverseMercator(mgrs.WGS84, 7, 2, 0, 0, 1)
	assert.Equal(t, mgrs.ErrLatitude|mgrs.ErrLongitude, mgrs.FaultOf(err))

	_, err = mgrs.NewTransverseMercator(mgrs.Ellipsoid{}, 0, 0, 0, 0, 1)
	assert.Equal(t, mgrs.ErrAxis|mgrs.ErrFlattening, mgrs.FaultOf(err))

	tm, err := mgrs.NewTransverseMercator(mgrs.WGS84, 0, 0, 0, 0, 1)
	require.NoError(t, err)

	_, err = tm.ConvertFromGeodetic(s2.LatLngFromDegrees(0, 80))
	assert.Equal(t, mgrs.ErrLongitude, mgrs.FaultOf(err))

	_, err = tm.ConvertFromGeodetic(s2.LatLngFromDegrees(math.NaN(), 0))
	assert.ErrorIs(t, err, mgrs.ErrLatitude)

	_, err = tm.ConvertToGeodetic(mgrs.MapCoords{Easting: 3e7, Northing: 2e7})
	assert.Equal(t, mgrs.ErrEasting|mgrs.ErrNorthing, mgrs.FaultOf(err))
}
