package mgrs

import (
	"math"

	"github.com/golang/geo/s2"
)

// UPSCoord is a UPS coordinate with a specified easting/northing in meters and
// hemisphere.
type UPSCoord struct {
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
}

// UPS is a UPS coordinate converter. It holds one polar stereographic
// projection per hemisphere and is safe for concurrent use.
type UPS struct {
	ellipsoid              Ellipsoid
	polarStereographicMapN *PolarStereographic
	polarStereographicMapS *PolarStereographic
}

const epsilonRadians = 1.75e-7 // approx 1.0e-5 degrees (~1 meter) in radians

const upsFalseEasting = 2000000
const upsFalseNorthing = 2000000
const upsScaleFactor = 0.994

const upsMaxLat = 90.0 * (math.Pi / 180.0) // 90 degrees in radians
const upsMinNorthLat = 83.5 * (math.Pi / 180.0)
const upsMaxSouthLat = -79.5 * (math.Pi / 180.0)
const upsMinEastNorth = 0.0
const upsMaxEastNorth = 4000000.0

// NewUPS constructs a UPS converter for the ellipsoid.
func NewUPS(ellipsoid Ellipsoid) (*UPS, error) {
	ellipsoid, err := checkEllipsoid(ellipsoid)
	if err != nil {
		return nil, err
	}

	u := &UPS{ellipsoid: ellipsoid}
	u.polarStereographicMapN, err = NewPolarStereographicScaleFactor(ellipsoid, 0,
		upsScaleFactor, HemisphereNorth, upsFalseEasting, upsFalseNorthing)
	if err != nil {
		return nil, err
	}
	u.polarStereographicMapS, err = NewPolarStereographicScaleFactor(ellipsoid, 0,
		upsScaleFactor, HemisphereSouth, upsFalseEasting, upsFalseNorthing)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// checkUPSLatitude rejects latitudes that belong to UTM.
func checkUPSLatitude(latitude float64) Fault {
	switch {
	case (latitude < -upsMaxLat) || (latitude > upsMaxLat) || math.IsNaN(latitude):
		return ErrLatitude
	case (latitude < 0) && (latitude >= (upsMaxSouthLat + epsilonRadians)):
		return ErrLatitude
	case (latitude >= 0) && (latitude < (upsMinNorthLat - epsilonRadians)):
		return ErrLatitude
	}
	return 0
}

// ConvertFromGeodetic converts a geodetic coordinate to a UPS coordinate. The
// hemisphere follows the sign of the latitude.
func (u *UPS) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) (UPSCoord, error) {
	longitude := geodeticCoordinates.Lng.Radians()
	latitude := geodeticCoordinates.Lat.Radians()

	fault := checkUPSLatitude(latitude)
	if !validLongitude(longitude) {
		fault |= ErrLongitude
	}
	if fault != 0 {
		return UPSCoord{}, fault
	}

	hemisphere := HemisphereNorth
	polarStereographic := u.polarStereographicMapN
	if latitude < 0 {
		hemisphere = HemisphereSouth
		polarStereographic = u.polarStereographicMapS
	}

	mapCoords, err := polarStereographic.ConvertFromGeodetic(geodeticCoordinates)
	if err != nil {
		return UPSCoord{}, err
	}

	return UPSCoord{
		Hemisphere: hemisphere,
		Easting:    mapCoords.Easting,
		Northing:   mapCoords.Northing,
	}, nil
}

// ConvertToGeodetic converts UPS (hemisphere, easting, and northing)
// coordinates to geodetic (latitude and longitude) coordinates. The
// hemisphere is checked against the resulting latitude.
func (u *UPS) ConvertToGeodetic(upsCoordinates UPSCoord) (s2.LatLng, error) {
	var fault Fault
	if !upsCoordinates.Hemisphere.valid() {
		fault |= ErrHemisphere
	}
	fault |= checkUPSEastNorth(upsCoordinates.Easting, upsCoordinates.Northing)
	if fault != 0 {
		return s2.LatLng{}, fault
	}

	polarStereographic := u.polarStereographicMapN
	if upsCoordinates.Hemisphere == HemisphereSouth {
		polarStereographic = u.polarStereographicMapS
	}
	geodeticCoordinates, err := polarStereographic.ConvertToGeodetic(MapCoords{
		Easting:  upsCoordinates.Easting,
		Northing: upsCoordinates.Northing,
	})
	if err != nil {
		return s2.LatLng{}, err
	}

	if checkUPSLatitude(geodeticCoordinates.Lat.Radians()) != 0 {
		return s2.LatLng{}, ErrLatitude
	}
	return geodeticCoordinates, nil
}

func checkUPSEastNorth(easting, northing float64) Fault {
	var fault Fault
	if !(easting >= upsMinEastNorth && easting <= upsMaxEastNorth) {
		fault |= ErrEasting
	}
	if !(northing >= upsMinEastNorth && northing <= upsMaxEastNorth) {
		fault |= ErrNorthing
	}
	return fault
}
