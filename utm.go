package mgrs

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// UTMCoord is a UTM coordinate
type UTMCoord struct {
	Zone       int
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
}

// UTM is a UTM coordinate converter holding one Transverse Mercator
// projection per zone.
type UTM struct {
	ellipsoid             Ellipsoid
	transverseMercatorMap [61]*TransverseMercator
}

const utmMinLat = ((-80.5 * math.Pi) / 180.0) // -80.5 degrees in radians
const utmMaxLat = ((84.5 * math.Pi) / 180.0)  //  84.5 degrees in radians
const utmMinEasting = 100000.0
const utmMaxEasting = 900000.0
const utmMinNorthing = 0.0
const utmMaxNorthing = 10000000.0
const utmSouthFalseNorthing = 10000000.0
const utmScaleFactor = 0.9996
const utmFalseEasting = 500000.0

// utmMaxDeltaLong allows a zone pinned one zone away from the natural one.
const utmMaxDeltaLong = (9.0 * math.Pi / 180.0) + epsilonRadians

// NewUTM constructs a UTM converter for the ellipsoid.
func NewUTM(ellipsoid Ellipsoid) (*UTM, error) {
	ellipsoid, err := checkEllipsoid(ellipsoid)
	if err != nil {
		return nil, err
	}
	u := &UTM{ellipsoid: ellipsoid}

	for zone := 1; zone <= 60; zone++ {
		tm, err := NewTransverseMercator(ellipsoid, centralMeridian(zone), 0,
			utmFalseEasting, 0, utmScaleFactor)
		if err != nil {
			return nil, err
		}
		tm.maxDeltaLong = utmMaxDeltaLong
		u.transverseMercatorMap[zone] = tm
	}
	return u, nil
}

// ConvertFromGeodetic converts geodetic (latitude and longitude) coordinates
// to UTM projection (zone, hemisphere, easting and northing) coordinates.
// utmZoneOverride pins the zone, 0 selects it from the position; a pin more
// than one zone away from the computed zone fails with ErrZone.
func (u *UTM) ConvertFromGeodetic(geodeticCoordinates s2.LatLng, utmZoneOverride int) (UTMCoord, error) {
	longitude := geodeticCoordinates.Lng.Radians()
	latitude := geodeticCoordinates.Lat.Radians()

	var fault Fault
	if !(latitude >= utmMinLat-epsilonRadians && latitude < utmMaxLat+epsilonRadians) {
		fault |= ErrLatitude
	}
	if !validLongitude(longitude) {
		fault |= ErrLongitude
	}
	if utmZoneOverride < 0 || utmZoneOverride > 60 {
		fault |= ErrZone
	}
	if fault != 0 {
		return UTMCoord{}, fault
	}

	if (latitude > -1.0e-9) && (latitude < 0) {
		latitude = 0.0
	}

	zone := naturalZone(longitude)
	var err error
	if utmZoneOverride != 0 {
		zone, err = overrideZone(zone, utmZoneOverride)
		if err != nil {
			return UTMCoord{}, err
		}
	} else {
		zone = irregularZone(latitude, longitude, zone)
	}

	return u.convertInZone(latitude, longitude, zone)
}

// convertInZone projects a validated position in the given zone.
func (u *UTM) convertInZone(latitude, longitude float64, zone int) (UTMCoord, error) {
	hemisphere := HemisphereNorth
	falseNorthing := 0.0
	if latitude < 0 {
		hemisphere = HemisphereSouth
		falseNorthing = utmSouthFalseNorthing
	}

	mapCoords, err := u.transverseMercatorMap[zone].ConvertFromGeodetic(
		s2.LatLng{Lat: s1.Angle(latitude), Lng: s1.Angle(longitude)})
	if err != nil {
		return UTMCoord{}, err
	}
	easting := mapCoords.Easting
	northing := mapCoords.Northing + falseNorthing

	if fault := checkUTMEastNorth(easting, northing); fault != 0 {
		return UTMCoord{}, fault
	}

	return UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
	}, nil
}

// ConvertToGeodetic converts UTM projection (zone, hemisphere, easting and
// northing) coordinates to geodetic (latitude and longitude) coordinates.
func (u *UTM) ConvertToGeodetic(utmCoordinates UTMCoord) (s2.LatLng, error) {
	if fault := checkUTM(utmCoordinates); fault != 0 {
		return s2.LatLng{}, fault
	}

	falseNorthing := 0.0
	if utmCoordinates.Hemisphere == HemisphereSouth {
		falseNorthing = utmSouthFalseNorthing
	}

	geodeticCoordinates, err := u.transverseMercatorMap[utmCoordinates.Zone].ConvertToGeodetic(MapCoords{
		Easting:  utmCoordinates.Easting,
		Northing: utmCoordinates.Northing - falseNorthing,
	})
	if err != nil {
		return s2.LatLng{}, err
	}

	latitude := geodeticCoordinates.Lat.Radians()
	if (latitude < (utmMinLat - epsilonRadians)) ||
		(latitude >= (utmMaxLat + epsilonRadians)) {
		return s2.LatLng{}, ErrLatitude
	}
	return geodeticCoordinates, nil
}

// checkUTM validates every field of a UTM coordinate at once.
func checkUTM(c UTMCoord) Fault {
	var fault Fault
	if (c.Zone < 1) || (c.Zone > 60) {
		fault |= ErrZone
	}
	if !c.Hemisphere.valid() {
		fault |= ErrHemisphere
	}
	return fault | checkUTMEastNorth(c.Easting, c.Northing)
}

func checkUTMEastNorth(easting, northing float64) Fault {
	var fault Fault
	if !(easting >= utmMinEasting && easting <= utmMaxEasting) {
		fault |= ErrEasting
	}
	if !(northing >= utmMinNorthing && northing <= utmMaxNorthing) {
		fault |= ErrNorthing
	}
	return fault
}
