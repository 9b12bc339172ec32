package mgrs

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

const minMGRSNonPolarLat = (-80.0 * (math.Pi / 180.0)) // -80 deg in rad
const maxMGRSNonPolarLat = (84.0 * (math.Pi / 180.0))  //  84 deg in rad

// ZoneDesignation names the grid zone holding a position: a UTM zone and
// latitude band, or a UPS polar designator (A, B, Y or Z) with Zone zero.
type ZoneDesignation struct {
	Zone  int
	Band  byte
	Polar bool
}

func (z ZoneDesignation) String() string {
	if z.Polar {
		return string(z.Band)
	}
	return fmt.Sprintf("%02d%c", z.Zone, z.Band)
}

// SelectZone returns the grid zone designation used by MGRS for the
// position, including the Norway and Svalbard exceptions. Positions north of
// 84°N or south of 80°S get a polar designator.
func SelectZone(geodeticCoordinates s2.LatLng) (ZoneDesignation, error) {
	latitude := geodeticCoordinates.Lat.Radians()
	longitude := geodeticCoordinates.Lng.Radians()
	if f := checkGeodetic(latitude, longitude); f != 0 {
		return ZoneDesignation{}, f
	}

	if !nonPolar(latitude) {
		return ZoneDesignation{Band: polarLetter(latitude, longitude), Polar: true}, nil
	}

	band, err := latitudeLetter(latitude)
	if err != nil {
		return ZoneDesignation{}, err
	}
	zone := irregularZone(latitude, longitude, naturalZone(longitude))
	return ZoneDesignation{Zone: zone, Band: alphabet[band]}, nil
}

// polarLetter picks A/B in the south and Y/Z in the north, the second of
// each pair for the eastern hemisphere.
func polarLetter(latitude, longitude float64) byte {
	east := longitude >= 0 || longitude == -math.Pi
	switch {
	case latitude < 0 && !east:
		return 'A'
	case latitude < 0:
		return 'B'
	case !east:
		return 'Y'
	default:
		return 'Z'
	}
}

// naturalZone maps a longitude to its 6° zone. A longitude exactly on a
// zone boundary belongs to the zone east of it; 180° belongs to zone 1.
func naturalZone(longitude float64) int {
	if longitude < 0 {
		longitude += (2 * math.Pi)
	}

	var zone int
	degrees := (longitude + 1.0e-10) * 180.0 / math.Pi
	if longitude < math.Pi {
		zone = int(31 + degrees/6.0)
	} else {
		zone = int(degrees/6.0 - 29)
	}
	if zone > 60 {
		zone = 1
	}
	return zone
}

// irregularZone applies the special cases over southern Norway (band V) and
// Svalbard (band X) to a natural zone.
func irregularZone(latitude, longitude float64, zone int) int {
	if longitude < 0 {
		longitude += (2 * math.Pi)
	}
	latDegrees := int(latitude * 180.0 / math.Pi)
	longDegrees := int(longitude * 180.0 / math.Pi)

	if (latDegrees > 55) && (latDegrees < 64) && (longDegrees > -1) &&
		(longDegrees < 3) {
		zone = 31
	}
	if (latDegrees > 55) && (latDegrees < 64) && (longDegrees > 2) &&
		(longDegrees < 12) {
		zone = 32
	}
	if (latDegrees > 71) && (longDegrees > -1) && (longDegrees < 9) {
		zone = 31
	}
	if (latDegrees > 71) && (longDegrees > 8) && (longDegrees < 21) {
		zone = 33
	}
	if (latDegrees > 71) && (longDegrees > 20) && (longDegrees < 33) {
		zone = 35
	}
	if (latDegrees > 71) && (longDegrees > 32) && (longDegrees < 42) {
		zone = 37
	}
	return zone
}

// overrideZone accepts a pinned zone up to one zone either side of the
// computed one, zones 1 and 60 being neighbours.
func overrideZone(computed, pinned int) (int, error) {
	switch {
	case pinned == 0:
		return computed, nil
	case pinned < 1 || pinned > 60:
		return 0, ErrZone
	case computed == 1 && pinned == 60, computed == 60 && pinned == 1:
		return pinned, nil
	case computed-1 <= pinned && pinned <= computed+1:
		return pinned, nil
	}
	return 0, ErrZone
}

// checkGeodetic validates latitude and longitude together.
func checkGeodetic(latitude, longitude float64) Fault {
	var fault Fault
	if !(latitude >= -math.Pi/2 && latitude <= math.Pi/2) {
		fault |= ErrLatitude
	}
	if !validLongitude(longitude) {
		fault |= ErrLongitude
	}
	return fault
}

func validLongitude(longitude float64) bool {
	return longitude >= -math.Pi && longitude <= math.Pi
}

// centralMeridian returns the central meridian of a UTM zone in radians.
func centralMeridian(zone int) float64 {
	if zone >= 31 {
		return float64(6*zone-183) * math.Pi / 180
	}
	return float64(6*zone+177) * math.Pi / 180
}
