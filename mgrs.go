// Package mgrs converts between geodetic coordinates, UTM/UPS grid
// coordinates and Military Grid Reference System strings on a selectable
// reference ellipsoid.
//
// All conversions are pure functions of their inputs. A Converter is
// immutable once built and may be shared freely between goroutines.
// Failures are reported as a Fault, a bitmask of every validation problem
// found during the call:
//
//	s, err := mgrs.GeodeticToMGRS(lat, lon, 5)
//	if errors.Is(err, mgrs.ErrLatitude) {
//		...
//	}
package mgrs

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/s2"
)

const mgrsMaxPrecision = 5 // Maximum precision of easting & northing

// Converter converts to and from MGRS strings on one ellipsoid.
type Converter struct {
	ellipsoid Ellipsoid
	utm       *UTM
	ups       *UPS
	logger    *log.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithEllipsoid selects the ellipsoid, WGS84 when not given.
func WithEllipsoid(e Ellipsoid) Option {
	return func(c *Converter) {
		c.ellipsoid = e
	}
}

// WithLogger sets the logger receiving conversion warnings. Warnings are
// discarded by default.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConverter builds a converter. An invalid ellipsoid fails with ErrAxis
// and/or ErrFlattening.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		ellipsoid: WGS84,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.ellipsoid, err = checkEllipsoid(c.ellipsoid); err != nil {
		return nil, err
	}
	if c.utm, err = NewUTM(c.ellipsoid); err != nil {
		return nil, err
	}
	if c.ups, err = NewUPS(c.ellipsoid); err != nil {
		return nil, err
	}

	if !c.ellipsoid.accuracyTested() {
		c.logger.Warn("eccentricity is outside the range where series accuracy has been tested",
			"inverse_flattening", c.ellipsoid.InverseFlattening())
	}
	return c, nil
}

// Ellipsoid returns the converter's ellipsoid.
func (c *Converter) Ellipsoid() Ellipsoid { return c.ellipsoid }

// UTM returns the UTM projection sharing the converter's ellipsoid.
func (c *Converter) UTM() *UTM { return c.utm }

// UPS returns the UPS projection sharing the converter's ellipsoid.
func (c *Converter) UPS() *UPS { return c.ups }

func checkPrecision(precision int) Fault {
	if precision < 0 || precision > mgrsMaxPrecision {
		return ErrPrecision
	}
	return 0
}

func nonPolar(latitude float64) bool {
	return latitude >= minMGRSNonPolarLat-epsilonRadians &&
		latitude < maxMGRSNonPolarLat+epsilonRadians
}

// ConvertFromGeodetic converts Geodetic (latitude and longitude) coordinates
// to an MGRS coordinate string. Positions from 80°S up to 84°N go through
// UTM, the polar caps through UPS.
func (c *Converter) ConvertFromGeodetic(geodeticCoordinates s2.LatLng, precision int) (string, error) {
	latitude := geodeticCoordinates.Lat.Radians()
	longitude := geodeticCoordinates.Lng.Radians()

	if fault := checkGeodetic(latitude, longitude) | checkPrecision(precision); fault != 0 {
		return "", fault
	}

	if nonPolar(latitude) {
		utmCoordinates, err := c.utm.ConvertFromGeodetic(geodeticCoordinates, 0)
		if err != nil {
			return "", err
		}
		return c.fromUTM(utmCoordinates, latitude, longitude, precision, false)
	}

	upsCoordinates, err := c.ups.ConvertFromGeodetic(geodeticCoordinates)
	if err != nil {
		return "", err
	}
	return c.fromUPS(upsCoordinates, precision)
}

// ConvertFromGeodeticInZone encodes a position in a pinned UTM zone, which
// may be the natural zone or one of its neighbours. The Norway and Svalbard
// exceptions are not applied. Polar positions fail with ErrLatitude.
func (c *Converter) ConvertFromGeodeticInZone(geodeticCoordinates s2.LatLng, zone, precision int) (string, error) {
	latitude := geodeticCoordinates.Lat.Radians()
	longitude := geodeticCoordinates.Lng.Radians()

	fault := checkGeodetic(latitude, longitude) | checkPrecision(precision)
	if zone < 1 || zone > 60 {
		fault |= ErrZone
	}
	if fault == 0 && !nonPolar(latitude) {
		fault |= ErrLatitude
	}
	if fault != 0 {
		return "", fault
	}

	utmCoordinates, err := c.utm.ConvertFromGeodetic(geodeticCoordinates, zone)
	if err != nil {
		return "", err
	}
	return c.fromUTM(utmCoordinates, latitude, longitude, precision, true)
}

// ConvertFromUTM converts UTM (zone, hemisphere, easting, and northing)
// coordinates to an MGRS coordinate string. The point is re-expressed in its
// natural zone when it lies outside the given one.
func (c *Converter) ConvertFromUTM(utmCoordinates UTMCoord, precision int) (string, error) {
	if fault := checkUTM(utmCoordinates) | checkPrecision(precision); fault != 0 {
		return "", fault
	}

	geodeticCoordinates, err := c.utm.ConvertToGeodetic(utmCoordinates)
	if err != nil {
		return "", err
	}

	latitude := geodeticCoordinates.Lat.Radians()
	if nonPolar(latitude) {
		return c.fromUTM(utmCoordinates, latitude, geodeticCoordinates.Lng.Radians(), precision, false)
	}

	upsCoordinates, err := c.ups.ConvertFromGeodetic(geodeticCoordinates)
	if err != nil {
		return "", err
	}
	return c.fromUPS(upsCoordinates, precision)
}

// ConvertFromUPS converts UPS (hemisphere, easting, and northing)
// coordinates to an MGRS coordinate string. Points outside the polar caps
// are encoded through UTM.
func (c *Converter) ConvertFromUPS(upsCoordinates UPSCoord, precision int) (string, error) {
	fault := checkUPSEastNorth(upsCoordinates.Easting, upsCoordinates.Northing) | checkPrecision(precision)
	if !upsCoordinates.Hemisphere.valid() {
		fault |= ErrHemisphere
	}
	if fault != 0 {
		return "", fault
	}

	geodeticCoordinates, err := c.ups.ConvertToGeodetic(upsCoordinates)
	if err != nil {
		return "", err
	}

	latitude := geodeticCoordinates.Lat.Radians()
	if !nonPolar(latitude) {
		return c.fromUPS(upsCoordinates, precision)
	}

	utmCoordinates, err := c.utm.ConvertFromGeodetic(geodeticCoordinates, 0)
	if err != nil {
		return "", err
	}
	return c.fromUTM(utmCoordinates, latitude, geodeticCoordinates.Lng.Radians(), precision, false)
}

// ConvertToGeodetic converts an MGRS coordinate string to Geodetic (latitude
// and longitude) coordinates. The result is the south-west corner of the
// grid cell named by the string.
func (c *Converter) ConvertToGeodetic(mgrs string) (s2.LatLng, error) {
	ref, err := ParseReference(mgrs)
	if err != nil {
		return s2.LatLng{}, err
	}

	if !ref.Polar() {
		utmCoordinates, err := c.toUTM(ref)
		if err != nil {
			return s2.LatLng{}, err
		}
		return c.utm.ConvertToGeodetic(utmCoordinates)
	}

	upsCoordinates, err := c.toUPS(ref)
	if err != nil {
		return s2.LatLng{}, err
	}
	return c.ups.ConvertToGeodetic(upsCoordinates)
}

// ConvertToUTM converts an MGRS coordinate string to UTM coordinates. Polar
// strings are accepted when their position lies within UTM's latitude limits.
func (c *Converter) ConvertToUTM(mgrs string) (UTMCoord, error) {
	ref, err := ParseReference(mgrs)
	if err != nil {
		return UTMCoord{}, err
	}

	if !ref.Polar() {
		return c.toUTM(ref)
	}

	upsCoordinates, err := c.toUPS(ref)
	if err != nil {
		return UTMCoord{}, err
	}
	geodeticCoordinates, err := c.ups.ConvertToGeodetic(upsCoordinates)
	if err != nil {
		return UTMCoord{}, err
	}
	return c.utm.ConvertFromGeodetic(geodeticCoordinates, 0)
}

// ConvertToUPS converts an MGRS coordinate string to UPS coordinates. UTM
// strings are accepted when their position lies within UPS's latitude limits.
func (c *Converter) ConvertToUPS(mgrs string) (UPSCoord, error) {
	ref, err := ParseReference(mgrs)
	if err != nil {
		return UPSCoord{}, err
	}

	if ref.Polar() {
		return c.toUPS(ref)
	}

	utmCoordinates, err := c.toUTM(ref)
	if err != nil {
		return UPSCoord{}, err
	}
	geodeticCoordinates, err := c.utm.ConvertToGeodetic(utmCoordinates)
	if err != nil {
		return UPSCoord{}, err
	}
	return c.ups.ConvertFromGeodetic(geodeticCoordinates)
}

// computeScale returns the size in meters of a grid cell at a precision.
func computeScale(precision int) float64 {
	return math.Pow10(mgrsMaxPrecision - precision)
}
