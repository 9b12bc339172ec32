package mgrs

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// PolarStereographic is an ellipsoidal polar stereographic projection
// defined by its scale factor at the pole.
type PolarStereographic struct {
	ellipsoid            Ellipsoid
	es                   float64 // eccentricity of ellipsoid
	esOverTwo            float64 // es / 2.0
	isSouthernHemisphere bool
	polarTC              float64
	polarK90             float64
	polaraMc             float64 // polar a * mc
	twoPolarA            float64 // 2.0 * polar a

	standardParallel float64 // latitude of true scale, radians
	centralMeridian  float64 // longitude down from the pole, radians
	falseEasting     float64
	falseNorthing    float64
	scaleFactor      float64

	// maximum variance for easting and northing values
	deltaEasting  float64
	deltaNorthing float64
}

// NewPolarStereographicScaleFactor builds a polar stereographic projection
// for one hemisphere from the ellipsoid, the central meridian (radians) and
// the scale factor at the pole.
func NewPolarStereographicScaleFactor(ellipsoid Ellipsoid,
	centralMeridian,
	scaleFactor float64, hemisphere Hemisphere,
	falseEasting,
	falseNorthing float64) (*PolarStereographic, error) {
	ellipsoid, err := checkEllipsoid(ellipsoid)
	if err != nil {
		return nil, err
	}

	const minScaleFactor = 0.1
	const maxScaleFactor = 3.0
	if (scaleFactor < minScaleFactor) || (scaleFactor > maxScaleFactor) {
		return nil, errors.New("mgrs: scale factor out of range")
	}
	var fault Fault
	if (centralMeridian < -math.Pi) || (centralMeridian > 2*math.Pi) {
		fault |= ErrLongitude
	}
	if !hemisphere.valid() {
		fault |= ErrHemisphere
	}
	if fault != 0 {
		return nil, fault
	}

	p := &PolarStereographic{
		ellipsoid:     ellipsoid,
		polarTC:       1.0,
		scaleFactor:   scaleFactor,
		falseEasting:  falseEasting,
		falseNorthing: falseNorthing,
	}

	p.twoPolarA = 2.0 * ellipsoid.SemiMajorAxis
	p.es = ellipsoid.e
	p.esOverTwo = p.es / 2.0

	onePlusEs := 1.0 + p.es
	oneMinusEs := 1.0 - p.es
	p.polarK90 = math.Sqrt(math.Pow(onePlusEs, onePlusEs) * math.Pow(oneMinusEs, oneMinusEs))

	// solve for the sine of the standard parallel giving this scale factor
	const tolerance = 1.0e-15
	count := 30
	sk := 0.0
	skPlus1 := -1 + 2*p.scaleFactor
	for math.Abs(skPlus1-sk) > tolerance && count != 0 {
		sk = skPlus1
		onePlusEsSk := 1.0 + p.es*sk
		oneMinusEsSk := 1.0 - p.es*sk
		skPlus1 = ((2 * p.scaleFactor *
			math.Sqrt(math.Pow(onePlusEsSk, onePlusEs)*
				math.Pow(oneMinusEsSk, oneMinusEs))) /
			p.polarK90) - 1
		count--
	}
	if count == 0 || skPlus1 < -1.0 || skPlus1 > 1.0 {
		return nil, ErrLatitude
	}
	standardParallel := math.Asin(skPlus1)

	if centralMeridian > math.Pi {
		centralMeridian -= 2 * math.Pi
	}
	p.isSouthernHemisphere = hemisphere == HemisphereSouth
	p.standardParallel = standardParallel
	if p.isSouthernHemisphere {
		p.centralMeridian = -centralMeridian
	} else {
		p.centralMeridian = centralMeridian
	}

	if math.Abs(math.Abs(p.standardParallel)-math.Pi/2) > 1.0e-10 {
		sinolat := math.Sin(p.standardParallel)
		essin := p.es * sinolat
		powEs := p.polarPow(essin)
		cosolat := math.Cos(p.standardParallel)
		mc := cosolat / math.Sqrt(1.0-essin*essin)
		p.polaraMc = ellipsoid.SemiMajorAxis * mc
		p.polarTC = math.Tan(math.Pi/4-p.standardParallel/2.0) / powEs
	}

	// the equator bounds the projected area
	rho := p.rho(0)
	if !finite(rho) {
		return nil, ErrEasting | ErrNorthing
	}
	p.deltaNorthing = rho * 1.01
	p.deltaEasting = p.deltaNorthing

	return p, nil
}

// rho is the distance on the plane from the pole to a latitude in the
// projection's own hemisphere (latitude taken positive).
func (p *PolarStereographic) rho(latitude float64) float64 {
	slat := math.Sin(latitude)
	essin := p.es * slat
	powEs := p.polarPow(essin)
	t := math.Tan(math.Pi/4-latitude/2.0) / powEs

	if math.Abs(math.Abs(p.standardParallel)-math.Pi/2) > 1.0e-10 {
		return p.polaraMc * t / p.polarTC
	}
	return p.twoPolarA * t / p.polarK90
}

// ConvertFromGeodetic converts geodetic coordinates (latitude and longitude) to
// Polar Stereographic coordinates (easting and northing). A latitude in the
// other hemisphere fails with ErrLatitude.
func (p *PolarStereographic) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) (MapCoords, error) {
	longitude := geodeticCoordinates.Lng.Radians()
	latitude := geodeticCoordinates.Lat.Radians()

	var fault Fault
	if (latitude < -math.Pi/2) || (latitude > math.Pi/2) || math.IsNaN(latitude) {
		fault |= ErrLatitude
	} else if (latitude < 0) && !p.isSouthernHemisphere {
		fault |= ErrLatitude
	} else if (latitude > 0) && p.isSouthernHemisphere {
		fault |= ErrLatitude
	}
	if (longitude < -math.Pi) || (longitude > 2*math.Pi) || math.IsNaN(longitude) {
		fault |= ErrLongitude
	}
	if fault != 0 {
		return MapCoords{}, fault
	}

	if math.Abs(math.Abs(latitude)-math.Pi/2) < 1.0e-10 {
		return MapCoords{Easting: p.falseEasting, Northing: p.falseNorthing}, nil
	}

	if p.isSouthernHemisphere {
		longitude *= -1.0
		latitude *= -1.0
	}
	dlam := longitude - p.centralMeridian
	if dlam > math.Pi {
		dlam -= 2 * math.Pi
	}
	if dlam < -math.Pi {
		dlam += 2 * math.Pi
	}

	rho := p.rho(latitude)

	var easting, northing float64
	if p.isSouthernHemisphere {
		easting = -(rho*math.Sin(dlam) - p.falseEasting)
		northing = rho*math.Cos(dlam) + p.falseNorthing
	} else {
		easting = rho*math.Sin(dlam) + p.falseEasting
		northing = -rho*math.Cos(dlam) + p.falseNorthing
	}
	if !finite(easting) || !finite(northing) {
		return MapCoords{}, ErrEasting | ErrNorthing
	}
	return MapCoords{Easting: easting, Northing: northing}, nil
}

// ConvertToGeodetic converts Polar Stereographic coordinates (easting and
// northing) to geodetic coordinates (latitude and longitude).
func (p *PolarStereographic) ConvertToGeodetic(mapProjectionCoordinates MapCoords) (s2.LatLng, error) {
	easting := mapProjectionCoordinates.Easting
	northing := mapProjectionCoordinates.Northing

	var fault Fault
	if !(easting >= p.falseEasting-p.deltaEasting && easting <= p.falseEasting+p.deltaEasting) {
		fault |= ErrEasting
	}
	if !(northing >= p.falseNorthing-p.deltaNorthing && northing <= p.falseNorthing+p.deltaNorthing) {
		fault |= ErrNorthing
	}
	if fault != 0 {
		return s2.LatLng{}, fault
	}

	dy := northing - p.falseNorthing
	dx := easting - p.falseEasting

	// radius of point with origin of false easting, false northing
	rho := math.Hypot(dx, dy)
	deltaRadius := math.Hypot(p.deltaEasting, p.deltaNorthing)
	if rho > deltaRadius {
		return s2.LatLng{}, ErrEasting | ErrNorthing
	}

	var latitude, longitude float64
	if (dy == 0.0) && (dx == 0.0) {
		latitude = math.Pi / 2
		longitude = p.centralMeridian
	} else {
		if p.isSouthernHemisphere {
			dy *= -1.0
			dx *= -1.0
		}

		var t float64
		if math.Abs(math.Abs(p.standardParallel)-math.Pi/2) > 1.0e-10 {
			t = rho * p.polarTC / p.polaraMc
		} else {
			t = rho * p.polarK90 / p.twoPolarA
		}
		phi := math.Pi/2 - 2.0*math.Atan(t)
		tempPhi := 0.0
		for i := 0; i < 30 && math.Abs(phi-tempPhi) > 1.0e-10; i++ {
			tempPhi = phi
			sinPhi := math.Sin(phi)
			essin := p.es * sinPhi
			powEs := p.polarPow(essin)
			phi = math.Pi/2 - 2.0*math.Atan(t*powEs)
		}
		latitude = phi
		longitude = p.centralMeridian + math.Atan2(dx, -dy)

		if longitude > math.Pi {
			longitude -= 2 * math.Pi
		} else if longitude < -math.Pi {
			longitude += 2 * math.Pi
		}

		// force distorted values to the poles and the antimeridian
		latitude = math.Max(-math.Pi/2, math.Min(math.Pi/2, latitude))
		longitude = math.Max(-math.Pi, math.Min(math.Pi, longitude))
	}
	if p.isSouthernHemisphere {
		latitude *= -1.0
		longitude *= -1.0
	}
	if !finite(latitude) || !finite(longitude) {
		return s2.LatLng{}, ErrLatitude | ErrLongitude
	}

	return s2.LatLng{Lat: s1.Angle(latitude), Lng: s1.Angle(longitude)}, nil
}

func (p *PolarStereographic) polarPow(esSin float64) float64 {
	return math.Pow((1.0-esSin)/(1.0+esSin), p.esOverTwo)
}
