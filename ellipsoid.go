package mgrs

import (
	"math"
	"sort"

	"github.com/tidwall/geodesic"
)

// Ellipsoid is a reference ellipsoid with the constants derived from its
// semi-major axis and flattening. Ellipsoid values are immutable and may be
// shared between goroutines.
type Ellipsoid struct {
	SemiMajorAxis float64 // a, meters
	Flattening    float64 // f
	Code          string  // two letter code, empty for user defined ellipsoids
	Name          string

	e2  float64 // first eccentricity squared, 2f - f*f
	ep2 float64 // second eccentricity squared, e2 / (1 - e2)
	e   float64 // first eccentricity
	n   float64 // third flattening, f / (2 - f)

	geod *geodesic.Ellipsoid
}

// WGS84 is the default ellipsoid.
var WGS84 = mustEllipsoid("WE")

var ellipsoidTable = map[string]struct {
	name string
	a    float64
	invF float64
}{
	"AA": {"Airy 1830", 6377563.396, 299.3249646},
	"AM": {"Modified Airy", 6377340.189, 299.3249646},
	"AN": {"Australian National", 6378160.0, 298.25},
	"BN": {"Bessel 1841 (Namibia)", 6377483.865, 299.1528128},
	"BR": {"Bessel 1841", 6377397.155, 299.1528128},
	"CC": {"Clarke 1866", 6378206.4, 294.9786982},
	"CD": {"Clarke 1880", 6378249.145, 293.465},
	"CG": {"Clarke 1880 (IGN)", 6378249.2, 293.4660213},
	"EA": {"Everest (India 1830)", 6377276.345, 300.8017},
	"EB": {"Everest (Sabah & Sarawak)", 6377298.556, 300.8017},
	"EC": {"Everest (India 1956)", 6377301.243, 300.8017},
	"ED": {"Everest (W. Malaysia 1969)", 6377295.664, 300.8017},
	"EE": {"Everest (W. Malaysia & Singapore 1948)", 6377304.063, 300.8017},
	"FA": {"Modified Fischer 1960", 6378155.0, 298.3},
	"HE": {"Helmert 1906", 6378200.0, 298.3},
	"HO": {"Hough 1960", 6378270.0, 297.0},
	"ID": {"Indonesian 1974", 6378160.0, 298.247},
	"IN": {"International 1924", 6378388.0, 297.0},
	"KA": {"Krassovsky 1940", 6378245.0, 298.3},
	"RF": {"GRS 1980", 6378137.0, 298.257222101},
	"SA": {"South American 1969", 6378160.0, 298.25},
	"WD": {"WGS 72", 6378135.0, 298.26},
	"WE": {"WGS 84", 6378137.0, 298.257223563},
	"WO": {"War Office 1924", 6378300.58, 296.0},
}

// NewEllipsoid derives a user defined ellipsoid. The semi-major axis must be
// positive and the flattening must lie strictly between zero and one; both
// faults are reported together.
func NewEllipsoid(semiMajorAxis, flattening float64) (Ellipsoid, error) {
	return newEllipsoid(semiMajorAxis, flattening, "", "")
}

// EllipsoidByCode returns one of the built in reference ellipsoids, for
// example "WE" for WGS 84 or "CC" for Clarke 1866.
func EllipsoidByCode(code string) (Ellipsoid, bool) {
	def, ok := ellipsoidTable[code]
	if !ok {
		return Ellipsoid{}, false
	}
	e, err := newEllipsoid(def.a, 1/def.invF, code, def.name)
	if err != nil {
		return Ellipsoid{}, false
	}
	return e, true
}

// EllipsoidCodes lists the codes accepted by EllipsoidByCode in sorted order.
func EllipsoidCodes() []string {
	codes := make([]string, 0, len(ellipsoidTable))
	for c := range ellipsoidTable {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func newEllipsoid(a, f float64, code, name string) (Ellipsoid, error) {
	var fault Fault
	if !(a > 0) || math.IsInf(a, 0) {
		fault |= ErrAxis
	}
	if !(f > 0 && f < 1) {
		fault |= ErrFlattening
	}
	if fault != 0 {
		return Ellipsoid{}, fault
	}

	e2 := 2*f - f*f
	return Ellipsoid{
		SemiMajorAxis: a,
		Flattening:    f,
		Code:          code,
		Name:          name,
		e2:            e2,
		ep2:           e2 / (1 - e2),
		e:             math.Sqrt(e2),
		n:             f / (2 - f),
		geod:          geodesic.NewEllipsoid(a, f),
	}, nil
}

func mustEllipsoid(code string) Ellipsoid {
	e, ok := EllipsoidByCode(code)
	if !ok {
		panic("unknown built in ellipsoid " + code)
	}
	return e
}

// EccentricitySquared returns e², the first eccentricity squared.
func (e Ellipsoid) EccentricitySquared() float64 { return e.e2 }

// SecondEccentricitySquared returns e'² = e² / (1 - e²).
func (e Ellipsoid) SecondEccentricitySquared() float64 { return e.ep2 }

// InverseFlattening returns 1/f.
func (e Ellipsoid) InverseFlattening() float64 { return 1 / e.Flattening }

// SemiMinorAxis returns b = a(1 - f).
func (e Ellipsoid) SemiMinorAxis() float64 { return e.SemiMajorAxis * (1 - e.Flattening) }

// valid reports whether e was built by NewEllipsoid or EllipsoidByCode.
func (e Ellipsoid) valid() bool { return e.geod != nil }

// alPattern reports whether the 100km row letters of this ellipsoid use the
// older "AL" offset instead of "AA".
func (e Ellipsoid) alPattern() bool {
	switch e.Code {
	case "CC", "CD", "BR", "BN":
		return true
	}
	return false
}

// accuracyTested reports whether the Transverse Mercator series has been
// verified for this flattening.
func (e Ellipsoid) accuracyTested() bool {
	invF := e.InverseFlattening()
	return invF >= 290 && invF <= 301
}
