package mgrs

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const nTerms = 6

// MapCoords is an easting/northing pair in meters on a projection plane.
type MapCoords struct {
	Easting  float64
	Northing float64
}

// TransverseMercator provides conversions between Geodetic coordinates
// (latitude and longitude) and Transverse Mercator projection coordinates
// (easting and northing), using the Krüger series to sixth order in the
// third flattening.
type TransverseMercator struct {
	ellipsoid Ellipsoid

	k0R4    float64 // scale factor * R4
	k0R4inv float64 // 1 / (scale factor * R4)

	aCoeff [8]float64 // chi -> omega
	bCoeff [8]float64 // omega -> chi

	originLat     float64
	originLong    float64
	falseEasting  float64
	falseNorthing float64
	scaleFactor   float64

	// projected offset of the origin, computed once
	originEasting  float64
	originNorthing float64

	// maximum variance for easting and northing values
	deltaEasting  float64
	deltaNorthing float64

	// maxDeltaLong bounds the distance from the central meridian; zero
	// leaves only the general validity test.
	maxDeltaLong float64
}

// knownCoefficients holds precomputed series coefficients for the built in
// ellipsoids, keyed by ellipsoid code.
var knownCoefficients = []struct {
	codes []string
	a     [6]float64
	b     [6]float64
}{
	{[]string{"AA", "AM"},
		[6]float64{8.3474517669594013740e-04, 7.554352936725572895e-07, 1.18487391005135489e-09, 2.3946872955703565e-12, 5.610633978440270e-15, 1.44858956458553e-17},
		[6]float64{-8.3474551646761162264e-04, -5.863630361809676570e-08, -1.65562038746920803e-10, -2.1340335537652749e-13, -3.720760760132477e-16, -7.08304328877781e-19}},
	{[]string{"EA", "EB", "EC", "ED", "EE"},
		[6]float64{8.3064943111192510534e-04, 7.480375027595025021e-07, 1.16750772278215999e-09, 2.3479972304395461e-12, 5.474212231879573e-15, 1.40642257446745e-17},
		[6]float64{-8.3064976590443772201e-04, -5.805953517555717859e-08, -1.63133251663416522e-10, -2.0923797199593389e-13, -3.630200927775259e-16, -6.87666654919219e-19}},
	{[]string{"BN", "BR"},
		[6]float64{8.3522527226849818552e-04, 7.563048340614894422e-07, 1.18692075307408346e-09, 2.4002054791393298e-12, 5.626801597980756e-15, 1.45360057224474e-17},
		[6]float64{-8.3522561262703079182e-04, -5.870409978661008580e-08, -1.65848307463131468e-10, -2.1389565927064571e-13, -3.731493368666479e-16, -7.10756898071999e-19}},
	{[]string{"KA", "HE", "FA"},
		[6]float64{8.3761175713442343106e-04, 7.606346200814720197e-07, 1.19713032035541037e-09, 2.4277772986483520e-12, 5.707722772225013e-15, 1.47872454335773e-17},
		[6]float64{-8.3761210042019176501e-04, -5.904169154078546237e-08, -1.67276212891429215e-10, -2.1635549847939549e-13, -3.785212121016612e-16, -7.23053625983667e-19}},
	{[]string{"WD"},
		[6]float64{8.3772481044362217923e-04, 7.608400388863560936e-07, 1.19761541904924067e-09, 2.4290893081322466e-12, 5.711579173743133e-15, 1.47992364667635e-17},
		[6]float64{-8.3772515386847544554e-04, -5.905770828762463028e-08, -1.67344058948464124e-10, -2.1647255130188214e-13, -3.787772179729998e-16, -7.23640523525528e-19}},
	{[]string{"WE"},
		[6]float64{8.3773182062446983032e-04, 7.608527773572489156e-07, 1.19764550324249210e-09, 2.4291706803973131e-12, 5.711818369154105e-15, 1.47999802705262e-17},
		[6]float64{-8.3773216405794867707e-04, -5.905870152220365181e-08, -1.67348266534382493e-10, -2.1647981104903862e-13, -3.787930968839601e-16, -7.23676928796690e-19}},
	{[]string{"RF"},
		[6]float64{8.3773182472855134012e-04, 7.608527848149655006e-07, 1.19764552085530681e-09, 2.4291707280369697e-12, 5.711818509192422e-15, 1.47999807059922e-17},
		[6]float64{-8.3773216816203523672e-04, -5.905870210369121594e-08, -1.67348268997717031e-10, -2.1647981529928124e-13, -3.787931061803592e-16, -7.23676950110361e-19}},
	{[]string{"SA", "AN"},
		[6]float64{8.3775209887947194075e-04, 7.608896263599627157e-07, 1.19773253021831769e-09, 2.4294060763606098e-12, 5.712510331613028e-15, 1.48021320370432e-17},
		[6]float64{-8.3775244233790270051e-04, -5.906157468586898015e-08, -1.67360438158764851e-10, -2.1650081225048788e-13, -3.788390325953455e-16, -7.23782246429908e-19}},
	{[]string{"ID"},
		[6]float64{8.3776052087969078729e-04, 7.609049308144604484e-07, 1.19776867565343872e-09, 2.4295038464530901e-12, 5.712797738386076e-15, 1.48030257891140e-17},
		[6]float64{-8.3776086434848497443e-04, -5.906276799395007586e-08, -1.67365493472742884e-10, -2.1650953495573773e-13, -3.788581120060625e-16, -7.23825990889693e-19}},
	{[]string{"IN", "HO"},
		[6]float64{8.4127599100356448089e-04, 7.673066923431950296e-07, 1.21291995794281190e-09, 2.4705731165688123e-12, 5.833780550286833e-15, 1.51800420867708e-17},
		[6]float64{-8.4127633881644851945e-04, -5.956193574768780571e-08, -1.69484573979154433e-10, -2.2017363465021880e-13, -3.868896221495780e-16, -7.42279219864412e-19}},
	{[]string{"WO"},
		[6]float64{8.4411652150600103279e-04, 7.724989750172583427e-07, 1.22525529789972041e-09, 2.5041361775549209e-12, 5.933026083631383e-15, 1.54904908794521e-17},
		[6]float64{-8.4411687285559594196e-04, -5.996681687064322548e-08, -1.71209836918814857e-10, -2.2316811233502163e-13, -3.934782433323038e-16, -7.57474665717687e-19}},
	{[]string{"CC"},
		[6]float64{8.4703742793654652315e-04, 7.778564517658115212e-07, 1.23802665917879731e-09, 2.5390045684252928e-12, 6.036484469753319e-15, 1.58152259295850e-17},
		[6]float64{-8.4703778294785813001e-04, -6.038459874600183555e-08, -1.72996106059227725e-10, -2.2627911073545072e-13, -4.003466873888566e-16, -7.73369749524777e-19}},
	{[]string{"CG"},
		[6]float64{8.5140099460764136776e-04, 7.858945456038187774e-07, 1.25727085106103462e-09, 2.5917718627340128e-12, 6.193726879043722e-15, 1.63109098395549e-17},
		[6]float64{-8.5140135513650084564e-04, -6.101145475063033499e-08, -1.75687742410879760e-10, -2.3098718484594067e-13, -4.107860472919190e-16, -7.97633133452512e-19}},
	{[]string{"CD"},
		[6]float64{8.5140395445291970541e-04, 7.859000119464140978e-07, 1.25728397182445579e-09, 2.5918079321459932e-12, 6.193834639108787e-15, 1.63112504092335e-17},
		[6]float64{-8.5140431498554106268e-04, -6.101188106187092184e-08, -1.75689577596504470e-10, -2.3099040312610703e-13, -4.107932016207395e-16, -7.97649804397335e-19}},
}

// seriesA and seriesB give the coefficients a2..a16 and b2..b16 as
// polynomials in n, column j holding the factor of n^(j+1).
var seriesA = [8][8]float64{
	{1.0 / 2, -2.0 / 3, 5.0 / 16, 41.0 / 180, -127.0 / 288, 7891.0 / 37800, 72161.0 / 387072, -18975107.0 / 50803200},
	{0, 13.0 / 48, -3.0 / 5, 557.0 / 1440, 281.0 / 630, -1983433.0 / 1935360, 13769.0 / 28800, 148003883.0 / 174182400},
	{0, 0, 61.0 / 240, -103.0 / 140, 15061.0 / 26880, 167603.0 / 181440, -67102379.0 / 29030400, 79682431.0 / 79833600},
	{0, 0, 0, 49561.0 / 161280, -179.0 / 168, 6601661.0 / 7257600, 97445.0 / 49896, -40176129013.0 / 7664025600},
	{0, 0, 0, 0, 34729.0 / 80640, -3418889.0 / 1995840, 14644087.0 / 9123840, 2605413599.0 / 622702080},
	{0, 0, 0, 0, 0, 212378941.0 / 319334400, -30705481.0 / 10378368, 175214326799.0 / 58118860800},
	{0, 0, 0, 0, 0, 0, 1522256789.0 / 1383782400, -16759934899.0 / 3113510400},
	{0, 0, 0, 0, 0, 0, 0, 1424729850961.0 / 743921418240},
}

var seriesB = [8][8]float64{
	{-1.0 / 2, 2.0 / 3, -37.0 / 96, 1.0 / 360, 81.0 / 512, -96199.0 / 604800, 5406467.0 / 38707200, -7944359.0 / 67737600},
	{0, -1.0 / 48, -1.0 / 15, 437.0 / 1440, -46.0 / 105, 1118711.0 / 3870720, -51841.0 / 1209600, -24749483.0 / 348364800},
	{0, 0, -17.0 / 480, 37.0 / 840, 209.0 / 4480, -5569.0 / 90720, -9261899.0 / 58060800, 6457463.0 / 17740800},
	{0, 0, 0, -4397.0 / 161280, 11.0 / 504, 830251.0 / 7257600, -466511.0 / 2494800, -324154477.0 / 7664025600},
	{0, 0, 0, 0, -4583.0 / 161280, 108847.0 / 3991680, 8005831.0 / 63866880, -22894433.0 / 124540416},
	{0, 0, 0, 0, 0, -20648693.0 / 638668800, 16363163.0 / 518918400, 2204645983.0 / 12915302400},
	{0, 0, 0, 0, 0, 0, -219941297.0 / 5535129600, 497323811.0 / 12454041600},
	{0, 0, 0, 0, 0, 0, 0, -191773887257.0 / 3719607091200},
}

// NewTransverseMercator constructs a Transverse Mercator projection on the
// given ellipsoid. Angles are in radians.
func NewTransverseMercator(ellipsoid Ellipsoid, centralMeridian, originLatitude,
	falseEasting, falseNorthing, scaleFactor float64) (*TransverseMercator, error) {
	ellipsoid, err := checkEllipsoid(ellipsoid)
	if err != nil {
		return nil, err
	}

	var fault Fault
	if (originLatitude < -math.Pi/2) || (originLatitude > math.Pi/2) {
		fault |= ErrLatitude
	}
	if (centralMeridian < -math.Pi) || (centralMeridian > (2 * math.Pi)) {
		fault |= ErrLongitude
	}
	if fault != 0 {
		return nil, fault
	}

	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if (scaleFactor < minScaleFactor) || (scaleFactor > maxScaleFactor) {
		return nil, errors.New("mgrs: scale factor out of range")
	}

	if centralMeridian > math.Pi {
		centralMeridian -= (2 * math.Pi)
	}

	t := &TransverseMercator{
		ellipsoid:     ellipsoid,
		originLat:     originLatitude,
		originLong:    centralMeridian,
		falseEasting:  falseEasting,
		falseNorthing: falseNorthing,
		scaleFactor:   scaleFactor,
		deltaEasting:  20000000.0,
		deltaNorthing: 10000000.0,
	}

	r4oa := t.generateCoefficients()
	t.k0R4 = r4oa * t.scaleFactor * ellipsoid.SemiMajorAxis
	t.k0R4inv = 1.0 / t.k0R4

	// The origin may move from (0,0); this is represented by a change in
	// the false easting/northing values.
	t.originEasting, t.originNorthing, err = t.latLonToEastingNorthing(t.originLat, t.originLong)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// generateCoefficients fills the a and b series coefficients and returns
// R4/a, the meridional isoperimetric radius over the semi-major axis.
//
// omega is the rectifying latitude, chi the conformal latitude. aCoeff
// expresses omega as a trig series in chi and bCoeff the reverse. Both
// depend only on the shape of the ellipsoid.
func (t *TransverseMercator) generateCoefficients() float64 {
	n1 := t.ellipsoid.n

	found := false
	if t.ellipsoid.Code != "" {
	lookup:
		for _, kc := range knownCoefficients {
			for _, c := range kc.codes {
				if c == t.ellipsoid.Code {
					copy(t.aCoeff[:], kc.a[:])
					copy(t.bCoeff[:], kc.b[:])
					found = true
					break lookup
				}
			}
		}
	}

	if !found {
		// user defined ellipsoid, evaluate the series in n
		for k := 0; k < 8; k++ {
			t.aCoeff[k] = polyN(seriesA[k], n1)
			t.bCoeff[k] = polyN(seriesB[k], n1)
		}
	}

	n2 := n1 * n1
	n4 := n2 * n2
	n6 := n4 * n2
	n8 := n4 * n4
	n10 := n8 * n2
	coeff := 1 + n2/4 + n4/64 + n6/256 + 25*n8/16384 + 49*n10/65536
	return coeff / (1 + n1)
}

// polyN evaluates sum c[j] * n^(j+1), highest order first.
func polyN(c [8]float64, n float64) float64 {
	sum := 0.0
	for j := len(c) - 1; j >= 0; j-- {
		sum = (sum + c[j]) * n
	}
	return sum
}

func (t *TransverseMercator) checkLatLon(latitude, deltaLon float64) error {
	// test is based on distance from central meridian = deltaLon
	if deltaLon > math.Pi {
		deltaLon -= (2 * math.Pi)
	}
	if deltaLon < -math.Pi {
		deltaLon += (2 * math.Pi)
	}

	if t.maxDeltaLong > 0 && math.Abs(deltaLon) > t.maxDeltaLong {
		return ErrLongitude
	}

	testAngle := math.Abs(deltaLon)

	delta := math.Abs(deltaLon - math.Pi)
	if delta < testAngle {
		testAngle = delta
	}

	delta = math.Abs(deltaLon + math.Pi)
	if delta < testAngle {
		testAngle = delta
	}

	// Away from the equator, is also valid
	delta = math.Pi/2 - latitude
	if delta < testAngle {
		testAngle = delta
	}

	delta = math.Pi/2 + latitude
	if delta < testAngle {
		testAngle = delta
	}
	const maxDeltaLong = ((math.Pi * 70) / 180.0)
	if testAngle > maxDeltaLong {
		return ErrLongitude
	}
	return nil
}

func (t *TransverseMercator) latLonToEastingNorthing(latitude, longitude float64) (easting, northing float64, err error) {
	//  Convert longitude (Greenwich) to longitude from the central meridian
	//  (-Pi, Pi] equivalent needed for checkLatLon.
	lambda := longitude - t.originLong
	if lambda > math.Pi {
		lambda -= (2 * math.Pi)
	}
	if lambda < -math.Pi {
		lambda += (2 * math.Pi)
	}
	if err := t.checkLatLon(latitude, lambda); err != nil {
		return 0, 0, err
	}

	cosLam := math.Cos(lambda)
	sinLam := math.Sin(lambda)
	cosPhi := math.Cos(latitude)
	sinPhi := math.Sin(latitude)

	eps := t.ellipsoid.e

	//  Convert geodetic latitude, Phi, to conformal latitude, Chi
	//  Only the cosine and sine of Chi are actually needed.
	P := math.Exp(eps * math.Atanh(eps*sinPhi))
	part1 := (1 + sinPhi) / P
	part2 := (1 - sinPhi) * P
	denom := part1 + part2
	cosChi := 2 * cosPhi / denom
	sinChi := (part1 - part2) / denom

	// Apply spherical theory of transverse Mercator to get (u,v) coords
	U := math.Atanh(cosChi * sinLam)
	V := math.Atan2(sinChi, cosChi*cosLam)

	c2ku, s2ku := hyperbolicSeries(2.0 * U)
	c2kv, s2kv := trigSeries(2.0 * V)

	//  First plane to second plane
	xStar := 0.0
	yStar := 0.0
	for k := nTerms - 1; k >= 0; k-- {
		xStar += t.aCoeff[k] * s2ku[k] * c2kv[k]
		yStar += t.aCoeff[k] * c2ku[k] * s2kv[k]
	}
	xStar += U
	yStar += V

	// Apply isoperimetric radius and scale
	easting = t.k0R4 * xStar
	northing = t.k0R4 * yStar
	if !finite(easting) || !finite(northing) {
		return 0, 0, ErrEasting | ErrNorthing
	}
	return easting, northing, nil
}

// ConvertFromGeodetic projects a geodetic coordinate. Longitudes beyond the
// validity limit of the projection fail with ErrLongitude.
func (t *TransverseMercator) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) (MapCoords, error) {
	longitude := geodeticCoordinates.Lng.Radians()
	latitude := geodeticCoordinates.Lat.Radians()

	var fault Fault
	if (latitude < -math.Pi/2) || (latitude > math.Pi/2) || math.IsNaN(latitude) {
		fault |= ErrLatitude
	}
	if (longitude < -math.Pi) || (longitude > 2*math.Pi) || math.IsNaN(longitude) {
		fault |= ErrLongitude
	}
	if fault != 0 {
		return MapCoords{}, fault
	}

	if longitude > math.Pi {
		longitude -= (2 * math.Pi)
	}

	easting, northing, err := t.latLonToEastingNorthing(latitude, longitude)
	if err != nil {
		return MapCoords{}, err
	}

	return MapCoords{
		Easting:  easting + t.falseEasting - t.originEasting,
		Northing: northing + t.falseNorthing - t.originNorthing,
	}, nil
}

// ConvertToGeodetic inverts the projection.
func (t *TransverseMercator) ConvertToGeodetic(mapProjectionCoordinates MapCoords) (s2.LatLng, error) {
	easting := mapProjectionCoordinates.Easting
	northing := mapProjectionCoordinates.Northing

	var fault Fault
	if !(easting >= t.falseEasting-t.deltaEasting && easting <= t.falseEasting+t.deltaEasting) {
		fault |= ErrEasting
	}
	if !(northing >= t.falseNorthing-t.deltaNorthing && northing <= t.falseNorthing+t.deltaNorthing) {
		fault |= ErrNorthing
	}
	if fault != 0 {
		return s2.LatLng{}, fault
	}

	easting -= (t.falseEasting - t.originEasting)
	northing -= (t.falseNorthing - t.originNorthing)

	latitude, longitude := t.eastingNorthingToLatLon(easting, northing)
	if !finite(latitude) || !finite(longitude) {
		return s2.LatLng{}, ErrLatitude | ErrLongitude
	}

	if longitude > math.Pi {
		longitude -= (2 * math.Pi)
	}
	if longitude <= -math.Pi {
		longitude += (2 * math.Pi)
	}

	if math.Abs(latitude) > math.Pi/2 {
		return s2.LatLng{}, ErrNorthing
	}
	if math.Abs(longitude) > math.Pi {
		return s2.LatLng{}, ErrEasting
	}
	return s2.LatLng{Lat: s1.Angle(latitude), Lng: s1.Angle(longitude)}, nil
}

func (t *TransverseMercator) eastingNorthingToLatLon(easting, northing float64) (latitude, longitude float64) {
	//  Undo scale change and factor R4
	xStar := t.k0R4inv * easting
	yStar := t.k0R4inv * northing

	c2kx, s2kx := hyperbolicSeries(2.0 * xStar)
	c2ky, s2ky := trigSeries(2.0 * yStar)

	//  Second plane (x*, y*) to first plane (u, v)
	U := 0.0
	V := 0.0
	for k := nTerms - 1; k >= 0; k-- {
		U += t.bCoeff[k] * s2kx[k] * c2ky[k]
		V += t.bCoeff[k] * c2kx[k] * s2ky[k]
	}
	U += xStar
	V += yStar

	//  First plane to sphere
	coshU := math.Cosh(U)
	sinhU := math.Sinh(U)
	cosV := math.Cos(V)
	sinV := math.Sin(V)

	var lambda float64
	if (math.Abs(cosV) < 10e-12) && (math.Abs(coshU) < 10e-12) {
		lambda = 0
	} else {
		lambda = math.Atan2(sinhU, cosV)
	}

	sinChi := sinV / coshU
	latitude = geodeticLat(sinChi, t.ellipsoid.e)
	longitude = t.originLong + lambda
	return latitude, longitude
}

// geodeticLat iterates from the sine of the conformal latitude back to the
// geodetic latitude.
func geodeticLat(sinChi, e float64) float64 {
	sOld := 1.0e99
	s := sinChi
	onePlusSinChi := 1.0 + sinChi
	oneMinusSinChi := 1.0 - sinChi

	for n := 0; n < 30; n++ {
		p := math.Exp(e * math.Atanh(e*s))
		pSq := p * p
		s = (onePlusSinChi*pSq - oneMinusSinChi) /
			(onePlusSinChi*pSq + oneMinusSinChi)

		if math.Abs(s-sOld) < 1.0e-12 {
			break
		}
		sOld = s
	}
	return math.Asin(s)
}

// hyperbolicSeries returns cosh(2kX) and sinh(2kX) for k = 1..8 built up
// from cosh(2X) and sinh(2X) by the double and sum identities.
func hyperbolicSeries(twoX float64) (c, s [8]float64) {
	c[0] = math.Cosh(twoX)
	s[0] = math.Sinh(twoX)
	for k := 1; k < 8; k++ {
		if k%2 == 1 {
			h := k / 2
			c[k] = 2.0*c[h]*c[h] - 1.0
			s[k] = 2.0 * c[h] * s[h]
		} else {
			c[k] = c[0]*c[k-1] + s[0]*s[k-1]
			s[k] = c[k-1]*s[0] + c[0]*s[k-1]
		}
	}
	return c, s
}

// trigSeries returns cos(2kY) and sin(2kY) for k = 1..8.
func trigSeries(twoY float64) (c, s [8]float64) {
	c[0] = math.Cos(twoY)
	s[0] = math.Sin(twoY)
	for k := 1; k < 8; k++ {
		if k%2 == 1 {
			h := k / 2
			c[k] = 2.0*c[h]*c[h] - 1.0
			s[k] = 2.0 * c[h] * s[h]
		} else {
			c[k] = c[k-1]*c[0] - s[k-1]*s[0]
			s[k] = c[k-1]*s[0] + c[0]*s[k-1]
		}
	}
	return c, s
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func checkEllipsoid(e Ellipsoid) (Ellipsoid, error) {
	if e.valid() {
		return e, nil
	}
	return newEllipsoid(e.SemiMajorAxis, e.Flattening, "", "")
}
