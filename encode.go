package mgrs

import (
	"math"
	"strconv"
	"strings"
)

// epsilon2 keeps a value sitting a hair below a cell boundary in the upper
// cell when truncating.
const epsilon2 = 4.99e-4

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Letter indices into alphabet.
const (
	letterA = iota
	letterB
	letterC
	letterD
	letterE
	letterF
	letterG
	letterH
	letterI
	letterJ
	letterK
	letterL
	letterM
	letterN
	letterO
	letterP
	letterQ
	letterR
	letterS
	letterT
	letterU
	letterV
	letterW
	letterX
	letterY
	letterZ
)

type latitudeBand struct {
	letter         byte    // letter representing latitude band
	minNorthing    float64 // minimum northing for latitude band
	north          float64 // upper latitude for latitude band
	south          float64 // lower latitude for latitude band
	northingOffset float64 // latitude band northing offset
}

var latitudeBands = [20]latitudeBand{
	{letterC, 1100000.0, -72.0, -80.5, 0.0},
	{letterD, 2000000.0, -64.0, -72.0, 2000000.0},
	{letterE, 2800000.0, -56.0, -64.0, 2000000.0},
	{letterF, 3700000.0, -48.0, -56.0, 2000000.0},
	{letterG, 4600000.0, -40.0, -48.0, 4000000.0},
	{letterH, 5500000.0, -32.0, -40.0, 4000000.0},
	{letterJ, 6400000.0, -24.0, -32.0, 6000000.0},
	{letterK, 7300000.0, -16.0, -24.0, 6000000.0},
	{letterL, 8200000.0, -8.0, -16.0, 8000000.0},
	{letterM, 9100000.0, 0.0, -8.0, 8000000.0},
	{letterN, 0.0, 8.0, 0.0, 0.0},
	{letterP, 800000.0, 16.0, 8.0, 0.0},
	{letterQ, 1700000.0, 24.0, 16.0, 0.0},
	{letterR, 2600000.0, 32.0, 24.0, 2000000.0},
	{letterS, 3500000.0, 40.0, 32.0, 2000000.0},
	{letterT, 4400000.0, 48.0, 40.0, 4000000.0},
	{letterU, 5300000.0, 56.0, 48.0, 4000000.0},
	{letterV, 6200000.0, 64.0, 56.0, 6000000.0},
	{letterW, 7000000.0, 72.0, 64.0, 6000000.0},
	{letterX, 7900000.0, 84.5, 72.0, 6000000.0}}

type upsConstant struct {
	letter        byte    // polar designator
	ltr2LowValue  byte    // 2nd letter range - low number
	ltr2HighValue byte    // 2nd letter range - high number
	ltr3HighValue byte    // 3rd letter range - high number
	falseEasting  float64 // False easting based on 2nd letter
	falseNorthing float64 // False northing based on 3rd letter
}

var upsConstants = [4]upsConstant{
	{letterA, letterJ, letterZ, letterZ, 800000.0, 800000.0},
	{letterB, letterA, letterR, letterZ, 2000000.0, 800000.0},
	{letterY, letterJ, letterZ, letterP, 800000.0, 1300000.0},
	{letterZ, letterA, letterJ, letterP, 2000000.0, 1300000.0}}

// upsConstantFor returns the table row of a polar designator.
func upsConstantFor(letter byte) (upsConstant, bool) {
	for _, c := range upsConstants {
		if c.letter == letter {
			return c, true
		}
	}
	return upsConstant{}, false
}

// latitudeBandFor returns the table row of a band letter.
func latitudeBandFor(letter byte) (latitudeBand, bool) {
	switch {
	case letter >= letterC && letter <= letterH:
		return latitudeBands[letter-2], true
	case letter >= letterJ && letter <= letterN:
		return latitudeBands[letter-3], true
	case letter >= letterP && letter <= letterX:
		return latitudeBands[letter-4], true
	}
	return latitudeBand{}, false
}

// latitudeLetter returns the band letter index for a latitude.
func latitudeLetter(latitude float64) (byte, error) {
	const lat72 = (72.0 * (math.Pi / 180.0))
	const lat845 = (84.5 * (math.Pi / 180.0))
	const lat80 = (80.0 * (math.Pi / 180.0))
	const lat805 = (80.5 * (math.Pi / 180.0))
	const lat8 = (8.0 * (math.Pi / 180.0))

	if latitude >= lat72 && latitude < lat845 {
		return letterX, nil
	} else if latitude > -lat805 && latitude < lat72 {
		band := int(((latitude + lat80) / lat8) + 1.0e-12)
		if band < 0 {
			band = 0
		}
		return latitudeBands[band].letter, nil
	}
	return 0, ErrLatitude
}

// gridValues returns the range of 2nd letters for the set the zone belongs
// to and the false northing of row letter A.
func (c *Converter) gridValues(zone int) (ltr2LowValue, ltr2HighValue byte, patternOffset float64) {
	// set number (1-6) based on UTM zone number
	setNumber := zone % 6
	if setNumber == 0 {
		setNumber = 6
	}

	switch setNumber {
	case 1, 4:
		ltr2LowValue, ltr2HighValue = letterA, letterH
	case 2, 5:
		ltr2LowValue, ltr2HighValue = letterJ, letterR
	case 3, 6:
		ltr2LowValue, ltr2HighValue = letterS, letterZ
	}

	even := setNumber%2 == 0
	switch {
	case !c.ellipsoid.alPattern() && even:
		patternOffset = 500000.0
	case !c.ellipsoid.alPattern():
		patternOffset = 0.0
	case even:
		patternOffset = 1500000.0
	default:
		patternOffset = 1000000.0
	}
	return
}

// truncate drops the digits finer than the precision.
func truncate(v float64, precision int) float64 {
	divisor := computeScale(precision)
	return math.Floor((v+epsilon2)/divisor) * divisor
}

// fromUTM builds an MGRS string from a UTM coordinate and the position it
// projects. Unless pinned, the coordinate is first moved to the natural zone
// of the position and then to the Norway or Svalbard zone when one applies.
func (c *Converter) fromUTM(utmCoordinates UTMCoord, latitude, longitude float64, precision int, pinned bool) (string, error) {
	zone := utmCoordinates.Zone
	easting := utmCoordinates.Easting
	northing := utmCoordinates.Northing

	if (latitude > -1.0e-9) && (latitude < 0) {
		latitude = 0.0
	}

	band, err := latitudeLetter(latitude)
	if err != nil {
		return "", err
	}

	if !pinned {
		reproject := func(z int) error {
			moved, err := c.utm.convertInZone(latitude, longitude, z)
			if err != nil {
				return err
			}
			zone, easting, northing = moved.Zone, moved.Easting, moved.Northing
			return nil
		}

		if natural := naturalZone(longitude); zone != natural {
			if err := reproject(natural); err != nil {
				return "", err
			}
		}

		var override int
		switch band {
		case letterV:
			if (zone == 31) && (easting >= 500000.0) {
				override = 32 // extension of zone 32V
			}
		case letterX:
			switch {
			case (zone == 32) && (easting < 500000.0): // extension of zone 31X
				override = 31
			case (zone == 32) && (easting >= 500000.0), // western extension of zone 33X
				(zone == 34) && (easting < 500000.0): // eastern extension of zone 33X
				override = 33
			case (zone == 34) && (easting >= 500000.0), // western extension of zone 35X
				(zone == 36) && (easting < 500000.0): // eastern extension of zone 35X
				override = 35
			case (zone == 36) && (easting >= 500000.0): // western extension of zone 37X
				override = 37
			}
		}
		if override != 0 {
			if err := reproject(override); err != nil {
				return "", err
			}
		}
	}

	easting = truncate(easting, precision)
	northing = truncate(northing, precision)

	// a point a hair south of the equator truncated onto it belongs to band N
	if latitude <= 0.0 && northing == 1.0e7 {
		northing = 0.0
		band = letterN
	}

	ltr2LowValue, _, patternOffset := c.gridValues(zone)

	gridNorthing := math.Mod(northing, 2000000)
	gridNorthing += patternOffset
	if gridNorthing >= 2000000 {
		gridNorthing -= 2000000
	}

	var letters [3]byte
	letters[0] = band
	letters[2] = byte(int(gridNorthing / 100000))
	if letters[2] > letterH {
		letters[2]++
	}
	if letters[2] > letterN {
		letters[2]++
	}

	letters[1] = ltr2LowValue + byte(int(easting/100000)-1)
	if (ltr2LowValue == letterJ) && (letters[1] > letterN) {
		letters[1]++
	}

	return makeMGRSString(zone, letters, easting, northing, precision)
}

// fromUPS builds an MGRS string from a UPS coordinate.
func (c *Converter) fromUPS(upsCoordinates UPSCoord, precision int) (string, error) {
	easting := truncate(upsCoordinates.Easting, precision)
	northing := truncate(upsCoordinates.Northing, precision)

	var letters [3]byte
	switch {
	case upsCoordinates.Hemisphere == HemisphereNorth && easting >= 2000000:
		letters[0] = letterZ
	case upsCoordinates.Hemisphere == HemisphereNorth:
		letters[0] = letterY
	case easting >= 2000000:
		letters[0] = letterB
	default:
		letters[0] = letterA
	}
	consts, _ := upsConstantFor(letters[0])

	letters[2] = byte(int((northing - consts.falseNorthing) / 100000))
	if letters[2] > letterH {
		letters[2]++
	}
	if letters[2] > letterN {
		letters[2]++
	}

	letters[1] = consts.ltr2LowValue + byte(int((easting-consts.falseEasting)/100000))
	if easting < 2000000 {
		if letters[1] > letterL {
			letters[1] += 3
		}
		if letters[1] > letterU {
			letters[1] += 2
		}
	} else {
		if letters[1] > letterC {
			letters[1] += 2
		}
		if letters[1] > letterH {
			letters[1]++
		}
		if letters[1] > letterL {
			letters[1] += 3
		}
	}

	return makeMGRSString(0, letters, easting, northing, precision)
}

// makeMGRSString constructs an MGRS string from its component parts. Zone 0
// produces a polar string.
func makeMGRSString(zone int, letters [3]byte, easting, northing float64, precision int) (string, error) {
	for _, l := range letters {
		if int(l) >= len(alphabet) {
			return "", ErrString
		}
	}
	ref := Reference{
		Zone:      zone,
		Band:      alphabet[letters[0]],
		Square:    [2]byte{alphabet[letters[1]], alphabet[letters[2]]},
		Easting:   squareOffset(easting, precision),
		Northing:  squareOffset(northing, precision),
		Precision: precision,
	}
	return ref.String(), nil
}

// squareOffset reduces a truncated coordinate to its offset inside the
// 100km square, expressed as a whole number of cells times the cell size.
func squareOffset(v float64, precision int) float64 {
	v = math.Mod(v, 100000.0)
	if v >= 99999.5 {
		v = 99999.0
	}
	divisor := computeScale(precision)
	return float64(int((v+4.99e-1)/divisor)) * divisor
}

// String formats the reference in canonical form: two digit zone (absent
// for polar references), band, square letters, then easting and northing
// digits with no separators.
func (r Reference) String() string {
	var b strings.Builder
	if r.Zone != 0 {
		if r.Zone < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(r.Zone))
	}
	b.WriteByte(r.Band)
	b.WriteByte(r.Square[0])
	b.WriteByte(r.Square[1])
	if r.Precision > 0 {
		divisor := computeScale(r.Precision)
		b.WriteString(padDigits(int(r.Easting/divisor), r.Precision))
		b.WriteString(padDigits(int(r.Northing/divisor), r.Precision))
	}
	return b.String()
}

func padDigits(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
