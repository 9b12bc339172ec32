package mgrs

import (
	"math"
	"strings"
	"unicode"
)

// Reference is a parsed MGRS string. Easting and Northing are the offset in
// meters of the south-west corner of the named cell inside its 100km square.
type Reference struct {
	Zone      int // 1-60, 0 for a polar (UPS) reference
	Band      byte
	Square    [2]byte
	Easting   float64
	Northing  float64
	Precision int
}

// Polar reports whether the reference names a UPS square.
func (r Reference) Polar() bool { return r.Zone == 0 }

// ParseReference splits an MGRS string into its parts. Whitespace anywhere in
// the string is ignored and letters may be in either case. The zone may be
// written with one or two digits and is absent for polar references.
func ParseReference(mgrs string) (Reference, error) {
	s := strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, mgrs))

	var ref Reference
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	switch {
	case i > 2:
		return Reference{}, ErrString
	case i > 0:
		ref.Zone = int(s[0] - '0')
		if i == 2 {
			ref.Zone = ref.Zone*10 + int(s[1]-'0')
		}
		if ref.Zone < 1 || ref.Zone > 60 {
			return Reference{}, ErrString | ErrZone
		}
	}

	if len(s)-i < 3 {
		return Reference{}, ErrString
	}
	var letters [3]byte
	for j := range letters {
		l := s[i+j]
		if l < 'A' || l > 'Z' || l == 'I' || l == 'O' {
			return Reference{}, ErrString
		}
		letters[j] = l
	}
	i += 3
	ref.Band = letters[0]
	ref.Square = [2]byte{letters[1], letters[2]}

	if ref.Polar() {
		if _, ok := upsConstantFor(ref.Band - 'A'); !ok {
			return Reference{}, ErrString
		}
	} else if _, ok := latitudeBandFor(ref.Band - 'A'); !ok {
		return Reference{}, ErrString
	}

	digits := s[i:]
	if len(digits)%2 != 0 || len(digits) > 2*mgrsMaxPrecision {
		return Reference{}, ErrString
	}
	for j := 0; j < len(digits); j++ {
		if !isDigit(digits[j]) {
			return Reference{}, ErrString
		}
	}

	ref.Precision = len(digits) / 2
	if ref.Precision > 0 {
		multiplier := computeScale(ref.Precision)
		ref.Easting = float64(atoi(digits[:ref.Precision])) * multiplier
		ref.Northing = float64(atoi(digits[ref.Precision:])) * multiplier
	}
	return ref, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// atoi converts a run of at most five validated digits.
func atoi(digits string) int {
	v := 0
	for i := 0; i < len(digits); i++ {
		v = v*10 + int(digits[i]-'0')
	}
	return v
}

// indices converts the reference letters to alphabet indices.
func (r Reference) indices() [3]byte {
	return [3]byte{r.Band - 'A', r.Square[0] - 'A', r.Square[1] - 'A'}
}

// toUTM reconstructs the UTM coordinate of the south-west corner of the cell
// and checks it falls inside (or just across the edge of) its band.
func (c *Converter) toUTM(ref Reference) (UTMCoord, error) {
	zone := ref.Zone
	letters := ref.indices()

	if (letters[0] == letterX) && ((zone == 32) || (zone == 34) || (zone == 36)) {
		return UTMCoord{}, ErrString
	} else if (letters[0] == letterV) && (zone == 31) && (letters[1] > letterD) {
		return UTMCoord{}, ErrString
	}

	hemisphere := HemisphereNorth
	if letters[0] < letterN {
		hemisphere = HemisphereSouth
	}

	ltr2LowValue, ltr2HighValue, patternOffset := c.gridValues(zone)

	// the column letter must belong to the zone's set, rows stop at V
	if (letters[1] < ltr2LowValue) || (letters[1] > ltr2HighValue) || (letters[2] > letterV) {
		return UTMCoord{}, ErrString
	}

	gridEasting := float64(letters[1]-ltr2LowValue+1) * 100000
	if (ltr2LowValue == letterJ) && (letters[1] > letterO) {
		gridEasting -= 100000
	}

	rowLetterNorthing := float64(letters[2]) * 100000
	if letters[2] > letterO {
		rowLetterNorthing -= 100000
	}
	if letters[2] > letterI {
		rowLetterNorthing -= 100000
	}
	if rowLetterNorthing >= 2000000 {
		rowLetterNorthing -= 2000000
	}

	band, _ := latitudeBandFor(letters[0])

	gridNorthing := rowLetterNorthing - patternOffset
	if gridNorthing < 0 {
		gridNorthing += 2000000
	}
	gridNorthing += band.northingOffset
	if gridNorthing < band.minNorthing {
		gridNorthing += 2000000
	}

	utmCoordinates := UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    gridEasting + ref.Easting,
		Northing:   gridNorthing + ref.Northing,
	}

	geodeticCoordinates, err := c.utm.ConvertToGeodetic(utmCoordinates)
	if err != nil {
		return UTMCoord{}, ErrString | FaultOf(err)
	}
	latitude := geodeticCoordinates.Lat.Radians()

	// a coarse cell may poke out of its band by up to one cell
	border := (math.Pi / 180) / math.Pow10(ref.Precision)
	if inLatitudeRange(letters[0], latitude, border) {
		return utmCoordinates, nil
	}

	prevBand := letters[0] - 1
	nextBand := letters[0] + 1
	if letters[0] == letterC {
		prevBand = letters[0]
	}
	if letters[0] == letterX {
		nextBand = letters[0]
	}
	if prevBand == letterI || prevBand == letterO {
		prevBand--
	}
	if nextBand == letterI || nextBand == letterO {
		nextBand++
	}

	if inLatitudeRange(prevBand, latitude, border) || inLatitudeRange(nextBand, latitude, border) {
		c.logger.Warn("latitude band boundary cuts across 100km square",
			"mgrs", ref.String(), "latitude", latitude*180/math.Pi)
		return utmCoordinates, nil
	}
	return UTMCoord{}, ErrString
}

// inLatitudeRange reports whether the latitude lies within the band widened
// by border on both sides.
func inLatitudeRange(letter byte, latitude, border float64) bool {
	band, ok := latitudeBandFor(letter)
	if !ok {
		return false
	}
	north := band.north * math.Pi / 180
	south := band.south * math.Pi / 180
	return ((south - border) <= latitude) && (latitude <= (north + border))
}

// toUPS reconstructs the UPS coordinate of the south-west corner of the cell.
func (c *Converter) toUPS(ref Reference) (UPSCoord, error) {
	letters := ref.indices()

	consts, ok := upsConstantFor(letters[0])
	if !ok {
		return UPSCoord{}, ErrString
	}
	hemisphere := HemisphereSouth
	if letters[0] == letterY || letters[0] == letterZ {
		hemisphere = HemisphereNorth
	}

	if (letters[1] < consts.ltr2LowValue) || (letters[1] > consts.ltr2HighValue) ||
		((letters[1] == letterD) || (letters[1] == letterE) ||
			(letters[1] == letterM) || (letters[1] == letterN) ||
			(letters[1] == letterV) || (letters[1] == letterW)) ||
		(letters[2] > consts.ltr3HighValue) {
		return UPSCoord{}, ErrString
	}

	gridNorthing := float64(letters[2])*100000 + consts.falseNorthing
	if letters[2] > letterI {
		gridNorthing -= 100000
	}
	if letters[2] > letterO {
		gridNorthing -= 100000
	}

	gridEasting := float64(letters[1]-consts.ltr2LowValue)*100000 + consts.falseEasting
	if consts.ltr2LowValue != letterA {
		if letters[1] > letterL {
			gridEasting -= 300000.0
		}
		if letters[1] > letterU {
			gridEasting -= 200000.0
		}
	} else {
		if letters[1] > letterC {
			gridEasting -= 200000.0
		}
		if letters[1] > letterI {
			gridEasting -= 100000
		}
		if letters[1] > letterL {
			gridEasting -= 300000.0
		}
	}

	return UPSCoord{
		Hemisphere: hemisphere,
		Easting:    gridEasting + ref.Easting,
		Northing:   gridNorthing + ref.Northing,
	}, nil
}
