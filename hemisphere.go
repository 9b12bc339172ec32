package mgrs

// Hemisphere represents the hemisphere, north or south
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

// HemisphereFromRune maps 'N' and 'S' (either case) to a Hemisphere.
func HemisphereFromRune(r rune) Hemisphere {
	switch r {
	case 'N', 'n':
		return HemisphereNorth
	case 'S', 's':
		return HemisphereSouth
	default:
		return HemisphereInvalid
	}
}

// Rune returns 'N', 'S' or '?' for an invalid hemisphere.
func (h Hemisphere) Rune() rune {
	switch h {
	case HemisphereNorth:
		return 'N'
	case HemisphereSouth:
		return 'S'
	default:
		return '?'
	}
}

func (h Hemisphere) String() string {
	return string(h.Rune())
}

func (h Hemisphere) valid() bool {
	return h == HemisphereNorth || h == HemisphereSouth
}
