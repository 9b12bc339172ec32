package mgrs

import (
	"errors"
	"strings"
)

// Fault is a set of validation failures detected during a single conversion.
// A Fault is itself an error; the zero value means success and is never
// returned as an error.
type Fault uint16

// Fault kinds. Several may be set at once.
const (
	ErrLatitude Fault = 1 << iota
	ErrLongitude
	ErrString
	ErrPrecision
	ErrAxis
	ErrFlattening
	ErrEasting
	ErrNorthing
	ErrZone
	ErrHemisphere
)

var faultNames = [...]struct {
	fault Fault
	msg   string
}{
	{ErrLatitude, "latitude out of range"},
	{ErrLongitude, "longitude out of range"},
	{ErrString, "invalid MGRS string"},
	{ErrPrecision, "precision out of range"},
	{ErrAxis, "semi-major axis must be greater than zero"},
	{ErrFlattening, "flattening must be between zero and one"},
	{ErrEasting, "easting out of range"},
	{ErrNorthing, "northing out of range"},
	{ErrZone, "zone out of range"},
	{ErrHemisphere, "hemisphere invalid"},
}

// Error joins the messages of every fault in the set.
func (f Fault) Error() string {
	if f == 0 {
		return "mgrs: no error"
	}
	var msgs []string
	for _, n := range faultNames {
		if f&n.fault != 0 {
			msgs = append(msgs, n.msg)
		}
	}
	return "mgrs: " + strings.Join(msgs, "; ")
}

// Has reports whether every fault in k is set in f.
func (f Fault) Has(k Fault) bool {
	return k != 0 && f&k == k
}

// Is lets errors.Is match a single fault kind inside a combined set.
func (f Fault) Is(target error) bool {
	t, ok := target.(Fault)
	return ok && f.Has(t)
}

// Faults splits the set into its individual kinds, lowest bit first.
func (f Fault) Faults() []Fault {
	var out []Fault
	for _, n := range faultNames {
		if f&n.fault != 0 {
			out = append(out, n.fault)
		}
	}
	return out
}

// FaultOf returns the fault set carried by err, or zero when err is nil or
// not produced by this package.
func FaultOf(err error) Fault {
	var f Fault
	if errors.As(err, &f) {
		return f
	}
	return 0
}
