// Package dms converts packed degrees-minutes-seconds strings such as
// "0773812W" to decimal degrees and back.
package dms

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrSyntax is returned for input that is not of the form DDDMMSS[.f].
var ErrSyntax = errors.New("dms: invalid syntax")

// Parse converts "DDDMMSS[.f]" to decimal degrees. The last two digits before
// the decimal point are seconds, the two before them minutes, and the rest
// degrees. A leading minus sign or a W or S hemisphere letter makes the
// result negative; N and E are accepted and ignored. Minutes and seconds of
// 60 or more are not normalised, they are added in as given.
func Parse(s string) (float64, error) {
	body := strings.ToUpper(strings.TrimSpace(s))
	negative := strings.ContainsAny(body, "WS")
	body = strings.Map(func(r rune) rune {
		if strings.ContainsRune("NESW", r) {
			return -1
		}
		return r
	}, body)

	switch {
	case strings.HasPrefix(body, "-"):
		negative = true
		body = body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}

	whole, fraction, hasFraction := strings.Cut(body, ".")
	if len(whole) < 5 || !allDigits(whole) || (hasFraction && !allDigits(fraction)) {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	n := len(whole)
	degrees, _ := strconv.ParseFloat(whole[:n-4], 64)
	minutes, _ := strconv.ParseFloat(whole[n-4:n-2], 64)
	secondsText := whole[n-2:]
	if hasFraction && fraction != "" {
		secondsText += "." + fraction
	}
	seconds, _ := strconv.ParseFloat(secondsText, 64)

	dd := ((seconds/60)+minutes)/60 + degrees
	if negative {
		dd = -dd
	}
	return dd, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Split breaks decimal degrees into whole degrees, whole minutes and
// seconds. A negative angle carries its sign on the first non-zero part.
func Split(dd float64) (degrees, minutes, seconds float64) {
	negative := dd < 0
	total := math.Abs(dd) * 3600

	minutes = math.Floor(total / 60)
	seconds = total - minutes*60
	degrees = math.Floor(minutes / 60)
	minutes -= degrees * 60

	if negative {
		switch {
		case degrees > 0:
			degrees = -degrees
		case minutes > 0:
			minutes = -minutes
		default:
			seconds = -seconds
		}
	}
	return degrees, minutes, seconds
}
