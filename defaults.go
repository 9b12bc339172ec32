package mgrs

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Default is a WGS84 converter that discards warnings.
var Default *Converter

func init() {
	var err error
	Default, err = NewConverter()
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 MGRS converter: %s", err))
	}
}

// GeodeticToMGRS encodes a latitude and longitude in radians on WGS84.
func GeodeticToMGRS(latitude, longitude float64, precision int) (string, error) {
	return Default.ConvertFromGeodetic(s2.LatLng{Lat: s1.Angle(latitude), Lng: s1.Angle(longitude)}, precision)
}

// MGRSToGeodetic decodes an MGRS string on WGS84, returning the south-west
// corner of the named cell.
func MGRSToGeodetic(mgrs string) (s2.LatLng, error) {
	return Default.ConvertToGeodetic(mgrs)
}

// UTMToMGRS encodes a UTM coordinate on WGS84.
func UTMToMGRS(zone int, hemisphere Hemisphere, easting, northing float64, precision int) (string, error) {
	return Default.ConvertFromUTM(UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
	}, precision)
}

// MGRSToUTM decodes an MGRS string to a UTM coordinate on WGS84.
func MGRSToUTM(mgrs string) (UTMCoord, error) {
	return Default.ConvertToUTM(mgrs)
}
