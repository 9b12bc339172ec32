package mgrs_test

import (
	"fmt"

	"github.com/golang/geo/s2"

	"github.com/geotrans/mgrs"
)

func ExampleGeodeticToMGRS() {
	s, _ := mgrs.GeodeticToMGRS(0, 0, 5)
	fmt.Println(s)
	// Output: 31NAA6602100000
}

func ExampleMGRSToGeodetic() {
	g, _ := mgrs.MGRSToGeodetic("19TCH0613026009")
	fmt.Printf("%.3f %.3f\n", g.Lat.Degrees(), g.Lng.Degrees())
	// Output: 42.662 -71.366
}

func ExampleMGRSToUTM() {
	u, _ := mgrs.MGRSToUTM("31NAA6602100000")
	fmt.Println(u.Zone, u.Hemisphere, u.Easting, u.Northing)
	// Output: 31 N 166021 0
}

func ExampleConverter_ConvertFromGeodetic() {
	g := s2.LatLngFromDegrees(42.662139, -71.365553)
	for precision := 1; precision <= 5; precision++ {
		s, _ := mgrs.Default.ConvertFromGeodetic(g, precision)
		fmt.Println(s)
	}
	// Output:
	// 19TCH02
	// 19TCH0626
	// 19TCH061260
	// 19TCH06132600
	// 19TCH0613026009
}

func ExampleSelectZone() {
	z, _ := mgrs.SelectZone(s2.LatLngFromDegrees(61, 5))
	fmt.Println(z)
	// Output: 32V
}
