// MGRS or UTM to latitude / longitude conversion
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/geotrans/mgrs"
	"github.com/geotrans/mgrs/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("mgrs2ll", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var precision = fs.IntP("precision", "p", -1, "MGRS precision (0-5) when converting from UTM, 5 unless configured.")
	var configPath = fs.StringP("config", "c", "", "YAML configuration file.")
	var ellipsoid = fs.StringP("ellipsoid", "e", "", "Two letter ellipsoid code, WE (WGS 84) by default.")
	var logLevel = fs.String("log-level", "", "Log level: debug, info, warn, error.")
	var help = fs.BoolP("help", "h", false, "Display help text.")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "MGRS or UTM to Latitude / Longitude conversion\n\n")
		fmt.Fprintf(stderr, "Usage:\n\tmgrs2ll [options] zone easting northing\n\n")
		fmt.Fprintf(stderr, "where zone is UTM zone 1 thru 60 with optional latitudinal band.\n\n")
		fmt.Fprintf(stderr, "or:\n\tmgrs2ll [options] mgrs...\n\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n\tmgrs2ll 19T 306130 4726010\n\tmgrs2ll 19TCH06132600\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help || fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	var opts []config.Option
	if *ellipsoid != "" {
		opts = append(opts, config.WithEllipsoidCode(*ellipsoid))
	}
	if *logLevel != "" {
		opts = append(opts, config.WithLogLevel(*logLevel))
	}
	if *precision >= 0 {
		opts = append(opts, config.WithPrecision(*precision))
	}

	cfg := config.New(opts...)
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath, opts...)
	} else {
		err = cfg.Validate()
	}
	if err != nil {
		log.New(stderr).Error("bad configuration", "err", err)
		return 2
	}
	logger := cfg.Logger(stderr)

	converter, err := cfg.Converter(logger)
	if err != nil {
		logger.Error("building converter", "err", err)
		return 2
	}

	if fs.NArg() == 3 {
		if zone, hemisphere, ok := parseZone(fs.Arg(0)); ok {
			return fromUTM(converter, cfg.Precision, zone, hemisphere, fs.Arg(1), fs.Arg(2), stdout, logger)
		}
	}

	status := 0
	for _, s := range fs.Args() {
		if !fromMGRS(converter, s, stdout, logger) {
			status = 1
		}
	}
	return status
}

// parseZone accepts "19" or "19T". Without a band the hemisphere is north.
func parseZone(s string) (int, mgrs.Hemisphere, bool) {
	digits := strings.TrimRight(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")
	if len(s)-len(digits) > 1 {
		return 0, mgrs.HemisphereInvalid, false
	}
	zone, err := strconv.Atoi(digits)
	if err != nil {
		return 0, mgrs.HemisphereInvalid, false
	}
	if band := strings.ToUpper(s[len(digits):]); band != "" {
		if !strings.Contains("CDEFGHJKLMNPQRSTUVWX", band) {
			return 0, mgrs.HemisphereInvalid, false
		}
		if band < "N" {
			return zone, mgrs.HemisphereSouth, true
		}
	}
	return zone, mgrs.HemisphereNorth, true
}

func fromUTM(converter *mgrs.Converter, precision, zone int, hemisphere mgrs.Hemisphere, eastingArg, northingArg string, stdout io.Writer, logger *log.Logger) int {
	easting, err := strconv.ParseFloat(eastingArg, 64)
	if err != nil {
		logger.Error("bad easting", "value", eastingArg, "err", err)
		return 2
	}
	northing, err := strconv.ParseFloat(northingArg, 64)
	if err != nil {
		logger.Error("bad northing", "value", northingArg, "err", err)
		return 2
	}

	utm := mgrs.UTMCoord{Zone: zone, Hemisphere: hemisphere, Easting: easting, Northing: northing}
	g, err := converter.UTM().ConvertToGeodetic(utm)
	if err != nil {
		logger.Error("conversion from UTM failed", "err", err)
		return 1
	}
	fmt.Fprintf(stdout, "from UTM, latitude = %.6f, longitude = %.6f\n", g.Lat.Degrees(), g.Lng.Degrees())

	s, err := converter.ConvertFromUTM(utm, precision)
	if err != nil {
		logger.Error("conversion to MGRS failed", "err", err)
		return 1
	}
	fmt.Fprintf(stdout, "MGRS = %s\n", s)
	return 0
}

func fromMGRS(converter *mgrs.Converter, s string, stdout io.Writer, logger *log.Logger) bool {
	g, err := converter.ConvertToGeodetic(s)
	if err != nil {
		logger.Error("conversion from MGRS failed", "mgrs", s, "err", err)
		return false
	}
	fmt.Fprintf(stdout, "from MGRS, latitude = %.6f, longitude = %.6f\n", g.Lat.Degrees(), g.Lng.Degrees())

	ref, _ := mgrs.ParseReference(s)
	if ref.Polar() {
		ups, err := converter.ConvertToUPS(s)
		if err != nil {
			logger.Error("conversion to UPS failed", "mgrs", s, "err", err)
			return false
		}
		fmt.Fprintf(stdout, "UPS hemisphere = %c, easting = %.0f, northing = %.0f\n",
			ups.Hemisphere.Rune(), ups.Easting, ups.Northing)
		return true
	}

	utm, err := converter.ConvertToUTM(s)
	if err != nil {
		logger.Error("conversion to UTM failed", "mgrs", s, "err", err)
		return false
	}
	fmt.Fprintf(stdout, "UTM zone = %d, hemisphere = %c, easting = %.0f, northing = %.0f\n",
		utm.Zone, utm.Hemisphere.Rune(), utm.Easting, utm.Northing)
	return true
}
