// Latitude / longitude to UTM and MGRS conversion
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/s2"
	"github.com/spf13/pflag"

	"github.com/geotrans/mgrs/dms"
	"github.com/geotrans/mgrs/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("ll2mgrs", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var precision = fs.IntP("precision", "p", -1, "Print MGRS at this precision (0-5) only. Without it a config file's precision is used, or 1 through 5 with no config file.")
	var zone = fs.IntP("zone", "z", 0, "Pin the UTM zone. Must be the natural zone or a neighbour.")
	var check = fs.Bool("check", false, "Decode each MGRS string again and print the distance in meters from the input.")
	var configPath = fs.StringP("config", "c", "", "YAML configuration file.")
	var ellipsoid = fs.StringP("ellipsoid", "e", "", "Two letter ellipsoid code, WE (WGS 84) by default.")
	var logLevel = fs.String("log-level", "", "Log level: debug, info, warn, error.")
	var help = fs.BoolP("help", "h", false, "Display help text.")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Latitude / Longitude to UTM and MGRS conversion\n\n")
		fmt.Fprintf(stderr, "Usage: ll2mgrs [options] latitude longitude\n\n")
		fmt.Fprintf(stderr, "Latitude and longitude are decimal degrees, negative for south or\n")
		fmt.Fprintf(stderr, "west, or DDDMMSS[.f] followed by N, S, E or W.\n\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExample:\n\tll2mgrs 42.662139 -71.365553\n")
	}

	args, negatives := hideNegatives(args)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help || fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	latArg, lonArg := revealNegative(fs.Arg(0), negatives), revealNegative(fs.Arg(1), negatives)

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

	lat, err := parseAngle(latArg)
	if err != nil {
		logger.Error("bad latitude", "value", latArg, "err", err)
		return 2
	}
	lon, err := parseAngle(lonArg)
	if err != nil {
		logger.Error("bad longitude", "value", lonArg, "err", err)
		return 2
	}
	g := s2.LatLngFromDegrees(lat, lon)

	status := 0

	utm, err := converter.UTM().ConvertFromGeodetic(g, *zone)
	if err == nil {
		fmt.Fprintf(stdout, "UTM zone = %d, hemisphere = %c, easting = %.0f, northing = %.0f\n",
			utm.Zone, utm.Hemisphere.Rune(), utm.Easting, utm.Northing)
	} else if ups, upsErr := converter.UPS().ConvertFromGeodetic(g); *zone == 0 && upsErr == nil {
		fmt.Fprintf(stdout, "UPS hemisphere = %c, easting = %.0f, northing = %.0f\n",
			ups.Hemisphere.Rune(), ups.Easting, ups.Northing)
	} else {
		// Others could still succeed, keep going.
		logger.Error("conversion to UTM failed", "err", err)
		status = 1
	}

	// -p wins, then the config file; with neither every precision is printed
	precisions := []int{1, 2, 3, 4, 5}
	if *precision >= 0 || *configPath != "" {
		precisions = []int{cfg.Precision}
	}

	var strs []string
	for _, p := range precisions {
		var s string
		if *zone != 0 {
			s, err = converter.ConvertFromGeodeticInZone(g, *zone, p)
		} else {
			s, err = converter.ConvertFromGeodetic(g, p)
		}
		if err != nil {
			logger.Error("conversion to MGRS failed", "precision", p, "err", err)
			return 1
		}
		strs = append(strs, s)
	}

	fmt.Fprintf(stdout, "MGRS =")
	for _, s := range strs {
		fmt.Fprintf(stdout, "  %s", s)
	}
	fmt.Fprintf(stdout, "\n")

	if *check {
		fmt.Fprintf(stdout, "error =")
		for _, s := range strs {
			back, err := converter.ConvertToGeodetic(s)
			if err != nil {
				logger.Error("decoding MGRS failed", "mgrs", s, "err", err)
				return 1
			}
			fmt.Fprintf(stdout, "  %.1f", converter.Ellipsoid().Distance(g, back))
		}
		fmt.Fprintf(stdout, " m\n")
	}

	return status
}

// parseAngle accepts decimal degrees or a packed DDDMMSS string with a
// hemisphere letter.
func parseAngle(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	return dms.Parse(s)
}

const negativePrefix = "\x00"

// hideNegatives swaps arguments like "-71.3" for placeholders so the flag
// parser does not read them as shorthand flags.
func hideNegatives(args []string) ([]string, map[string]string) {
	negatives := map[string]string{}
	out := make([]string, len(args))
	for i, a := range args {
		if _, err := strconv.ParseFloat(a, 64); err == nil && strings.HasPrefix(a, "-") {
			key := negativePrefix + strconv.Itoa(i)
			negatives[key] = a
			a = key
		}
		out[i] = a
	}
	return out, negatives
}

func revealNegative(arg string, negatives map[string]string) string {
	if v, ok := negatives[arg]; ok {
		return v
	}
	return arg
}
