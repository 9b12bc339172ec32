package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Example_main() {
	run([]string{"42.662139", "-71.365553"}, os.Stdout, os.Stderr)
	// Output:
	// UTM zone = 19, hemisphere = N, easting = 306130, northing = 4726010
	// MGRS =  19TCH02  19TCH0626  19TCH061260  19TCH06132600  19TCH0613026009
}

func Example_main_precision() {
	run([]string{"-p", "5", "0", "0"}, os.Stdout, os.Stderr)
	// Output:
	// UTM zone = 31, hemisphere = N, easting = 166021, northing = 0
	// MGRS =  31NAA6602100000
}

func runCapture(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunZonePin(t *testing.T) {
	code, out, _ := runCapture("-z", "31", "-p", "1", "45.5", "6.5")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "UTM zone = 31,")
	assert.Contains(t, out, "MGRS =  31T")
}

func TestRunPolar(t *testing.T) {
	code, out, _ := runCapture("-p", "0", "89", "0")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "UPS hemisphere = N, easting = 2000000")
	assert.Contains(t, out, "MGRS =  ZA")
}

func TestRunDMS(t *testing.T) {
	code, out, _ := runCapture("-p", "1", "423943.7N", "0712156W")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "UTM zone = 19, hemisphere = N")
	assert.Contains(t, out, "MGRS =  19TCH")
}

func TestRunNegativeLatitude(t *testing.T) {
	code, out, _ := runCapture("-33.8568", "151.2153", "-p", "0")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "hemisphere = S")
	assert.Contains(t, out, "MGRS =  56H")
}

func TestRunCheck(t *testing.T) {
	code, out, _ := runCapture("--check", "42.662139", "-71.365553")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "error =")
	assert.Contains(t, out, " m\n")
}

func TestRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mgrs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ellipsoid:\n  code: CC\n"), 0o600))

	code, clarke, _ := runCapture("-c", path, "-p", "5", "42.662139", "-71.365553")
	require.Equal(t, 0, code)
	_, wgs, _ := runCapture("-p", "5", "42.662139", "-71.365553")
	assert.NotEqual(t, wgs, clarke)
}

func TestRunConfigPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mgrs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 2\n"), 0o600))

	code, out, _ := runCapture("-c", path, "42.662139", "-71.365553")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "MGRS =  19TCH0626\n")

	code, out, _ = runCapture("-c", path, "-p", "3", "42.662139", "-71.365553")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "MGRS =  19TCH061260\n")
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no args", nil, 2},
		{"one arg", []string{"42"}, 2},
		{"help", []string{"-h"}, 2},
		{"bad flag", []string{"--bogus", "1", "2"}, 2},
		{"bad latitude", []string{"north", "2"}, 2},
		{"bad ellipsoid", []string{"-e", "ZZ", "1", "2"}, 2},
		{"missing config", []string{"-c", "/nonexistent/mgrs.yaml", "1", "2"}, 2},
		{"bad precision", []string{"-p", "9", "1", "2"}, 2},
		{"out of range", []string{"100", "2"}, 1},
		{"zone too far", []string{"-z", "40", "45", "6"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCapture(tt.args...)
			assert.Equal(t, tt.code, code)
		})
	}
}
