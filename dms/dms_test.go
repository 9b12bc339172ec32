package dms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotrans/mgrs/dms"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0773812W", -(((12.0 / 60) + 38) / 60 + 77)},
		{"0773812w", -(((12.0 / 60) + 38) / 60 + 77)},
		{"0773812E", ((12.0/60)+38)/60 + 77},
		{"384156N", ((56.0/60)+41)/60 + 38},
		{"384156.5S", -(((56.5 / 60) + 41) / 60 + 38)},
		{"-0773812", -(((12.0 / 60) + 38) / 60 + 77)},
		{"+0773812", ((12.0/60)+38)/60 + 77},
		{" 1800000 ", 180},
		{"00030", 30.0 / 3600},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dms.Parse(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "W", "1234", "12a4567", "0773812.x", "773.12"} {
		_, err := dms.Parse(in)
		assert.ErrorIs(t, err, dms.ErrSyntax, in)
	}
}

func TestParseOverflowingFields(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0776012", ((12.0/60)+60)/60 + 77},
		{"0773875", ((75.0/60)+38)/60 + 77},
		{"07738605W", -(((5.0 / 60) + 86) / 60 + 773)},
	}
	for _, tt := range tests {
		got, err := dms.Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-12, tt.in)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		dd      float64
		d, m, s float64
	}{
		{10.5, 10, 30, 0},
		{-10.5, -10, 30, 0},
		{-0.25, 0, -15, 0},
		{-0.0025, 0, 0, -9},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		d, m, s := dms.Split(tt.dd)
		assert.Equal(t, tt.d, d, "degrees of %v", tt.dd)
		assert.Equal(t, tt.m, m, "minutes of %v", tt.dd)
		assert.InDelta(t, tt.s, s, 1e-9, "seconds of %v", tt.dd)
	}
}

func TestSplitThenParse(t *testing.T) {
	d, m, s := dms.Split(-77.25)
	assert.Equal(t, []float64{-77, 15, 0}, []float64{d, m, s})

	got, err := dms.Parse("0771500W")
	require.NoError(t, err)
	assert.Equal(t, -77.25, got)
}
