package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotrans/mgrs"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mgrs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "WE", cfg.Ellipsoid.Code)
	assert.Equal(t, 5, cfg.Precision)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestWithPrecision(t *testing.T) {
	cfg := New(WithPrecision(3))

	assert.Equal(t, 3, cfg.Precision)
}

func TestWithLogLevel(t *testing.T) {
	assert.Equal(t, "debug", New(WithLogLevel("debug")).LogLevel)
	assert.Equal(t, "info", New(WithLogLevel("chatty")).LogLevel)
}

func TestWithEllipsoidCode(t *testing.T) {
	cfg := New(WithEllipsoidCode("cc"))

	e, err := cfg.ResolveEllipsoid()
	require.NoError(t, err)
	assert.Equal(t, "CC", e.Code)
	assert.Equal(t, 6378206.4, e.SemiMajorAxis)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
ellipsoid:
  code: in
precision: 3
log_level: warn
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, "warn", cfg.LogLevel)
	e, err := cfg.ResolveEllipsoid()
	require.NoError(t, err)
	assert.Equal(t, "IN", e.Code)
}

func TestLoadOptionsOverrideFile(t *testing.T) {
	path := writeConfig(t, "precision: 1\n")

	cfg, err := Load(path, WithPrecision(4))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Precision)
	assert.Equal(t, "WE", cfg.Ellipsoid.Code)
}

func TestLoadExplicitEllipsoid(t *testing.T) {
	path := writeConfig(t, `
ellipsoid:
  semi_major_axis: 6378137
  flattening: 0.0033528106647474805
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	e, err := cfg.ResolveEllipsoid()
	require.NoError(t, err)
	assert.Empty(t, e.Code)
	assert.InDelta(t, mgrs.WGS84.Flattening, e.Flattening, 1e-15)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"precision":   "precision: 6\n",
		"log level":   "log_level: chatty\n",
		"code":        "ellipsoid:\n  code: ZZ\n",
		"flattening":  "ellipsoid:\n  semi_major_axis: 6378137\n  flattening: 1.5\n",
		"not yaml":    "precision: [\n",
		"wrong types": "precision: fine\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBadFlattening(t *testing.T) {
	_, err := Load(writeConfig(t, "ellipsoid:\n  semi_major_axis: 6378137\n  flattening: 1.5\n"))
	assert.ErrorIs(t, err, mgrs.ErrFlattening)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithLogLevel("warn")).Logger(&buf)

	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConverter(t *testing.T) {
	var buf bytes.Buffer
	cfg := New(WithEllipsoidCode("CC"))

	c, err := cfg.Converter(cfg.Logger(&buf))
	require.NoError(t, err)
	assert.Equal(t, "CC", c.Ellipsoid().Code)

	_, err = New(WithEllipsoidCode("??")).Converter(cfg.Logger(&buf))
	assert.Error(t, err)
}
