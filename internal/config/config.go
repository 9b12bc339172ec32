package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/geotrans/mgrs"
)

// Ellipsoid names the reference ellipsoid either by its two letter code or
// by explicit parameters. Explicit parameters win when SemiMajorAxis is set.
type Ellipsoid struct {
	Code          string  `yaml:"code"`
	SemiMajorAxis float64 `yaml:"semi_major_axis"`
	Flattening    float64 `yaml:"flattening"`
}

// Config holds the settings shared by the command line tools.
type Config struct {
	Ellipsoid Ellipsoid `yaml:"ellipsoid"`
	Precision int       `yaml:"precision"`
	LogLevel  string    `yaml:"log_level"`
}

// Option adjusts a Config built by New or Load.
type Option func(*Config)

// WithPrecision sets the default MGRS precision
func WithPrecision(precision int) Option {
	return func(c *Config) {
		c.Precision = precision
	}
}

// WithLogLevel sets the log level, falling back to info when it does not parse
func WithLogLevel(level string) Option {
	return func(c *Config) {
		if _, err := log.ParseLevel(level); err != nil {
			level = log.InfoLevel.String()
		}
		c.LogLevel = level
	}
}

// WithEllipsoidCode selects a named ellipsoid, dropping any explicit parameters
func WithEllipsoidCode(code string) Option {
	return func(c *Config) {
		c.Ellipsoid = Ellipsoid{Code: strings.ToUpper(code)}
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Ellipsoid: Ellipsoid{Code: "WE"},
		Precision: 5,
		LogLevel:  log.InfoLevel.String(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Load reads a YAML configuration file over the defaults, then applies opts.
func Load(path string, opts ...Option) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the precision, log level and ellipsoid.
func (c *Config) Validate() error {
	if c.Precision < 0 || c.Precision > 5 {
		return fmt.Errorf("precision %d out of range 0-5", c.Precision)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	_, err := c.ResolveEllipsoid()
	return err
}

// ResolveEllipsoid returns the configured ellipsoid.
func (c *Config) ResolveEllipsoid() (mgrs.Ellipsoid, error) {
	if c.Ellipsoid.SemiMajorAxis != 0 {
		return mgrs.NewEllipsoid(c.Ellipsoid.SemiMajorAxis, c.Ellipsoid.Flattening)
	}
	e, ok := mgrs.EllipsoidByCode(strings.ToUpper(c.Ellipsoid.Code))
	if !ok {
		return mgrs.Ellipsoid{}, fmt.Errorf("unknown ellipsoid code %q", c.Ellipsoid.Code)
	}
	return e, nil
}

// Logger builds a logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{Level: level})
}

// Converter builds an MGRS converter on the configured ellipsoid.
func (c *Config) Converter(logger *log.Logger) (*mgrs.Converter, error) {
	e, err := c.ResolveEllipsoid()
	if err != nil {
		return nil, err
	}
	return mgrs.NewConverter(mgrs.WithEllipsoid(e), mgrs.WithLogger(logger))
}
