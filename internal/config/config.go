// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the hwboard command configuration file.
//
package config

import (
	"os"
	"path/filepath"

	"github.com/db47h/hwboard"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the command settings. Command line flags override them.
//
type Config struct {
	// Size is the grid side of every network.
	Size int `yaml:"size" validate:"min=8,max=65536"`
	// Strict enables extra network consistency warnings.
	Strict bool `yaml:"strict"`
	// WireMode is the bend mode of wires given by their two end points:
	// straight or diagonal.
	WireMode string `yaml:"wire_mode" validate:"oneof=straight diagonal"`
	// Books lists component books loaded into the part registry. Relative
	// paths are relative to the configuration file.
	Books []string `yaml:"books" validate:"dive,required"`
	// LogLevel is the minimum zap level logged.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	// MetricsFile, if set, receives Prometheus metrics in text format.
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		Size:     hwboard.DefaultSize,
		WireMode: "straight",
		LogLevel: "info",
	}
}

// Load reads the named configuration file over the defaults. An empty name
// returns the defaults.
//
func Load(name string) (*Config, error) {
	c := Default()
	if name == "" {
		return c, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil {
		return nil, errors.Wrap(err, name)
	}
	dir := filepath.Dir(name)
	for i, b := range c.Books {
		if b != "" && !filepath.IsAbs(b) {
			c.Books[i] = filepath.Join(dir, b)
		}
	}
	if err = c.Validate(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return c, nil
}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if c.Size&1 != 0 {
		return errors.Errorf("invalid configuration: odd grid size %d", c.Size)
	}
	return nil
}

// Level returns the configured log level.
//
func (c *Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Options returns the network options for c.
//
func (c *Config) Options() []hwboard.Option {
	mode := hwboard.Straight
	if c.WireMode == "diagonal" {
		mode = hwboard.Diagonal
	}
	return []hwboard.Option{
		hwboard.WithSize(c.Size),
		hwboard.WithStrict(c.Strict),
		hwboard.WithWireMode(mode),
	}
}
