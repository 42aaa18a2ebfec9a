// Package config reads the optional gradual.yaml file.
package config

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/cottand/gradual/internal/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory when no path is given.
const FileName = "gradual.yaml"

type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

type Config struct {
	// MaxInferenceIterations bounds the passes of scope inference, 0 for the default.
	MaxInferenceIterations int `yaml:"maxInferenceIterations"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"logLevel"`
	// LogSections are enabled below warn, see log.EnableSections.
	LogSections []string `yaml:"logSections,omitempty"`
	Color       Color    `yaml:"color"`
}

func Default() Config {
	return Config{
		LogLevel: "warn",
		Color:    ColorAuto,
	}
}

// Load reads the file at path over Default. A missing file is not an error
// when path is the default FileName.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	return Parse(data, path)
}

// Parse reads a configuration document. path is only used in errors.
func Parse(data []byte, path string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.MaxInferenceIterations < 0 {
		return errors.Errorf("maxInferenceIterations must not be negative, got %d", c.MaxInferenceIterations)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return errors.Errorf("color must be one of auto, always or never, got %q", c.Color)
}

// Level is the parsed LogLevel.
func (c Config) Level() (slog.Level, error) {
	l, err := log.ParseLevel(c.LogLevel)
	return l, errors.Wrapf(err, "logLevel %q", c.LogLevel)
}

// Apply configures the process-wide logger.
func (c Config) Apply() error {
	l, err := c.Level()
	if err != nil {
		return err
	}
	log.SetLevel(l)
	log.EnableSections(c.LogSections...)
	return nil
}
