// Package config holds the settings of the svgreveal command,
// read from an optional YAML file then from the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/benoitkugler/svgreveal/svgicon"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of the environment variables,
// as in SVGREVEAL_THRESHOLD.
const EnvPrefix = "SVGREVEAL"

// Output formats
const (
	PNG = "png" // one image per frame
	PDF = "pdf" // one page per frame
)

type Config struct {
	// Samples per unit of path length
	Threshold        float64 `yaml:"threshold" envconfig:"THRESHOLD"`
	DefaultFill      string  `yaml:"default_fill" envconfig:"DEFAULT_FILL"`
	DefaultStroke    string  `yaml:"default_stroke" envconfig:"DEFAULT_STROKE"`
	DefaultLineWidth float64 `yaml:"default_line_width" envconfig:"DEFAULT_LINE_WIDTH"`
	TruncateShapes   bool    `yaml:"truncate_shapes" envconfig:"TRUNCATE_SHAPES"`
	ErrorMode        string  `yaml:"error_mode" envconfig:"ERROR_MODE"`

	// Frames, if positive, overrides FPS * Duration.
	Frames   int           `yaml:"frames" envconfig:"FRAMES"`
	FPS      float64       `yaml:"fps" envconfig:"FPS"`
	Duration time.Duration `yaml:"duration" envconfig:"DURATION"`

	Width      int     `yaml:"width" envconfig:"WIDTH"`
	Height     int     `yaml:"height" envconfig:"HEIGHT"`
	Margin     float64 `yaml:"margin" envconfig:"MARGIN"`
	Background string  `yaml:"background" envconfig:"BACKGROUND"` // empty for transparent

	Format   string `yaml:"format" envconfig:"FORMAT"`
	Workers  int    `yaml:"workers" envconfig:"WORKERS"`
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Threshold:        1,
		DefaultFill:      "black",
		DefaultStroke:    "black",
		DefaultLineWidth: 1,
		ErrorMode:        svgicon.WarnErrorMode.String(),
		FPS:              24,
		Duration:         2 * time.Second,
		Width:            512,
		Height:           512,
		Margin:           16,
		Background:       "white",
		Format:           PNG,
		Workers:          4,
		LogLevel:         "info",
	}
}

// Load starts from Default, then applies the YAML file `file`
// (if not empty), then the environment variables.
// The result is validated.
func Load(file string) (Config, error) {
	cfg := Default()
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return cfg, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("invalid config file %s: %w", file, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// isColor returns true if `s` is understood by svgicon.ParseColor:
// an invalid color resolves to the fallback, so two distinct
// fallbacks give distinct results.
func isColor(s string) bool {
	return svgicon.ParseColor(s, color.NRGBA{}) == svgicon.ParseColor(s, color.NRGBA{A: 1})
}

// Validate reports all the invalid fields.
func (cfg Config) Validate() error {
	var errs []error
	if !(cfg.Threshold > 0) || math.IsInf(cfg.Threshold, 1) {
		errs = append(errs, fmt.Errorf("threshold must be positive, got %g", cfg.Threshold))
	}
	for _, c := range [...]struct{ name, value string }{
		{"default_fill", cfg.DefaultFill},
		{"default_stroke", cfg.DefaultStroke},
	} {
		if !isColor(c.value) {
			errs = append(errs, fmt.Errorf("%s: invalid color %q", c.name, c.value))
		}
	}
	if cfg.Background != "" && !isColor(cfg.Background) {
		errs = append(errs, fmt.Errorf("background: invalid color %q", cfg.Background))
	}
	if cfg.DefaultLineWidth < 0 {
		errs = append(errs, fmt.Errorf("default_line_width must not be negative, got %g", cfg.DefaultLineWidth))
	}
	if _, err := svgicon.ParseErrorMode(cfg.ErrorMode); err != nil {
		errs = append(errs, err)
	}
	if n := cfg.FrameCount(); n < 2 {
		errs = append(errs, fmt.Errorf("at least 2 frames are required, got %d", n))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid output size %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.Margin < 0 || 2*cfg.Margin >= float64(min(cfg.Width, cfg.Height)) {
		errs = append(errs, fmt.Errorf("margin %g does not fit in %dx%d", cfg.Margin, cfg.Width, cfg.Height))
	}
	if cfg.Format != PNG && cfg.Format != PDF {
		errs = append(errs, fmt.Errorf("unsupported format %q (expected %s or %s)", cfg.Format, PNG, PDF))
	}
	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers))
	}
	if _, err := cfg.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FrameCount returns the number of exported frames.
func (cfg Config) FrameCount() int {
	if cfg.Frames > 0 {
		return cfg.Frames
	}
	n := cfg.FPS * cfg.Duration.Seconds()
	if !(n > 0) || math.IsInf(n, 1) {
		return 0
	}
	return int(math.Ceil(n)) + 1
}

// Progresses returns the progress of each frame, evenly spaced
// from 0 to 1 included.
func (cfg Config) Progresses() []float64 {
	n := cfg.FrameCount()
	if n < 2 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

// Level returns the log level.
func (cfg Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// BackgroundColor returns nil for a transparent background.
func (cfg Config) BackgroundColor() color.Color {
	if cfg.Background == "" {
		return nil
	}
	c := svgicon.ParseColor(cfg.Background, color.NRGBA{})
	if c.A == 0 {
		return nil
	}
	return c
}

// CompileOptions returns the options used to compile the input.
func (cfg Config) CompileOptions(logger *slog.Logger) (svgicon.Options, error) {
	mode, err := svgicon.ParseErrorMode(cfg.ErrorMode)
	if err != nil {
		return svgicon.Options{}, err
	}
	black := color.NRGBA{A: 0xff}
	return svgicon.Options{
		Threshold: cfg.Threshold,
		Defaults: svgicon.NewDrawSettings(
			svgicon.ParseColor(cfg.DefaultFill, black),
			svgicon.ParseColor(cfg.DefaultStroke, black),
			cfg.DefaultLineWidth,
		),
		ErrorMode:      mode,
		TruncateShapes: cfg.TruncateShapes,
		Logger:         logger,
	}, nil
}
