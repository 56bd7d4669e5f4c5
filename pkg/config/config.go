// Package config loads bstviz settings from a TOML file.
//
// The file is optional. Its default location follows the XDG base directory
// convention ($XDG_CONFIG_HOME/bstviz/config.toml, falling back to
// ~/.config/bstviz/config.toml):
//
//	[canvas]
//	width = 1000
//	height = 700
//	radius = 20
//	row_height = 60
//
//	[colors]
//	search = "red"
//	traversal = "yellow"
//	node = "#87CEEB"
//	edge = "#000"
//	text = "#000"
//
//	[server]
//	addr = ":8080"
//	session_ttl = "30m"
//
// Command-line flags override values read from the file.
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
	"github.com/matzehuels/bstviz/pkg/pipeline"
	"github.com/matzehuels/bstviz/pkg/render/sink"
	"github.com/matzehuels/bstviz/pkg/session"
)

const (
	appName  = "bstviz"
	fileName = "config.toml"

	// DefaultAddr is the default HTTP listen address.
	DefaultAddr = ":8080"
)

// Config is the complete file configuration.
type Config struct {
	Canvas Canvas            `toml:"canvas"`
	Colors highlight.Palette `toml:"colors"`
	Server Server            `toml:"server"`
}

// Canvas holds drawing geometry in pixels.
type Canvas struct {
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Radius    float64 `toml:"radius"`
	RowHeight float64 `toml:"row_height"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr       string   `toml:"addr"`
	SessionTTL Duration `toml:"session_ttl"`
}

// Duration is a time.Duration written as a Go duration string ("30m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:     pipeline.DefaultWidth,
			Height:    pipeline.DefaultHeight,
			Radius:    sink.DefaultRadius,
			RowHeight: layout.RowHeight,
		},
		Colors: highlight.DefaultPalette(),
		Server: Server{
			Addr:       DefaultAddr,
			SessionTTL: Duration{session.DefaultTTL},
		},
	}
}

// DefaultPath returns the XDG location of the config file.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config file at path on top of the defaults.
//
// An empty path means DefaultPath; a missing default file is not an error.
// An explicitly named file must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(string(data))
}

// Parse decodes TOML on top of the defaults. Unknown keys are rejected.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.Colors = cfg.Colors.Merge(highlight.DefaultPalette())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "canvas width and height must be positive")
	case c.Canvas.Radius <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "canvas radius must be positive")
	case c.Canvas.RowHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "canvas row_height must be positive")
	case c.Server.SessionTTL.Duration <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "server session_ttl must be positive")
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// PipelineOptions returns render options seeded from the canvas and colours.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:     c.Canvas.Width,
		Height:    c.Canvas.Height,
		Radius:    c.Canvas.Radius,
		RowHeight: c.Canvas.RowHeight,
		Palette:   c.Colors,
	}
}
