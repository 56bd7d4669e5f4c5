package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/bstviz/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Canvas.Width != 1000 || cfg.Canvas.Height != 700 {
		t.Errorf("canvas = %vx%v, want 1000x700", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Canvas.Radius != 20 || cfg.Canvas.RowHeight != 60 {
		t.Errorf("radius/row = %v/%v, want 20/60", cfg.Canvas.Radius, cfg.Canvas.RowHeight)
	}
	if cfg.Colors.Found != "red" || cfg.Colors.Visited != "yellow" || cfg.Colors.Node != "#87CEEB" {
		t.Errorf("colors = %+v, want classic palette", cfg.Colors)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.SessionTTL.Duration != 30*time.Minute {
		t.Errorf("server = %+v", cfg.Server)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[canvas]
width = 1280
row_height = 80

[colors]
search = "crimson"

[server]
session_ttl = "5m"
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Canvas.Width != 1280 || cfg.Canvas.Height != 700 {
		t.Errorf("canvas = %vx%v, want 1280x700", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Canvas.RowHeight != 80 {
		t.Errorf("row_height = %v, want 80", cfg.Canvas.RowHeight)
	}
	if cfg.Colors.Found != "crimson" || cfg.Colors.Visited != "yellow" {
		t.Errorf("colors = %+v", cfg.Colors)
	}
	if cfg.Server.SessionTTL.Duration != 5*time.Minute {
		t.Errorf("session_ttl = %v, want 5m", cfg.Server.SessionTTL)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[canvas\nwidth = 1"},
		{"unknown key", "[canvas]\ndepth = 3"},
		{"unknown section", "[database]\nurl = \"x\""},
		{"bad duration", "[server]\nsession_ttl = \"soon\""},
		{"zero width", "[canvas]\nwidth = 0"},
		{"negative radius", "[canvas]\nradius = -4"},
		{"zero ttl", "[server]\nsession_ttl = \"0s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", "bstviz", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path, err = DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", "bstviz", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// Missing default file falls back to defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}

	// Missing explicit file is an error.
	if _, err := Load(filepath.Join(dir, "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) error = %v, want INVALID_CONFIG", err)
	}

	// Default location is picked up.
	path := filepath.Join(dir, "bstviz", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \"127.0.0.1:9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q, want 127.0.0.1:9000", cfg.Server.Addr)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[canvas]", "[colors]", "[server]", `session_ttl = "30m0s"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Write() output missing %q:\n%s", want, out)
		}
	}

	cfg, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(Write()) error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("round trip = %+v, want defaults", cfg)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Canvas.Width = 500
	cfg.Colors.Node = "white"
	opts := cfg.PipelineOptions()
	if opts.Width != 500 || opts.Radius != 20 || opts.RowHeight != 60 {
		t.Errorf("PipelineOptions() = %+v", opts)
	}
	if opts.Palette.Node != "white" {
		t.Errorf("Palette.Node = %q, want white", opts.Palette.Node)
	}
}
