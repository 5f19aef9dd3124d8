// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tokyo.dev/tokyo/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	info := cfg.info()
	if info.Format != render.BGR || info.BytesPerPixel != 4 || info.Stride != info.Width {
		t.Errorf("default framebuffer %+v", info)
	}
}

func TestDecodeConfig(t *testing.T) {
	const doc = `
width: 320
height: 200
format: u8
bytes_per_pixel: 1
timer_hz: 1000
log_level: debug
`
	cfg := defaultConfig()
	if err := decodeConfig(strings.NewReader(doc), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 || cfg.Height != 200 || cfg.TimerHz != 1000 || cfg.Scale != 2 {
		t.Errorf("got %+v", cfg)
	}
	if f, _ := cfg.pixelFormat(); f != render.U8 {
		t.Errorf("format %v", f)
	}
	if l, _ := cfg.level(); l != slog.LevelDebug {
		t.Errorf("level %v", l)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name, doc string
	}{
		{"unknown field", "colour: blue\n"},
		{"format", "format: cmyk\n"},
		{"pixel size", "format: u8\nbytes_per_pixel: 4\n"},
		{"size", "width: 0\n"},
		{"timer", "timer_hz: 0\n"},
		{"scale", "scale: -1\n"},
		{"level", "log_level: loud\n"},
		{"syntax", "width: [\n"},
	}
	for _, tt := range tests {
		cfg := defaultConfig()
		if err := decodeConfig(strings.NewReader(tt.doc), &cfg); err == nil {
			t.Errorf("%s: no error", tt.name)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trapview.yaml")
	if err := os.WriteFile(path, []byte("format: rgb\nbytes_per_pixel: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := cfg.pixelFormat(); f != render.RGB || cfg.BytesPerPixel != 3 {
		t.Errorf("got %+v", cfg)
	}
	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, err := loadConfig(empty); err != nil || cfg != defaultConfig() {
		t.Errorf("empty file: %+v, %v", cfg, err)
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
}
