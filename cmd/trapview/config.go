// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"tokyo.dev/tokyo/render"
)

// Config is the trapview configuration file.
type Config struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Format        string `yaml:"format"`
	BytesPerPixel int    `yaml:"bytes_per_pixel"`
	TimerHz       uint32 `yaml:"timer_hz"`
	// Scale is the window size in device pixels per framebuffer pixel.
	Scale    int    `yaml:"scale"`
	LogLevel string `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Width:         640,
		Height:        400,
		Format:        "bgr",
		BytesPerPixel: 4,
		TimerHz:       100,
		Scale:         2,
		LogLevel:      "info",
	}
}

// loadConfig reads the file at path over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	if err := decodeConfig(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return cfg.validate()
}

func (c *Config) validate() error {
	f, err := c.pixelFormat()
	if err != nil {
		return err
	}
	if render.WriterFor(f, c.BytesPerPixel) == nil {
		return fmt.Errorf("format %s has no %d byte pixels", c.Format, c.BytesPerPixel)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("bad framebuffer size %dx%d", c.Width, c.Height)
	}
	if c.TimerHz == 0 {
		return errors.New("timer_hz must be positive")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("bad scale %d", c.Scale)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) pixelFormat() (render.PixelFormat, error) {
	for _, f := range []render.PixelFormat{render.RGB, render.BGR, render.U8} {
		if f.String() == c.Format {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown pixel format %q", c.Format)
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// info describes the framebuffer of a validated configuration.
func (c *Config) info() render.Info {
	f, _ := c.pixelFormat()
	return render.Info{
		Width:         c.Width,
		Height:        c.Height,
		Stride:        c.Width,
		BytesPerPixel: c.BytesPerPixel,
		Format:        f,
	}
}
