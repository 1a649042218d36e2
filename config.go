package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables that are not part of the CLI surface.
type Config struct {
	FFprobeBin      string   `toml:"ffprobe_bin"`
	FFmpegBin       string   `toml:"ffmpeg_bin"`
	VideoExtensions []string `toml:"video_extensions"`
	LogLevel        string   `toml:"log_level"`
}

func defaultConfig() *Config {
	return &Config{
		FFprobeBin:      "ffprobe",
		FFmpegBin:       "ffmpeg",
		VideoExtensions: append([]string(nil), defaultVideoExtensions...),
		LogLevel:        "info",
	}
}

// loadConfig reads a TOML file over the defaults. A missing file just
// means defaults; a malformed or invalid one is a startup error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.FFprobeBin = strings.TrimSpace(c.FFprobeBin)
	if c.FFprobeBin == "" {
		c.FFprobeBin = "ffprobe"
	}
	c.FFmpegBin = strings.TrimSpace(c.FFmpegBin)
	if c.FFmpegBin == "" {
		c.FFmpegBin = "ffmpeg"
	}

	exts := make([]string, 0, len(c.VideoExtensions))
	for _, ext := range c.VideoExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) > 0 {
		c.VideoExtensions = exts
	} else {
		c.VideoExtensions = append([]string(nil), defaultVideoExtensions...)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}
	return nil
}
