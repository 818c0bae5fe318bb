// Package config loads the giv configuration file.
//
// The file is TOML, read from $XDG_CONFIG_HOME/giv/config.toml (or
// ~/.config/giv/config.toml) unless a path is given:
//
//	[layout]
//	scale = 2.0
//	hgap = 2
//	vgap = 2
//	track_gap = 10
//	panel_gap = 20
//
//	[render]
//	formats = ["svg", "png"]
//	style = "compact"
//	background = "white"
//	margin = 10
//
//	[cache]
//	dir = "/var/cache/giv"
//	ttl = "72h"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	timeout = "30s"
//
//	[import]
//	ucsc_host = "genome-mysql.soe.ucsc.edu:3306"
//
// Command-line flags override file values.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/importer"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/pipeline"
)

const (
	appName  = "giv"
	fileName = "config.toml"

	// DefaultAddr is the render service listen address.
	DefaultAddr = ":8080"

	// DefaultServerTimeout bounds one render request.
	DefaultServerTimeout = 30 * time.Second

	// DefaultMaxBodyBytes caps uploaded documents.
	DefaultMaxBodyBytes = 8 << 20
)

// Config is the whole configuration file.
type Config struct {
	Layout Layout `toml:"layout"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
	Import Import `toml:"import"`
}

// Layout overrides document placement values. Unset gaps keep the
// document's own values.
type Layout struct {
	Scale    float64  `toml:"scale"`
	HGap     *float64 `toml:"hgap"`
	VGap     *float64 `toml:"vgap"`
	TrackGap *float64 `toml:"track_gap"`
	PanelGap *float64 `toml:"panel_gap"`
}

// Render holds output defaults.
type Render struct {
	Formats    []string `toml:"formats"`
	Style      string   `toml:"style"`
	Background string   `toml:"background"`
	Margin     float64  `toml:"margin"`
	PNGScale   float64  `toml:"png_scale"`
	Bands      bool     `toml:"bands"`
}

// Cache selects and tunes the artifact cache.
type Cache struct {
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
	Disabled bool     `toml:"disabled"`
}

// Server configures the render service.
type Server struct {
	Addr         string   `toml:"addr"`
	Timeout      Duration `toml:"timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Import configures remote feature sources.
type Import struct {
	UCSCHost string `toml:"ucsc_host"`
}

// Duration is a time.Duration written as a string ("30s", "72h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: Render{
			Formats:    []string{pipeline.FormatSVG},
			Style:      pipeline.DefaultStyle,
			Background: pipeline.DefaultBackground,
			Margin:     pipeline.DefaultMargin,
			PNGScale:   pipeline.DefaultPNGScale,
		},
		Server: Server{
			Addr:         DefaultAddr,
			Timeout:      Duration{DefaultServerTimeout},
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Import: Import{
			UCSCHost: importer.UCSCHost,
		},
	}
}

// Path returns the default configuration file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the file at path over the defaults. An empty path reads the
// default location, where a missing file is not an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the pipeline and cache would reject later.
func (c Config) Validate() error {
	opts := c.PipelineOptions()
	if err := opts.ValidateForParse(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[render] style")
	}
	if err := opts.ValidateForLayout(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[layout]")
	}
	if err := opts.ValidateForRender(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[render]")
	}
	if c.Cache.RedisURL != "" {
		if err := errors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[cache] redis_url")
		}
	}
	if c.Cache.TTL.Duration < 0 || c.Server.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	return nil
}

// PipelineOptions converts the layout and render sections.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Style:      c.Render.Style,
		Scale:      c.Layout.Scale,
		HGap:       c.Layout.HGap,
		VGap:       c.Layout.VGap,
		TrackGap:   c.Layout.TrackGap,
		PanelGap:   c.Layout.PanelGap,
		Formats:    append([]string(nil), c.Render.Formats...),
		Background: c.Render.Background,
		Margin:     c.Render.Margin,
		PNGScale:   c.Render.PNGScale,
		Bands:      c.Render.Bands,
	}
}
