package config

import "errors"

// Config is the top-level configuration struct for strata.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Serve  ServeConfig  `mapstructure:"serve"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Cache  CacheConfig  `mapstructure:"cache"`
}

// RenderConfig holds terminal and file output settings.
type RenderConfig struct {
	Format  string `mapstructure:"format"`
	Palette string `mapstructure:"palette"`
	NoColor bool   `mapstructure:"no_color"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr           string `mapstructure:"addr"`
	Metrics        bool   `mapstructure:"metrics"`
	MaxRequestSize int64  `mapstructure:"max_request_size"`
}

// BatchConfig holds directory classification settings.
type BatchConfig struct {
	Workers     int   `mapstructure:"workers"`
	MaxFileSize int64 `mapstructure:"max_file_size"`
}

// CacheConfig holds classification cache settings.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFormat indicates an unknown render format.
	ErrInvalidFormat = errors.New("render.format must be one of: text, json, yaml, table")
	// ErrInvalidPalette indicates an unknown render palette.
	ErrInvalidPalette = errors.New("render.palette must be one of: default, mono, bright")
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("batch.workers must be non-negative")
	// ErrInvalidMaxFileSize indicates the max file size is negative.
	ErrInvalidMaxFileSize = errors.New("batch.max_file_size must be non-negative")
	// ErrInvalidMaxRequestSize indicates the max request size is negative.
	ErrInvalidMaxRequestSize = errors.New("serve.max_request_size must be non-negative")
	// ErrEmptyAddr indicates the serve address is empty.
	ErrEmptyAddr = errors.New("serve.addr must not be empty")
)

var validFormats = map[string]struct{}{
	"text":  {},
	"json":  {},
	"yaml":  {},
	"table": {},
}

var validPalettes = map[string]struct{}{
	"default": {},
	"mono":    {},
	"bright":  {},
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if _, ok := validFormats[c.Render.Format]; !ok {
		return ErrInvalidFormat
	}

	if _, ok := validPalettes[c.Render.Palette]; !ok {
		return ErrInvalidPalette
	}

	if c.Batch.Workers < 0 {
		return ErrInvalidWorkers
	}

	if c.Batch.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}

	if c.Serve.Addr == "" {
		return ErrEmptyAddr
	}

	if c.Serve.MaxRequestSize < 0 {
		return ErrInvalidMaxRequestSize
	}

	return nil
}
