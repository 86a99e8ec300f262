package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		Render: RenderConfig{Format: "text", Palette: "default"},
		Serve:  ServeConfig{Addr: ":8573", MaxRequestSize: 1 << 20},
		Batch:  BatchConfig{Workers: 4, MaxFileSize: 1 << 20},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"bad format", func(c *Config) { c.Render.Format = "xml" }, ErrInvalidFormat},
		{"bad palette", func(c *Config) { c.Render.Palette = "neon" }, ErrInvalidPalette},
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }, ErrInvalidWorkers},
		{"negative max file size", func(c *Config) { c.Batch.MaxFileSize = -1 }, ErrInvalidMaxFileSize},
		{"empty addr", func(c *Config) { c.Serve.Addr = "" }, ErrEmptyAddr},
		{"negative request size", func(c *Config) { c.Serve.MaxRequestSize = -1 }, ErrInvalidMaxRequestSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	if cfg.Render.Format != DefaultRenderFormat {
		t.Errorf("format = %q, want %q", cfg.Render.Format, DefaultRenderFormat)
	}

	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("addr = %q, want %q", cfg.Serve.Addr, DefaultServeAddr)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "strata.yaml")

	contents := "render:\n  format: json\n  palette: mono\nserve:\n  addr: \"127.0.0.1:9000\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Render.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Render.Format)
	}

	if cfg.Render.Palette != "mono" {
		t.Errorf("palette = %q, want mono", cfg.Render.Palette)
	}

	if cfg.Serve.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q, want 127.0.0.1:9000", cfg.Serve.Addr)
	}

	// Unset keys keep their defaults.
	if cfg.Batch.MaxFileSize != DefaultBatchMaxFileSize {
		t.Errorf("max_file_size = %d, want default %d", cfg.Batch.MaxFileSize, DefaultBatchMaxFileSize)
	}
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "strata.yaml")

	if err := os.WriteFile(path, []byte("render:\n  format: xml\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("got %v, want ErrInvalidFormat", err)
	}
}
