package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".strata"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for strata settings.
const envPrefix = "STRATA"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Default values applied before file and environment overrides.
const (
	DefaultRenderFormat        = "text"
	DefaultRenderPalette       = "default"
	DefaultServeAddr           = ":8573"
	DefaultServeMetrics        = true
	DefaultServeMaxRequestSize = 4 << 20
	DefaultBatchWorkers        = 0 // 0 means GOMAXPROCS
	DefaultBatchMaxFileSize    = 1 << 20
	DefaultCacheEnabled        = true
)

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("render.format", DefaultRenderFormat)
	viperCfg.SetDefault("render.palette", DefaultRenderPalette)
	viperCfg.SetDefault("render.no_color", false)

	viperCfg.SetDefault("serve.addr", DefaultServeAddr)
	viperCfg.SetDefault("serve.metrics", DefaultServeMetrics)
	viperCfg.SetDefault("serve.max_request_size", DefaultServeMaxRequestSize)

	viperCfg.SetDefault("batch.workers", DefaultBatchWorkers)
	viperCfg.SetDefault("batch.max_file_size", DefaultBatchMaxFileSize)

	viperCfg.SetDefault("cache.enabled", DefaultCacheEnabled)
	viperCfg.SetDefault("cache.dir", defaultCacheDir())
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".strata-cache"
	}

	return base + string(os.PathSeparator) + "strata"
}
