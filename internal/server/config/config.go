package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the server reads,
// e.g. TERRARIA_PASSWORD.
const EnvPrefix = "TERRARIA"

// Config holds the server configuration. World is a local path or any
// go-getter source (http::, s3::, git::...). An empty Password disables the
// password check and a zero SectionCacheMB disables the section cache.
// LogFile adds a rotated log file next to stdout.
type Config struct {
	Addr           string `mapstructure:"addr" json:"addr"`
	Password       string `mapstructure:"password" json:"password"`
	World          string `mapstructure:"world" json:"world"`
	CacheDir       string `mapstructure:"cache_dir" json:"cache_dir"`
	SectionCacheMB int64  `mapstructure:"section_cache_mb" json:"section_cache_mb"`

	LogLevel      string `mapstructure:"log_level" json:"log_level"`   // debug, info, warn or error
	LogFormat     string `mapstructure:"log_format" json:"log_format"` // "text" or "json"
	LogFile       string `mapstructure:"log_file" json:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb" json:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups" json:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days" json:"log_max_age_days"`
	LogCompress   bool   `mapstructure:"log_compress" json:"log_compress"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:           ":7777",
		CacheDir:       "worlds",
		SectionCacheMB: 64,
		LogLevel:       "info",
		LogFormat:      "text",
		LogMaxSizeMB:   100,
		LogMaxBackups:  3,
		LogMaxAgeDays:  28,
	}
}

// Load reads the config file at path (yaml, json or toml, by extension) and
// TERRARIA_* environment variables over the defaults. A .env file in the
// working directory is loaded into the environment first. An empty path
// reads the environment only.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Defaults register every key, so Unmarshal also sees keys that are only
	// set in the environment.
	def := DefaultConfig()
	v.SetDefault("addr", def.Addr)
	v.SetDefault("password", def.Password)
	v.SetDefault("world", def.World)
	v.SetDefault("cache_dir", def.CacheDir)
	v.SetDefault("section_cache_mb", def.SectionCacheMB)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_max_size_mb", def.LogMaxSizeMB)
	v.SetDefault("log_max_backups", def.LogMaxBackups)
	v.SetDefault("log_max_age_days", def.LogMaxAgeDays)
	v.SetDefault("log_compress", def.LogCompress)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["addr"] {
		cfg.Addr = fromFile.Addr
	}
	if !explicitFlags["password"] {
		cfg.Password = fromFile.Password
	}
	if !explicitFlags["world"] {
		cfg.World = fromFile.World
	}
	if !explicitFlags["cache-dir"] {
		cfg.CacheDir = fromFile.CacheDir
	}
	if !explicitFlags["section-cache-mb"] {
		cfg.SectionCacheMB = fromFile.SectionCacheMB
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["log-format"] {
		cfg.LogFormat = fromFile.LogFormat
	}
	if !explicitFlags["log-file"] {
		cfg.LogFile = fromFile.LogFile
	}
	cfg.LogMaxSizeMB = fromFile.LogMaxSizeMB
	cfg.LogMaxBackups = fromFile.LogMaxBackups
	cfg.LogMaxAgeDays = fromFile.LogMaxAgeDays
	cfg.LogCompress = fromFile.LogCompress
}
