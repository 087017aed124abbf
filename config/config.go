// Package config loads UniSearch settings from an optional YAML file and
// UNISEARCH_* environment variables. Every key has a default so the binary
// runs with no configuration at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// UNISEARCH_DIRECTORY_BASE_URL overrides directory.base_url.
const EnvPrefix = "UNISEARCH"

// Dropdown modes control when the province selector is rendered.
const (
	DropdownAlways   = "always"   // whenever a search produced results
	DropdownMultiple = "multiple" // only when more than one real province exists
)

// Config is the fully resolved application configuration.
type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Server    ServerConfig    `mapstructure:"server"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Search    SearchConfig    `mapstructure:"search"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	Export    ExportConfig    `mapstructure:"export"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Address           string `mapstructure:"address"`
	Verbose           bool   `mapstructure:"verbose"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// DirectoryConfig describes the upstream university directory.
type DirectoryConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	MaxRetries    int           `mapstructure:"max_retries"`
}

// SearchConfig captures the behaviors that differed between revisions of
// the widget: auto-search on typing and dropdown visibility.
type SearchConfig struct {
	AutoSearch bool          `mapstructure:"auto_search"`
	Debounce   time.Duration `mapstructure:"debounce"`
	Dropdown   string        `mapstructure:"dropdown"`
}

// SessionsConfig bounds the in-memory per-browser session registry.
type SessionsConfig struct {
	Max    int           `mapstructure:"max"`
	TTL    time.Duration `mapstructure:"ttl"`
	Secret string        `mapstructure:"secret"`
}

// ExportConfig tunes card rasterization.
type ExportConfig struct {
	Quality int    `mapstructure:"quality"`
	Scale   int    `mapstructure:"scale"`
	Dir     string `mapstructure:"dir"`
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.verbose", true)
	v.SetDefault("server.requests_per_minute", 120)

	v.SetDefault("directory.base_url", "http://universities.hipolabs.com/search")
	v.SetDefault("directory.timeout", 15*time.Second)
	v.SetDefault("directory.rate_per_second", 5.0)
	v.SetDefault("directory.max_retries", 3)

	v.SetDefault("search.auto_search", true)
	v.SetDefault("search.debounce", 400*time.Millisecond)
	v.SetDefault("search.dropdown", DropdownAlways)

	v.SetDefault("sessions.max", 1024)
	v.SetDefault("sessions.ttl", 30*time.Minute)
	v.SetDefault("sessions.secret", "")

	v.SetDefault("export.quality", 90)
	v.SetDefault("export.scale", 2)
	v.SetDefault("export.dir", ".")
}

// New returns a viper instance wired with defaults, env overrides and the
// standard config search path. cfgFile, when set, replaces the search path.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("unisearch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "unisearch"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (a missing file is fine) and decodes the result.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, serr.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, serr.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by the defaults alone.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Validate rejects settings the rest of the program cannot work with.
func (c Config) Validate() error {
	if c.Directory.BaseURL == "" {
		return serr.New("directory.base_url must not be empty")
	}
	if c.Directory.RatePerSecond <= 0 {
		return serr.New("directory.rate_per_second must be positive")
	}
	switch c.Search.Dropdown {
	case DropdownAlways, DropdownMultiple:
	default:
		return serr.New(fmt.Sprintf("search.dropdown must be %q or %q, got %q", DropdownAlways, DropdownMultiple, c.Search.Dropdown))
	}
	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		return serr.New("export.quality must be between 1 and 100")
	}
	if c.Export.Scale < 1 {
		return serr.New("export.scale must be at least 1")
	}
	if c.Sessions.Max < 1 {
		return serr.New("sessions.max must be at least 1")
	}
	return nil
}
