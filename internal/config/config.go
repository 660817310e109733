// Package config loads libscope settings from defaults, an optional
// libscope.toml file, a .env file and LIBSCOPE_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/libscope/pkg/cache"
)

// AppName names the config and cache directories.
const AppName = "libscope"

// Interpreter modes.
const (
	InterpreterSystem   = "system"
	InterpreterEmbedded = "embedded"
)

// Config is the complete libscope configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Python   PythonConfig   `mapstructure:"python"`
	Provider ProviderConfig `mapstructure:"provider"`
	Examples ExamplesConfig `mapstructure:"examples"`
	Cache    CacheConfig    `mapstructure:"cache"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr   string `mapstructure:"addr"`
	Prefix string `mapstructure:"prefix"` // route prefix for the API, e.g. "/api"
}

// PythonConfig selects the interpreter used by the runtime provider.
type PythonConfig struct {
	Interpreter string        `mapstructure:"interpreter"` // "system" or "embedded"
	Executable  string        `mapstructure:"executable"`  // looked up on PATH when relative
	Paths       []string      `mapstructure:"paths"`       // prepended to PYTHONPATH
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ProviderConfig controls the static fallback provider.
type ProviderConfig struct {
	StaticFallback bool     `mapstructure:"static_fallback"`
	SitePackages   []string `mapstructure:"site_packages"`
}

// ExamplesConfig tunes the example aggregator.
type ExamplesConfig struct {
	StaleAfter       time.Duration `mapstructure:"stale_after"`
	FetchLimit       int           `mapstructure:"fetch_limit"`
	Workers          int           `mapstructure:"workers"`
	MinSnippetLength int           `mapstructure:"min_snippet_length"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend         string        `mapstructure:"backend"`
	Dir             string        `mapstructure:"dir"`
	RedisURL        string        `mapstructure:"redis_url"`
	MongoURI        string        `mapstructure:"mongo_uri"`
	MongoDatabase   string        `mapstructure:"mongo_database"`
	MongoCollection string        `mapstructure:"mongo_collection"`
	MemoryCapacity  int           `mapstructure:"memory_capacity"`
	HTTPTTL         time.Duration `mapstructure:"http_ttl"` // lifetime of cached upstream responses
	Namespace       string        `mapstructure:"namespace"` // key prefix for shared backends
}

// GitHubConfig holds code-search credentials.
type GitHubConfig struct {
	Token string `mapstructure:"token"`
}

// HTTPConfig configures outgoing requests.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig points at an optional recommendation catalog override.
type CatalogConfig struct {
	File string `mapstructure:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dir, err := CacheDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), AppName)
	}
	return &Config{
		Server: ServerConfig{
			Addr:   ":5000",
			Prefix: "/api",
		},
		Python: PythonConfig{
			Interpreter: InterpreterSystem,
			Executable:  "python3",
			Paths:       []string{},
			Timeout:     30 * time.Second,
		},
		Provider: ProviderConfig{
			StaticFallback: true,
			SitePackages:   []string{},
		},
		Examples: ExamplesConfig{
			StaleAfter:       7 * 24 * time.Hour,
			FetchLimit:       5,
			Workers:          5,
			MinSnippetLength: 20,
		},
		Cache: CacheConfig{
			Backend:         cache.BackendFile,
			Dir:             dir,
			RedisURL:        "redis://localhost:6379/0",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   AppName,
			MongoCollection: "cache",
			MemoryCapacity:  1000,
			HTTPTTL:         24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout: 10 * time.Second,
		},
	}
}

// CacheOptions converts the cache section into [cache.Options].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:         c.Cache.Backend,
		Dir:             c.Cache.Dir,
		RedisURL:        c.Cache.RedisURL,
		Prefix:          AppName + ":",
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
		MemoryCapacity:  c.Cache.MemoryCapacity,
	}
}

// CacheDir returns the cache directory using XDG standard (~/.cache/libscope/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// ConfigDir returns the user config directory (~/.config/libscope/).
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}
