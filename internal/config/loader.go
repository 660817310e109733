package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadOptions controls where [Load] looks for settings.
type LoadOptions struct {
	// File is an explicit config file. When set, it must exist.
	File string

	// Dir is searched for libscope.toml before the user config directory.
	// Empty means the working directory.
	Dir string

	// EnvFile is the dotenv file to load. Empty means ".env"; a missing
	// file is ignored.
	EnvFile string
}

// Load resolves the configuration with the following priority (highest first):
//  1. LIBSCOPE_* environment variables (and GITHUB_TOKEN), including values from .env
//  2. The config file
//  3. [Default]
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.SetEnvPrefix("LIBSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("github.token", "LIBSCOPE_GITHUB_TOKEN", "GITHUB_TOKEN")

	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("toml")
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
		if userDir, err := ConfigDir(); err == nil {
			v.AddConfigPath(userDir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.prefix", d.Server.Prefix)

	v.SetDefault("python.interpreter", d.Python.Interpreter)
	v.SetDefault("python.executable", d.Python.Executable)
	v.SetDefault("python.paths", d.Python.Paths)
	v.SetDefault("python.timeout", d.Python.Timeout)

	v.SetDefault("provider.static_fallback", d.Provider.StaticFallback)
	v.SetDefault("provider.site_packages", d.Provider.SitePackages)

	v.SetDefault("examples.stale_after", d.Examples.StaleAfter)
	v.SetDefault("examples.fetch_limit", d.Examples.FetchLimit)
	v.SetDefault("examples.workers", d.Examples.Workers)
	v.SetDefault("examples.min_snippet_length", d.Examples.MinSnippetLength)

	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
	v.SetDefault("cache.mongo_uri", d.Cache.MongoURI)
	v.SetDefault("cache.mongo_database", d.Cache.MongoDatabase)
	v.SetDefault("cache.mongo_collection", d.Cache.MongoCollection)
	v.SetDefault("cache.memory_capacity", d.Cache.MemoryCapacity)
	v.SetDefault("cache.http_ttl", d.Cache.HTTPTTL)
	v.SetDefault("cache.namespace", d.Cache.Namespace)

	v.SetDefault("github.token", d.GitHub.Token)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("catalog.file", d.Catalog.File)
}
