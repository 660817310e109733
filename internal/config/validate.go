package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/libscope/pkg/cache"
)

var (
	ErrInvalidInterpreter = errors.New("invalid python interpreter")
	ErrInvalidBackend     = errors.New("invalid cache backend")
	ErrInvalidExamples    = errors.New("invalid examples settings")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidServer      = errors.New("invalid server settings")
)

// Validate checks that the configuration is usable. All problems are
// reported together.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: addr is empty", ErrInvalidServer))
	}
	if p := cfg.Server.Prefix; p != "" && (!strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/")) {
		errs = append(errs, fmt.Errorf("%w: prefix %q must start and not end with /", ErrInvalidServer, p))
	}

	switch cfg.Python.Interpreter {
	case InterpreterSystem:
		if cfg.Python.Executable == "" {
			errs = append(errs, fmt.Errorf("%w: executable is empty", ErrInvalidInterpreter))
		}
	case InterpreterEmbedded:
	default:
		errs = append(errs, fmt.Errorf("%w: %q (use %q or %q)", ErrInvalidInterpreter, cfg.Python.Interpreter, InterpreterSystem, InterpreterEmbedded))
	}
	if cfg.Python.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: python.timeout must be positive", ErrInvalidTimeout))
	}
	if cfg.HTTP.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: http.timeout must be positive", ErrInvalidTimeout))
	}

	e := cfg.Examples
	if e.StaleAfter <= 0 || e.FetchLimit <= 0 || e.Workers <= 0 || e.MinSnippetLength < 0 {
		errs = append(errs, fmt.Errorf("%w: stale_after, fetch_limit and workers must be positive", ErrInvalidExamples))
	}

	switch cfg.Cache.Backend {
	case cache.BackendFile:
		if cfg.Cache.Dir == "" {
			errs = append(errs, fmt.Errorf("%w: file backend needs cache.dir", ErrInvalidBackend))
		}
	case cache.BackendRedis:
		if cfg.Cache.RedisURL == "" {
			errs = append(errs, fmt.Errorf("%w: redis backend needs cache.redis_url", ErrInvalidBackend))
		}
	case cache.BackendMongo:
		if cfg.Cache.MongoURI == "" || cfg.Cache.MongoDatabase == "" || cfg.Cache.MongoCollection == "" {
			errs = append(errs, fmt.Errorf("%w: mongo backend needs uri, database and collection", ErrInvalidBackend))
		}
	case cache.BackendMemory, cache.BackendNone:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBackend, cfg.Cache.Backend))
	}

	return errors.Join(errs...)
}
