package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/matzehuels/libscope/internal/config"
	"github.com/matzehuels/libscope/internal/server"
	"github.com/matzehuels/libscope/pkg/cache"
	"github.com/matzehuels/libscope/pkg/diagram"
	"github.com/matzehuels/libscope/pkg/examples"
	"github.com/matzehuels/libscope/pkg/integrations"
	"github.com/matzehuels/libscope/pkg/integrations/github"
	"github.com/matzehuels/libscope/pkg/integrations/pypi"
	"github.com/matzehuels/libscope/pkg/integrations/stackoverflow"
	"github.com/matzehuels/libscope/pkg/introspect"
	"github.com/matzehuels/libscope/pkg/introspect/python"
	"github.com/matzehuels/libscope/pkg/introspect/static"
	"github.com/matzehuels/libscope/pkg/recommend"
	"github.com/matzehuels/libscope/pkg/registry"
)

// app is the fully wired set of services behind every command.
type app struct {
	cache       cache.Cache
	inspector   *introspect.Inspector
	examples    *examples.Aggregator
	registry    *registry.Client
	recommender *recommend.Recommender
	diagrams    *diagram.Renderer
}

// openApp wires the services described by the loaded configuration.
// With noCache set every component runs against a null cache.
func (c *CLI) openApp(ctx context.Context, noCache bool) (*app, error) {
	cfg := c.settings()

	var backend cache.Cache = cache.NewNullCache()
	if !noCache {
		b, err := cache.Open(ctx, cfg.CacheOptions())
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		backend = b
	}

	provider, err := newProvider(cfg)
	if err != nil {
		backend.Close()
		return nil, err
	}
	inspector := introspect.New(provider, introspect.Options{Logger: c.Logger})

	gh := github.NewClient(backend, cfg.GitHub.Token, cfg.Cache.HTTPTTL)
	so := stackoverflow.NewClient(backend, cfg.Cache.HTTPTTL)
	pp := pypi.NewClient(backend, cfg.Cache.HTTPTTL)
	keyer := cache.NewDefaultKeyer()
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.Namespace+":")
	}
	for _, cl := range []*integrations.Client{gh.Client, so.Client, pp.Client} {
		cl.SetTimeout(cfg.HTTP.Timeout)
		cl.SetKeyer(keyer)
	}

	catalog, err := recommend.LoadCatalog(cfg.Catalog.File)
	if err != nil {
		backend.Close()
		return nil, err
	}

	reg := registry.New(pp, registry.Options{Installed: inspector, Logger: c.Logger})

	return &app{
		cache:     backend,
		inspector: inspector,
		examples: examples.New(examples.Options{
			Cache:            backend,
			Keyer:            keyer,
			Docs:             inspector,
			Code:             gh,
			QA:               so,
			StaleAfter:       cfg.Examples.StaleAfter,
			FetchLimit:       cfg.Examples.FetchLimit,
			Workers:          cfg.Examples.Workers,
			MinSnippetLength: cfg.Examples.MinSnippetLength,
			Logger:           c.Logger,
		}),
		registry: reg,
		recommender: recommend.New(recommend.Options{
			Catalog: catalog,
			Search:  recommend.RegistrySearcher(reg),
			Logger:  c.Logger,
		}),
		diagrams: diagram.NewRenderer(diagram.RendererOptions{
			Cache:  backend,
			Keyer:  keyer,
			TTL:    cfg.Cache.HTTPTTL,
			Logger: c.Logger,
		}),
	}, nil
}

func (a *app) Close() error { return a.cache.Close() }

func (a *app) services() server.Services {
	return server.Services{
		Inspector:   a.inspector,
		Examples:    a.examples,
		Registry:    a.registry,
		Recommender: a.recommender,
		Diagrams:    a.diagrams,
	}
}

// newProvider builds the interpreter-backed provider, followed by the
// static reader when the fallback is enabled.
func newProvider(cfg *config.Config) (introspect.Provider, error) {
	var interp python.Interpreter
	switch cfg.Python.Interpreter {
	case config.InterpreterEmbedded:
		e, err := python.NewEmbedded(filepath.Join(cfg.Cache.Dir, "python"), cfg.Python.Paths)
		if err != nil {
			return nil, err
		}
		interp = e
	default:
		interp = python.System{Executable: cfg.Python.Executable, Paths: cfg.Python.Paths}
	}

	chain := introspect.Chain{python.New(python.Options{Interpreter: interp, Timeout: cfg.Python.Timeout})}
	if cfg.Provider.StaticFallback {
		roots := cfg.Provider.SitePackages
		if len(roots) == 0 {
			roots = static.DefaultRoots()
		}
		chain = append(chain, static.New(roots))
	}
	return chain, nil
}
