package diagram

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/libscope/pkg/cache"
	apperr "github.com/matzehuels/libscope/pkg/errors"
	"github.com/matzehuels/libscope/pkg/introspect"
	"github.com/matzehuels/libscope/pkg/observability"
)

// Format is a diagram output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
)

// ParseFormat validates a user-supplied format. Empty means SVG.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatSVG:
		return FormatSVG, nil
	case FormatDOT:
		return FormatDOT, nil
	}
	return "", apperr.New(apperr.ErrCodeInvalidFormat, "Unsupported diagram format '%s'. Use 'dot' or 'svg'.", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatDOT {
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "image/svg+xml"
}

// RendererOptions configures a [Renderer].
type RendererOptions struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	TTL     time.Duration
	Diagram Options
	Logger  *log.Logger
}

// Renderer produces diagrams and caches rendered output.
type Renderer struct {
	opts RendererOptions
}

// NewRenderer creates a Renderer. A nil cache disables caching.
func NewRenderer(opts RendererOptions) *Renderer {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Renderer{opts: opts}
}

// Render returns lib's diagram in format.
func (r *Renderer) Render(ctx context.Context, lib *introspect.Library, format Format) ([]byte, error) {
	key := r.opts.Keyer.DiagramKey(lib.Metadata.Name, string(format), lib.Metadata.Version)
	if data, ok, err := r.opts.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "diagram")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "diagram")

	dot := ToDOT(lib, r.opts.Diagram)
	var out []byte
	switch format {
	case FormatDOT:
		out = []byte(dot)
	case FormatSVG:
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "Error rendering diagram: %v", err)
		}
		out = svg
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "Unsupported diagram format '%s'.", format)
	}

	if err := r.opts.Cache.Set(ctx, key, out, r.opts.TTL); err != nil {
		r.opts.Logger.Warn("diagram cache write failed", "library", lib.Metadata.Name, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "diagram", len(out))
	}
	return out, nil
}
