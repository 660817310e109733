package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/libscope/pkg/observability"
)

// LogHooks forwards observability events to a logger at debug level.
// Failures are logged at warn.
type LogHooks struct {
	Logger *log.Logger
}

// InstallLogHooks registers l for every hook family.
func InstallLogHooks(l *log.Logger) {
	h := LogHooks{Logger: l}
	observability.SetExampleHooks(h)
	observability.SetProviderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h LogHooks) OnAggregateStart(_ context.Context, library string) {
	h.Logger.Debug("examples: aggregate start", "library", library)
}

func (h LogHooks) OnSourceComplete(_ context.Context, library, source string, count int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("examples: source failed", "library", library, "source", source, "error", err)
		return
	}
	h.Logger.Debug("examples: source done", "library", library, "source", source, "count", count, "duration", d)
}

func (h LogHooks) OnAggregateComplete(_ context.Context, library string, count int, cached bool, d time.Duration) {
	h.Logger.Debug("examples: aggregate done", "library", library, "count", count, "cached", cached, "duration", d)
}

func (h LogHooks) OnProviderCall(_ context.Context, provider, op, library string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("provider call failed", "provider", provider, "op", op, "library", library, "error", err)
		return
	}
	h.Logger.Debug("provider call", "provider", provider, "op", op, "library", library, "duration", d)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("upstream request", "method", method, "host", host, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("upstream response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Warn("upstream error", "method", method, "host", host, "path", path, "error", err)
}
