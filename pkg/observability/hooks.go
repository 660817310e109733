// Package observability lets the application watch what the libscope
// packages do without those packages knowing about logging or metrics.
//
// Packages emit events through the hook accessors:
//
//	observability.Examples().OnAggregateStart(ctx, "requests")
//	observability.Cache().OnCacheMiss(ctx, "http")
//
// Every family starts out as a no-op. The server replaces them with logging
// implementations at startup; tests and the CLI keep the defaults.
package observability

import (
	"context"
	"sync"
	"time"
)

// ExampleHooks receives events from example aggregation.
type ExampleHooks interface {
	OnAggregateStart(ctx context.Context, library string)
	// OnSourceComplete fires once per example source (docstrings, github,
	// stackoverflow) with the number of examples it contributed.
	OnSourceComplete(ctx context.Context, library, source string, count int, duration time.Duration, err error)
	OnAggregateComplete(ctx context.Context, library string, count int, cached bool, duration time.Duration)
}

// ProviderHooks receives one event per provider operation (describe,
// source, packages).
type ProviderHooks interface {
	OnProviderCall(ctx context.Context, provider, op, library string, duration time.Duration, err error)
}

// CacheHooks receives cache traffic. keyType names the record kind
// ("http", "examples", "diagram").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives outgoing upstream requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError covers transport failures only; error statuses arrive via OnResponse.
	OnError(ctx context.Context, method, host, path string, err error)
}

type (
	NoopExampleHooks  struct{}
	NoopProviderHooks struct{}
	NoopCacheHooks    struct{}
	NoopHTTPHooks     struct{}
)

func (NoopExampleHooks) OnAggregateStart(context.Context, string) {}
func (NoopExampleHooks) OnSourceComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopExampleHooks) OnAggregateComplete(context.Context, string, int, bool, time.Duration) {}

func (NoopProviderHooks) OnProviderCall(context.Context, string, string, string, time.Duration, error) {
}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// slot holds the current implementation of one hook family.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] { return &slot[T]{cur: def, def: def} }

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// set ignores nil so a missing implementation never panics a caller.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.def
	s.mu.Unlock()
}

var (
	exampleSlot  = newSlot[ExampleHooks](NoopExampleHooks{})
	providerSlot = newSlot[ProviderHooks](NoopProviderHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

func Examples() ExampleHooks  { return exampleSlot.get() }
func Provider() ProviderHooks { return providerSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

func SetExampleHooks(h ExampleHooks)   { exampleSlot.set(h) }
func SetProviderHooks(h ProviderHooks) { providerSlot.set(h) }
func SetCacheHooks(h CacheHooks)       { cacheSlot.set(h) }
func SetHTTPHooks(h HTTPHooks)         { httpSlot.set(h) }

// Reset restores every family to its no-op default.
func Reset() {
	exampleSlot.reset()
	providerSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
