package introspect

import (
	"context"
	"errors"
)

// Sentinel errors returned by providers.
var (
	ErrModuleNotFound  = errors.New("module not found")
	ErrElementNotFound = errors.New("element not found")
	ErrInvalidRequest  = errors.New("invalid element request")

	// ErrUnavailable means the provider cannot run at all, for example
	// because no interpreter is installed. [Chain] moves on to the next
	// provider only for this error.
	ErrUnavailable = errors.New("provider unavailable")
)

// Provider performs the reflection behind an [Inspector].
//
// Describe loads the module, trying the lowercased name first and then the
// name as given. Lookup resolves one element and reports its source or the
// facts needed to describe it. Packages lists installed distributions.
type Provider interface {
	Name() string
	Describe(ctx context.Context, module string) (*Module, error)
	Lookup(ctx context.Context, req SourceRequest) (*ObjectInfo, error)
	Packages(ctx context.Context) ([]Package, error)
}

// Chain tries providers in order, skipping those that return [ErrUnavailable].
type Chain []Provider

var _ Provider = Chain(nil)

// Name returns the name of the first provider.
func (c Chain) Name() string {
	if len(c) == 0 {
		return "none"
	}
	return c[0].Name()
}

func (c Chain) Describe(ctx context.Context, module string) (*Module, error) {
	return first(c, func(p Provider) (*Module, error) { return p.Describe(ctx, module) })
}

func (c Chain) Lookup(ctx context.Context, req SourceRequest) (*ObjectInfo, error) {
	return first(c, func(p Provider) (*ObjectInfo, error) { return p.Lookup(ctx, req) })
}

func (c Chain) Packages(ctx context.Context) ([]Package, error) {
	return first(c, func(p Provider) ([]Package, error) { return p.Packages(ctx) })
}

func first[T any](c Chain, call func(Provider) (T, error)) (T, error) {
	var zero T
	err := ErrUnavailable
	for _, p := range c {
		var v T
		v, err = call(p)
		if errors.Is(err, ErrUnavailable) {
			continue
		}
		return v, err
	}
	return zero, err
}
