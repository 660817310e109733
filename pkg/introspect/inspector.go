package introspect

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/libscope/pkg/docstring"
	apperr "github.com/matzehuels/libscope/pkg/errors"
	"github.com/matzehuels/libscope/pkg/observability"
)

const (
	maxValueLen     = 1000
	maxInstalled    = 20
	valueTruncation = "..."
)

// Options configures an [Inspector].
type Options struct {
	Logger *log.Logger
}

// Inspector turns provider output into the public library descriptions.
// It is safe for concurrent use if its provider is.
type Inspector struct {
	provider Provider
	logger   *log.Logger
}

// New creates an Inspector backed by p.
func New(p Provider, opts Options) *Inspector {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Inspector{provider: p, logger: opts.Logger}
}

// Provider returns the underlying provider.
func (i *Inspector) Provider() Provider { return i.provider }

// Describe returns metadata and the public members of the named library.
func (i *Inspector) Describe(ctx context.Context, name string) (*Library, error) {
	mod, err := i.module(ctx, name)
	if err != nil {
		return nil, err
	}

	lib := &Library{
		Metadata:  metadata(name, mod.Distribution),
		Classes:   []Class{},
		Functions: []Function{},
		Constants: []Constant{},
	}
	for _, m := range mod.Members {
		if isPrivate(m.Name) {
			continue
		}
		switch m.Kind {
		case MemberClass:
			c := Class{Name: m.Name, Docstring: docstring.Format(m.Doc), Methods: []Method{}}
			for _, meth := range m.Methods {
				if isPrivate(meth.Name) {
					continue
				}
				c.Methods = append(c.Methods, Method{Name: meth.Name, Docstring: docstring.Format(meth.Doc)})
			}
			lib.Classes = append(lib.Classes, c)
		case MemberFunction:
			lib.Functions = append(lib.Functions, Function{Name: m.Name, Docstring: docstring.Format(m.Doc)})
		default:
			lib.Constants = append(lib.Constants, Constant{Name: m.Name, Type: m.Type, Value: TruncateValue(m.Value)})
		}
	}
	return lib, nil
}

// Docstrings returns the raw module docstring together with the public
// classes and functions of the module and their raw docstrings.
func (i *Inspector) Docstrings(ctx context.Context, name string) (string, []Member, error) {
	mod, err := i.module(ctx, name)
	if err != nil {
		return "", nil, err
	}
	var members []Member
	for _, m := range mod.Members {
		if isPrivate(m.Name) || (m.Kind != MemberClass && m.Kind != MemberFunction) {
			continue
		}
		members = append(members, Member{Name: m.Name, Kind: m.Kind, Doc: m.Doc})
	}
	return mod.Doc, members, nil
}

func (i *Inspector) module(ctx context.Context, name string) (*Module, error) {
	if apperr.ValidateModuleName(name) != nil {
		return nil, libraryNotFound(name, nil)
	}

	start := time.Now()
	mod, err := i.provider.Describe(ctx, name)
	observability.Provider().OnProviderCall(ctx, i.provider.Name(), "describe", name, time.Since(start), err)
	if err != nil {
		if errors.Is(err, ErrModuleNotFound) {
			return nil, libraryNotFound(name, err)
		}
		i.logger.Debug("describe failed", "library", name, "provider", i.provider.Name(), "error", err)
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "Error accessing library information: %v", err)
	}
	return mod, nil
}

// Source returns the source text of an element, or a descriptive fallback
// when the element has none.
func (i *Inspector) Source(ctx context.Context, req SourceRequest) (string, error) {
	if req.Kind == "" || req.Name == "" {
		return "", apperr.New(apperr.ErrCodeInvalidInput, "Missing parameters: 'type' and 'name' are required.")
	}
	switch req.Kind {
	case KindClass, KindFunction:
	case KindMethod:
		if req.Parent == "" {
			return "", invalidElement()
		}
	default:
		return "", invalidElement()
	}
	if apperr.ValidateModuleName(req.Library) != nil {
		return "", libraryNotFound(req.Library, nil)
	}
	if apperr.ValidateIdentifier(req.Name) != nil ||
		(req.Kind == KindMethod && apperr.ValidateIdentifier(req.Parent) != nil) {
		return "", elementNotFound(req, nil)
	}

	start := time.Now()
	info, err := i.provider.Lookup(ctx, req)
	observability.Provider().OnProviderCall(ctx, i.provider.Name(), "source", req.Library, time.Since(start), err)
	switch {
	case err == nil:
	case errors.Is(err, ErrModuleNotFound):
		return "", libraryNotFound(req.Library, err)
	case errors.Is(err, ErrElementNotFound):
		return "", elementNotFound(req, err)
	case errors.Is(err, ErrInvalidRequest):
		return "", invalidElement()
	default:
		i.logger.Debug("lookup failed", "library", req.Library, "element", req.Name, "error", err)
		return "", apperr.Wrap(apperr.ErrCodeInternal, err, "Error accessing source code: %v", err)
	}

	if info.Source != "" {
		return info.Source, nil
	}
	return Fallback(info), nil
}

// Installed returns up to 20 installed distributions whose name contains
// query, case-insensitively. An empty query matches everything.
func (i *Inspector) Installed(ctx context.Context, query string) ([]Package, error) {
	all, err := i.packages(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := []Package{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
			if len(out) == maxInstalled {
				break
			}
		}
	}
	return out, nil
}

// InstalledNames returns the lowercased names of all installed distributions.
func (i *Inspector) InstalledNames(ctx context.Context) (map[string]bool, error) {
	all, err := i.packages(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(all))
	for _, p := range all {
		names[strings.ToLower(p.Name)] = true
	}
	return names, nil
}

func (i *Inspector) packages(ctx context.Context) ([]Package, error) {
	start := time.Now()
	all, err := i.provider.Packages(ctx)
	observability.Provider().OnProviderCall(ctx, i.provider.Name(), "packages", "", time.Since(start), err)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "Error listing installed packages: %v", err)
	}
	return all, nil
}

func metadata(name string, d *Distribution) Metadata {
	md := Metadata{Name: name, Version: UnknownVersion, Summary: NoDescription}
	if d == nil {
		return md
	}
	md.Version = d.Version
	if d.Summary != nil {
		md.Summary = *d.Summary
	}
	return md
}

// TruncateValue caps a constant's string form at 1000 characters followed
// by "..." when it is 1000 characters or longer.
func TruncateValue(v string) string {
	if utf8.RuneCountInString(v) < maxValueLen {
		return v
	}
	return string([]rune(v)[:maxValueLen]) + valueTruncation
}

func isPrivate(name string) bool { return strings.HasPrefix(name, "_") }

func libraryNotFound(name string, cause error) error {
	return apperr.Wrap(apperr.ErrCodePackageNotFound, cause, "Library '%s' not found or could not be imported.", name)
}

func elementNotFound(req SourceRequest, cause error) error {
	return apperr.Wrap(apperr.ErrCodeElementNotFound, cause, "Element '%s' not found in library '%s'.", req.Name, req.Library)
}

func invalidElement() error {
	return apperr.New(apperr.ErrCodeInvalidInput, "Invalid element type or missing parent class for method.")
}
