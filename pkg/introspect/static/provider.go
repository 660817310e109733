// Package static implements an introspection provider that reads Python
// package sources from site-packages directories without running them.
//
// Modules are parsed with tree-sitter. Only what is written in the module
// file itself is visible: names re-exported through imports, attributes
// created at runtime and compiled extensions are not. The provider is meant
// as a fallback for hosts without a Python interpreter.
package static

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/libscope/pkg/introspect"
)

// Provider is an [introspect.Provider] over a set of site-packages roots.
type Provider struct {
	roots []string
}

var _ introspect.Provider = (*Provider)(nil)

// New creates a static provider. Roots that do not exist are ignored; with
// no usable roots every call reports [introspect.ErrUnavailable].
func New(roots []string) *Provider {
	var usable []string
	for _, r := range roots {
		if st, err := os.Stat(r); err == nil && st.IsDir() {
			usable = append(usable, r)
		}
	}
	return &Provider{roots: usable}
}

// DefaultRoots lists the site-packages directories of the active virtual
// environment, the user site and the usual system locations, in that order.
func DefaultRoots() []string {
	var patterns []string
	if venv := os.Getenv("VIRTUAL_ENV"); venv != "" {
		patterns = append(patterns, filepath.Join(venv, "lib", "python3*", "site-packages"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		patterns = append(patterns, filepath.Join(home, ".local", "lib", "python3*", "site-packages"))
	}
	patterns = append(patterns,
		"/usr/local/lib/python3*/site-packages",
		"/usr/local/lib/python3*/dist-packages",
		"/usr/lib/python3*/site-packages",
		"/usr/lib/python3/dist-packages",
	)

	var roots []string
	for _, pat := range patterns {
		matches, _ := filepath.Glob(pat)
		roots = append(roots, matches...)
	}
	return roots
}

func (p *Provider) Name() string { return "static" }

func (p *Provider) Describe(ctx context.Context, module string) (*introspect.Module, error) {
	name, path, err := p.locate(module)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	parsed := parseSource(src)

	mod := &introspect.Module{
		Name: name,
		Doc:  parsed.doc,
		File: path,
	}
	if dist, ok := p.distribution(module); ok {
		mod.Distribution = dist
	}
	for _, d := range parsed.definitions {
		m := introspect.Member{Name: d.name, Kind: introspect.MemberKind(d.kind), Doc: d.doc}
		for _, meth := range d.methods {
			m.Methods = append(m.Methods, introspect.Member{Name: meth.name, Kind: introspect.MemberFunction, Doc: meth.doc})
		}
		mod.Members = append(mod.Members, m)
	}
	for _, a := range parsed.assignments {
		mod.Members = append(mod.Members, introspect.Member{
			Name:  a.name,
			Kind:  introspect.MemberConstant,
			Type:  a.typ,
			Value: a.value,
		})
	}
	return mod, nil
}

func (p *Provider) Lookup(ctx context.Context, req introspect.SourceRequest) (*introspect.ObjectInfo, error) {
	_, path, err := p.locate(req.Library)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	parsed := parseSource(src)

	var target *definition
	switch req.Kind {
	case introspect.KindClass, introspect.KindFunction:
		target = find(parsed.definitions, req.Name)
	case introspect.KindMethod:
		if req.Parent == "" {
			return nil, introspect.ErrInvalidRequest
		}
		if parent := find(parsed.definitions, req.Parent); parent != nil {
			target = find(parent.methods, req.Name)
		}
	default:
		return nil, introspect.ErrInvalidRequest
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", introspect.ErrElementNotFound, req.Name)
	}

	return &introspect.ObjectInfo{
		Source:     target.source,
		ModuleFile: path,
		ObjectType: objectType(target.kind),
		IsClass:    target.kind == "class",
		Doc:        target.doc,
	}, nil
}

func find(defs []definition, name string) *definition {
	for i := range defs {
		if defs[i].name == name {
			return &defs[i]
		}
	}
	return nil
}

func objectType(kind string) string {
	if kind == "class" {
		return "type"
	}
	return kind
}

// locate resolves a dotted module name to its source file, trying the
// lowercased name before the name as given.
func (p *Provider) locate(module string) (string, string, error) {
	if len(p.roots) == 0 {
		return "", "", introspect.ErrUnavailable
	}
	candidates := []string{strings.ToLower(module)}
	if module != candidates[0] {
		candidates = append(candidates, module)
	}
	for _, name := range candidates {
		rel := filepath.Join(strings.Split(name, ".")...)
		for _, root := range p.roots {
			for _, path := range []string{
				filepath.Join(root, rel, "__init__.py"),
				filepath.Join(root, rel+".py"),
			} {
				if st, err := os.Stat(path); err == nil && !st.IsDir() {
					return name, path, nil
				}
			}
		}
	}
	return "", "", fmt.Errorf("%w: %s", introspect.ErrModuleNotFound, module)
}

func (p *Provider) Packages(ctx context.Context) ([]introspect.Package, error) {
	if len(p.roots) == 0 {
		return nil, introspect.ErrUnavailable
	}
	var pkgs []introspect.Package
	for _, root := range p.roots {
		found, err := scanDistributions(root)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		for _, d := range found {
			pkgs = append(pkgs, d.Package())
		}
	}
	return pkgs, nil
}

func (p *Provider) distribution(module string) (*introspect.Distribution, bool) {
	want := normalize(strings.Split(module, ".")[0])
	for _, root := range p.roots {
		found, _ := scanDistributions(root)
		for _, d := range found {
			if normalize(d.Name) == want || d.provides(want) {
				return d.Distribution(), true
			}
		}
	}
	return nil, false
}
