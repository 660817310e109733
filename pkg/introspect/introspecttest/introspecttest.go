// Package introspecttest provides an in-memory [introspect.Provider] for
// tests of code that sits above the inspector.
package introspecttest

import (
	"context"
	"strings"

	"github.com/matzehuels/libscope/pkg/introspect"
)

// Provider serves fixed modules, objects and packages.
// Objects are keyed by [Key].
type Provider struct {
	Modules map[string]*introspect.Module
	Objects map[string]*introspect.ObjectInfo
	Pkgs    []introspect.Package
	Err     error // returned by every call when set
}

// Key builds the Objects key for a lookup.
func Key(library string, kind introspect.ElementKind, parent, name string) string {
	return library + ":" + string(kind) + ":" + parent + "." + name
}

func (p *Provider) Name() string { return "memory" }

func (p *Provider) module(name string) (*introspect.Module, bool) {
	for _, candidate := range []string{strings.ToLower(name), name} {
		if m, ok := p.Modules[candidate]; ok {
			return m, true
		}
	}
	return nil, false
}

func (p *Provider) Describe(_ context.Context, module string) (*introspect.Module, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if m, ok := p.module(module); ok {
		return m, nil
	}
	return nil, introspect.ErrModuleNotFound
}

func (p *Provider) Lookup(_ context.Context, req introspect.SourceRequest) (*introspect.ObjectInfo, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	m, ok := p.module(req.Library)
	if !ok {
		return nil, introspect.ErrModuleNotFound
	}
	if info, ok := p.Objects[Key(m.Name, req.Kind, req.Parent, req.Name)]; ok {
		return info, nil
	}
	return nil, introspect.ErrElementNotFound
}

func (p *Provider) Packages(context.Context) ([]introspect.Package, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Pkgs, nil
}

// JSON returns a provider that knows a trimmed-down json module and a
// handful of installed distributions.
func JSON() *Provider {
	return &Provider{
		Modules: map[string]*introspect.Module{
			"json": {
				Name: "json",
				Doc:  "JSON encoder and decoder.\n\n>>> import json\n>>> json.dumps(['foo', {'bar': ('baz', None, 1.0, 2)}])\n'[\"foo\", {\"bar\": [\"baz\", null, 1.0, 2]}]'\n",
				File: "/usr/lib/python3.12/json/__init__.py",
				Members: []introspect.Member{
					{Name: "JSONDecodeError", Kind: introspect.MemberClass, Doc: "Subclass of ValueError with extra properties."},
					{Name: "JSONDecoder", Kind: introspect.MemberClass, Doc: "Simple JSON <https://json.org> decoder.", Methods: []introspect.Member{
						{Name: "decode", Kind: introspect.MemberFunction, Doc: "Return the Python representation of ``s``."},
						{Name: "raw_decode", Kind: introspect.MemberFunction, Doc: "Decode a JSON document from ``s``."},
						{Name: "_private", Kind: introspect.MemberFunction},
					}},
					{Name: "JSONEncoder", Kind: introspect.MemberClass, Doc: "Extensible JSON encoder.", Methods: []introspect.Member{
						{Name: "default", Kind: introspect.MemberFunction},
						{Name: "encode", Kind: introspect.MemberFunction, Doc: "Return a JSON string representation."},
					}},
					{Name: "dump", Kind: introspect.MemberFunction, Doc: "Serialize ``obj`` to a file."},
					{Name: "dumps", Kind: introspect.MemberFunction, Doc: "Serialize ``obj`` to a JSON formatted ``str``."},
					{Name: "loads", Kind: introspect.MemberFunction, Doc: "Deserialize ``s``."},
					{Name: "codecs", Kind: introspect.MemberConstant, Type: "module", Value: "<module 'codecs' (frozen)>"},
					{Name: "_default_decoder", Kind: introspect.MemberConstant, Type: "JSONDecoder", Value: "<json.decoder.JSONDecoder object>"},
				},
			},
		},
		Objects: map[string]*introspect.ObjectInfo{
			Key("json", introspect.KindFunction, "", "dumps"): {
				Source:     "def dumps(obj, **kw):\n    return _default_encoder.encode(obj)\n",
				ModuleFile: "/usr/lib/python3.12/json/__init__.py",
				ObjectType: "function",
			},
			Key("json", introspect.KindMethod, "JSONEncoder", "encode"): {
				Source:     "    def encode(self, o):\n        return ''.join(self.iterencode(o))\n",
				ModuleFile: "/usr/lib/python3.12/json/encoder.py",
				ObjectType: "function",
			},
			Key("json", introspect.KindClass, "", "JSONDecodeError"): {
				ModuleFile:  "/usr/lib/python3.12/json/__init__.py",
				ObjectType:  "type",
				Builtin:     false,
				IsClass:     true,
				ClassModule: "json.decoder",
				Doc:         "Subclass of ValueError with extra properties.",
			},
		},
		Pkgs: []introspect.Package{
			{Name: "requests", Version: "2.32.3", Summary: "Python HTTP for Humans."},
			{Name: "charset-normalizer", Version: "3.3.2", Summary: "The Real First Universal Charset Detector."},
			{Name: "pip", Version: "24.0", Summary: "The PyPA recommended tool for installing Python packages."},
		},
	}
}
