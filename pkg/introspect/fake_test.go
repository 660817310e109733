package introspect

import (
	"context"
	"strings"
)

type fakeProvider struct {
	modules  map[string]*Module
	objects  map[string]*ObjectInfo // "lib:kind:parent.name"
	packages []Package
	err      error
	calls    int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Describe(_ context.Context, module string) (*Module, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, candidate := range []string{strings.ToLower(module), module} {
		if m, ok := f.modules[candidate]; ok {
			return m, nil
		}
	}
	return nil, ErrModuleNotFound
}

func (f *fakeProvider) Lookup(_ context.Context, req SourceRequest) (*ObjectInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.modules[strings.ToLower(req.Library)]; !ok {
		return nil, ErrModuleNotFound
	}
	key := req.Library + ":" + string(req.Kind) + ":" + req.Parent + "." + req.Name
	if info, ok := f.objects[key]; ok {
		return info, nil
	}
	return nil, ErrElementNotFound
}

func (f *fakeProvider) Packages(context.Context) ([]Package, error) {
	f.calls++
	return f.packages, f.err
}

func strPtr(s string) *string { return &s }

func jsonFake() *fakeProvider {
	return &fakeProvider{
		modules: map[string]*Module{
			"json": {
				Name:         "json",
				Doc:          "JSON encoder and decoder.\n\n>>> import json\n>>> json.dumps([1])\n'[1]'",
				Distribution: nil,
				Members: []Member{
					{Name: "JSONDecodeError", Kind: MemberClass, Doc: "Subclass of ValueError."},
					{Name: "JSONDecoder", Kind: MemberClass, Doc: "Simple JSON decoder.", Methods: []Member{
						{Name: "decode", Kind: MemberFunction, Doc: "Return the Python object."},
						{Name: "_scan_once", Kind: MemberFunction},
					}},
					{Name: "JSONEncoder", Kind: MemberClass, Doc: "Extensible JSON encoder.", Methods: []Member{
						{Name: "encode", Kind: MemberFunction, Doc: "See :func:`~json.dumps`."},
					}},
					{Name: "dumps", Kind: MemberFunction, Doc: "Serialize obj.\n\n\n\nMore."},
					{Name: "loads", Kind: MemberFunction},
					{Name: "_default_encoder", Kind: MemberConstant, Type: "JSONEncoder", Value: "<encoder>"},
					{Name: "codecs", Kind: MemberConstant, Type: "module", Value: "<module 'codecs'>"},
				},
			},
			"requests": {
				Name:         "requests",
				Distribution: &Distribution{Version: "2.32.3", Summary: strPtr("Python HTTP for Humans.")},
				Members: []Member{
					{Name: "big", Kind: MemberConstant, Type: "str", Value: strings.Repeat("x", 1500)},
				},
			},
			"nosummary": {
				Name:         "nosummary",
				Distribution: &Distribution{Version: "0.1"},
			},
		},
		objects: map[string]*ObjectInfo{
			"json:function:.dumps": {Source: "def dumps(obj):\n    ...\n"},
			"json:method:JSONEncoder.encode": {
				ObjectType: "function",
				ModuleFile: "/usr/lib/python3/json/__init__.py",
				Doc:        "Encode it.",
				Repr:       "<function JSONEncoder.encode>",
				HasRepr:    true,
			},
		},
		packages: []Package{
			{Name: "requests", Version: "2.32.3", Summary: "Python HTTP for Humans."},
			{Name: "Flask", Version: "3.0.0", Summary: "A simple framework"},
			{Name: "requests-oauthlib", Version: "2.0.0", Summary: "OAuthlib support"},
		},
	}
}
