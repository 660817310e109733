package introspect

// Placeholder texts used when metadata cannot be resolved.
const (
	UnknownVersion = "Unknown"
	NoDescription  = "No description available"
)

// Library is the public description of a module.
type Library struct {
	Metadata  Metadata   `json:"metadata"`
	Classes   []Class    `json:"classes"`
	Functions []Function `json:"functions"`
	Constants []Constant `json:"constants"`
}

// Metadata identifies a library. Name always echoes the caller's input.
type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Summary string `json:"summary"`
}

// Class is a public class with its public plain-function methods.
type Class struct {
	Name      string   `json:"name"`
	Docstring string   `json:"docstring"`
	Methods   []Method `json:"methods"`
}

// Method is a public method of a class.
type Method struct {
	Name      string `json:"name"`
	Docstring string `json:"docstring"`
}

// Function is a public module-level function.
type Function struct {
	Name      string `json:"name"`
	Docstring string `json:"docstring"`
}

// Constant is any other public module attribute, rendered as a string.
type Constant struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Package is an installed distribution.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Summary string `json:"summary"`
}

// ElementKind selects what [Inspector.Source] looks up.
type ElementKind string

const (
	KindClass    ElementKind = "class"
	KindFunction ElementKind = "function"
	KindMethod   ElementKind = "method"
)

// SourceRequest names an element of a library.
// Parent is required for methods and ignored otherwise.
type SourceRequest struct {
	Library string
	Kind    ElementKind
	Name    string
	Parent  string
}

// =============================================================================
// Provider results
// =============================================================================

// MemberKind classifies a raw module member.
type MemberKind string

const (
	MemberClass    MemberKind = "class"
	MemberFunction MemberKind = "function"
	MemberConstant MemberKind = "constant"
)

// Module is what a provider reports for a loaded module. Docstrings are raw.
type Module struct {
	Name         string        `json:"name"` // import name that succeeded
	Doc          string        `json:"doc,omitempty"`
	File         string        `json:"file,omitempty"`
	Distribution *Distribution `json:"distribution,omitempty"` // nil when no metadata was found
	Members      []Member      `json:"members"`
}

// Distribution is the installed metadata behind a module.
// Summary is nil when the metadata has no Summary field.
type Distribution struct {
	Version string  `json:"version"`
	Summary *string `json:"summary,omitempty"`
}

// Member is one attribute of a module, or a method of a class member.
type Member struct {
	Name    string     `json:"name"`
	Kind    MemberKind `json:"kind"`
	Doc     string     `json:"doc,omitempty"`
	Type    string     `json:"type,omitempty"`  // constants only
	Value   string     `json:"value,omitempty"` // constants only
	Methods []Member   `json:"methods,omitempty"`
}

// ObjectInfo is what a provider reports for a source lookup.
// Source is empty when no source text could be retrieved.
type ObjectInfo struct {
	Source      string `json:"source,omitempty"`
	ModuleFile  string `json:"module_file,omitempty"`
	ObjectType  string `json:"object_type"`
	Builtin     bool   `json:"builtin"`
	IsClass     bool   `json:"is_class"`
	ClassModule string `json:"class_module,omitempty"` // empty for classes without a module
	Doc         string `json:"doc,omitempty"`
	Repr        string `json:"repr,omitempty"`
	HasRepr     bool   `json:"has_repr"`
}
