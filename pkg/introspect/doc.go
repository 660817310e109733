// Package introspect describes installed Python libraries.
//
// # Overview
//
// An [Inspector] answers three questions about the Python environment:
//
//   - [Inspector.Describe]: metadata plus the public classes, functions and
//     constants of a module, with docstrings cleaned by [docstring.Format]
//   - [Inspector.Source]: the source text of a class, function or method,
//     or a descriptive fallback when the object has none
//   - [Inspector.Installed]: installed distributions matching a query
//
// The actual reflection is done by a [Provider]. The runtime provider in
// the python subpackage runs a helper script under a real interpreter; the
// static provider parses package sources with tree-sitter. [Chain] combines
// them so the static provider is used only when no interpreter is available.
//
// # Errors
//
// Providers report [ErrModuleNotFound], [ErrElementNotFound] and
// [ErrInvalidRequest]. The Inspector converts them into coded errors from
// pkg/errors carrying the messages shown to API clients.
package introspect
