// Package pkg holds the libraries behind libscope, a service that explains
// Python libraries.
//
// # Layout
//
//   - [introspect] describes modules and fetches member source. Its
//     python provider runs a real interpreter; its static provider parses
//     site-packages with tree-sitter when no interpreter is available.
//   - [docstring] turns reStructuredText-flavoured docstrings into plain
//     text and extracts code snippets from docs and HTML answers.
//   - [examples] gathers usage examples from docstrings, GitHub code search
//     and Stack Overflow, and caches them for a week.
//   - [registry] searches PyPI and builds package detail records.
//   - [recommend] maps a task description onto a catalog of libraries.
//   - [diagram] draws a library's structure with Graphviz.
//   - [integrations] holds the upstream HTTP clients (PyPI, GitHub, Stack
//     Exchange) on top of a shared cached client.
//   - [cache] provides file, Redis, MongoDB and in-memory backends.
//   - [errors] carries the error codes mapped onto HTTP statuses.
//   - [observability] exposes hooks for logging and metrics.
//
// # Data flow
//
//	HTTP request / CLI command
//	         ↓
//	    introspect.Inspector ──→ python | static provider
//	         ↓
//	    examples / registry / recommend / diagram
//	         ↓
//	    integrations.Client ──→ cache backend
//
// [introspect]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/introspect
// [docstring]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/docstring
// [examples]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/examples
// [registry]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/registry
// [recommend]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/recommend
// [diagram]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/diagram
// [integrations]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/libscope/pkg/observability
package pkg
