// Package integrations provides HTTP clients for the upstream services
// libscope talks to.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [pypi]: Python Package Index (JSON API, simple index, search page)
//   - [github]: GitHub code search and file contents
//   - [stackoverflow]: Stack Exchange questions and answers
//
// # Client Pattern
//
// All clients embed the shared [Client], which handles:
//   - Default headers (tokens, Accept types)
//   - Response caching through any [cache.Cache] backend
//   - Retry with exponential backoff for 5xx and transport errors
//   - Observability hooks for every outgoing request
//
// Errors are classified with [ErrNotFound], [ErrNetwork] and
// [ErrRateLimited] so callers can decide whether to degrade or fail.
//
// [pypi]: github.com/matzehuels/libscope/pkg/integrations/pypi
// [github]: github.com/matzehuels/libscope/pkg/integrations/github
// [stackoverflow]: github.com/matzehuels/libscope/pkg/integrations/stackoverflow
// [cache.Cache]: github.com/matzehuels/libscope/pkg/cache.Cache
package integrations
