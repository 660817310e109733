// Package registry normalizes PyPI lookups into ranked, paginated search
// results and package detail records.
//
// Search tries three strategies in order and stops at the first that yields
// anything: a direct JSON lookup when the query is a single token, a scan of
// the simple index, and a scrape of the rendered search page. Every strategy
// swallows its own failures, so Search degrades to a placeholder record
// rather than an error when PyPI is unreachable.
//
// Relevance is a name heuristic, not a similarity measure:
//
//	exact (case-insensitive)      100
//	substring at byte offset o    90 - min(o, 80)
//	otherwise                     50
//
// Download counts are not available from any source used and are always 0.
package registry
