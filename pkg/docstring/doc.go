// Package docstring cleans Python docstrings for display and pulls runnable
// code out of them and out of arbitrary source files.
//
// [Format] rewrites the reStructuredText constructs that render poorly as
// plain text (code-block directives, cross-reference roles, version notes).
// [ExtractCodeBlocks] finds fenced, interactive (>>>) and indented examples
// in a docstring. [ExtractSnippet] cuts the regions of a source file that
// import or use a given library.
//
// All functions are pure and safe for concurrent use.
package docstring
