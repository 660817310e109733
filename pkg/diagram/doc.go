// Package diagram renders the public structure of a Python library as a
// node-link diagram.
//
// # Overview
//
// The module is the root node. Classes and functions hang off the module;
// methods hang off their class. Constants are summarized in the module
// label rather than drawn as nodes.
//
// # Usage
//
//	dot := diagram.ToDOT(lib, diagram.Options{})
//	svg, err := diagram.RenderSVG(ctx, dot)
//
// [Renderer] adds caching keyed by library name, format and version, so a
// new release of the library produces a new diagram.
//
// # Dependencies
//
// SVG output uses [github.com/goccy/go-graphviz] in-process; no Graphviz
// installation is required.
package diagram
