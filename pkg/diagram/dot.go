package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/libscope/pkg/introspect"
)

// Options configures diagram generation.
type Options struct {
	// HideMethods drops method nodes, leaving one node per class.
	HideMethods bool

	// MaxMethods caps the method nodes drawn per class. Zero means no cap.
	// Elided methods are collapsed into a single "+N more" node.
	MaxMethods int
}

// ToDOT converts a library description to Graphviz DOT.
func ToDOT(lib *introspect.Library, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	root := "module:" + lib.Metadata.Name
	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#dbeafe\", fontsize=18];\n", root, moduleLabel(lib))

	for _, c := range lib.Classes {
		id := "class:" + c.Name
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#fef3c7\"];\n", id, c.Name)
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, id)
		if opts.HideMethods {
			continue
		}
		methods := c.Methods
		if opts.MaxMethods > 0 && len(methods) > opts.MaxMethods {
			methods = methods[:opts.MaxMethods]
		}
		for _, m := range methods {
			mid := "method:" + c.Name + "." + m.Name
			fmt.Fprintf(&buf, "  %q [label=%q, fontsize=12];\n", mid, m.Name+"()")
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, mid)
		}
		if rest := len(c.Methods) - len(methods); rest > 0 {
			mid := "more:" + c.Name
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\", fontsize=12];\n", mid, fmt.Sprintf("+%d more", rest))
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, mid)
		}
	}

	for _, f := range lib.Functions {
		id := "func:" + f.Name
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#dcfce7\"];\n", id, f.Name+"()")
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, id)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func moduleLabel(lib *introspect.Library) string {
	label := lib.Metadata.Name
	if v := lib.Metadata.Version; v != "" && v != introspect.UnknownVersion {
		label += " " + v
	}
	if n := len(lib.Constants); n > 0 {
		label += fmt.Sprintf("\n%d constants", n)
	}
	return label
}

// RenderSVG renders DOT source to SVG in-process.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with a
// plain viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
