package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libscope/pkg/introspect"
)

// inspectCommand creates the inspect command describing a library.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		asJSON bool
		full   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <library>",
		Short: "Describe the public classes, functions and constants of a library",
		Long: `Describe the public classes, functions and constants of a library.

The library is imported by a Python interpreter (see [python] in the config).
When no interpreter is available, installed sources are read directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			prog := newProgress(c.Logger)
			lib, err := a.inspector.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			prog.done("Described " + lib.Metadata.Name)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), lib)
			}
			writeLibrary(cmd.OutOrStdout(), lib, full)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the description as JSON")
	cmd.Flags().BoolVar(&full, "docs", false, "include full docstrings")
	return cmd
}

// sourceCommand creates the source command printing an element's source.
func (c *CLI) sourceCommand() *cobra.Command {
	var (
		kind   string
		parent string
	)

	cmd := &cobra.Command{
		Use:   "source <library> <name>",
		Short: "Print the source of a class, function or method",
		Example: `  libscope source json dumps
  libscope source json JSONDecoder --type class
  libscope source json decode --parent JSONDecoder`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := introspect.SourceRequest{
				Library: args[0],
				Kind:    introspect.ElementKind(kind),
				Name:    args[1],
				Parent:  parent,
			}
			if parent != "" && !cmd.Flags().Changed("type") {
				req.Kind = introspect.KindMethod
			}

			a, err := c.openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			src, err := a.inspector.Source(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(src, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", string(introspect.KindFunction), "element type: class, function, method")
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "class owning the method (implies --type method)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeLibrary prints a library description as an indented outline.
func writeLibrary(w io.Writer, lib *introspect.Library, full bool) {
	fmt.Fprintln(w, StyleTitle.Render(lib.Metadata.Name)+" "+StyleDim.Render(lib.Metadata.Version))
	fmt.Fprintln(w, StyleDim.Render(lib.Metadata.Summary))

	doc := func(d string) string {
		if full {
			return d
		}
		return firstLine(d)
	}

	if len(lib.Classes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleHighlight.Render(fmt.Sprintf("Classes (%d)", len(lib.Classes))))
		for _, cl := range lib.Classes {
			fmt.Fprintf(w, "  %s  %s\n", StyleValue.Render(cl.Name), StyleDim.Render(doc(cl.Docstring)))
			for _, m := range cl.Methods {
				fmt.Fprintf(w, "    .%s()  %s\n", m.Name, StyleDim.Render(doc(m.Docstring)))
			}
		}
	}

	if len(lib.Functions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleHighlight.Render(fmt.Sprintf("Functions (%d)", len(lib.Functions))))
		for _, f := range lib.Functions {
			fmt.Fprintf(w, "  %s()  %s\n", StyleValue.Render(f.Name), StyleDim.Render(doc(f.Docstring)))
		}
	}

	if len(lib.Constants) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleHighlight.Render(fmt.Sprintf("Constants (%d)", len(lib.Constants))))
		for _, k := range lib.Constants {
			fmt.Fprintf(w, "  %s %s = %s\n", StyleValue.Render(k.Name), StyleDim.Render(k.Type), firstLine(k.Value))
		}
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
