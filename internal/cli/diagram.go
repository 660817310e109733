package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libscope/pkg/diagram"
)

// diagramCommand creates the diagram command.
func (c *CLI) diagramCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "diagram <library>",
		Short: "Draw a library's classes, methods and functions",
		Long: `Draw a library's module, classes, methods and functions as a graph.

The default output is SVG rendered with Graphviz. Use --format dot for the
DOT source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := diagram.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := c.openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			lib, err := a.inspector.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := a.diagrams.Render(cmd.Context(), lib, f)
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write diagram: %w", err)
			}
			st := status{cmd.OutOrStdout()}
			st.success("Diagram written")
			st.file(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(diagram.FormatSVG), "output format: svg, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
