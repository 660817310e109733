package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libscope/pkg/examples"
)

// examplesCommand creates the examples command.
func (c *CLI) examplesCommand() *cobra.Command {
	var (
		refresh bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "examples <library>",
		Short: "Collect usage examples from docs, GitHub and Stack Overflow",
		Long: `Collect usage examples for a library.

Examples come from the library's own docstrings, from public GitHub code
(requires a token, see GITHUB_TOKEN) and from top-voted Stack Overflow
answers. Results are cached and reused until they are a week old.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			spin := newSpinnerWithContext(cmd.Context(), "Collecting examples for "+args[0]+"...")
			spin.Start()
			entry, err := a.examples.Examples(cmd.Context(), args[0], refresh)
			spin.Stop()
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entry)
			}
			writeExamples(cmd.OutOrStdout(), entry)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached examples")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the examples as JSON")
	return cmd
}

func writeExamples(w io.Writer, entry *examples.Entry) {
	for i, ex := range entry.Examples {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, StyleTitle.Render(ex.Title))
		line := StyleDim.Render(ex.Source)
		if ex.URL != "" {
			line += " " + StyleLink.Render(ex.URL)
		}
		fmt.Fprintln(w, line)
		fmt.Fprintln(w, ex.Code)
	}
}
