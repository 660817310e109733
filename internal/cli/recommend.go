package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libscope/pkg/recommend"
)

// recommendCommand creates the recommend command.
func (c *CLI) recommendCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "recommend <what you want to do>",
		Short:   "Suggest Python libraries for a task",
		Example: `  libscope recommend plot statistics with dataframes`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.recommender.Recommend(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			writeRecommendation(cmd.OutOrStdout(), rec)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the recommendation as JSON")
	return cmd
}

func writeRecommendation(w io.Writer, rec *recommend.Recommendation) {
	fmt.Fprintln(w, rec.Message)
	if len(rec.Libraries) == 0 {
		fmt.Fprintln(w, StyleDim.Render("  (nothing found)"))
		return
	}
	width := 0
	for _, l := range rec.Libraries {
		width = max(width, len(l.Name))
	}
	for _, l := range rec.Libraries {
		fmt.Fprintf(w, "  %s  %s\n", StyleHighlight.Render(fmt.Sprintf("%-*s", width, l.Name)), StyleDim.Render(l.Summary))
	}
}
