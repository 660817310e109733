package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/libscope/pkg/introspect"
	"github.com/matzehuels/libscope/pkg/registry"
)

// searchCommand creates the search command for PyPI and installed packages.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		installed bool
		asJSON    bool
		opts      registry.SearchOptions
		sortBy    string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search PyPI, or installed packages with --installed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			a, err := c.openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			if installed {
				pkgs, err := a.inspector.Installed(cmd.Context(), query)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), pkgs)
				}
				writeInstalled(cmd.OutOrStdout(), pkgs)
				return nil
			}

			opts.Query = query
			opts.SortBy = registry.SortKey(sortBy)
			spin := newSpinnerWithContext(cmd.Context(), "Searching PyPI...")
			spin.Start()
			res, err := a.registry.Search(cmd.Context(), opts)
			spin.Stop()
			if err != nil {
				return err
			}
			c.Logger.Debug("search done", "strategy", res.Strategy, "total", res.Total)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			writeSearchResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&installed, "installed", false, "search locally installed distributions")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "result page")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", registry.DefaultPerPage, "results per page (max 100)")
	cmd.Flags().StringVar(&sortBy, "sort", string(registry.SortRelevance), "sort by: relevance, downloads, name")
	cmd.Flags().BoolVar(&opts.ExactMatch, "exact", false, "only show exact name matches")
	return cmd
}

// packageCommand creates the package command showing PyPI details.
func (c *CLI) packageCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "package <name>",
		Short: "Show PyPI details for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			detail, err := a.registry.Package(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), detail)
			}
			writePackage(cmd.OutOrStdout(), detail)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print details as JSON")
	return cmd
}

var headerStyle = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func writeSearchResult(w io.Writer, res *registry.SearchResult) {
	if res.Strategy == "none" && len(res.Results) > 0 {
		fmt.Fprintln(w, StyleWarning.Render(res.Results[0].Summary))
		return
	}

	t := newTable("Name", "Version", "Score", "Installed", "Summary")
	for _, p := range res.Results {
		mark := ""
		if p.Installed {
			mark = iconSuccess
		}
		t.Row(p.Name, p.Version, strconv.Itoa(p.Relevance), mark, truncate(p.Summary, 60))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  page %d/%d · %d results · %s",
		res.Options.Page, max(res.TotalPages, 1), res.Total, res.Strategy)))
}

func writeInstalled(w io.Writer, pkgs []introspect.Package) {
	if len(pkgs) == 0 {
		fmt.Fprintln(w, StyleDim.Render("No matching packages installed"))
		return
	}
	t := newTable("Name", "Version", "Summary")
	for _, p := range pkgs {
		t.Row(p.Name, p.Version, truncate(p.Summary, 60))
	}
	fmt.Fprintln(w, t.Render())
}

func writePackage(w io.Writer, d *registry.PackageDetail) {
	fmt.Fprintln(w, StyleTitle.Render(d.Name)+" "+StyleDim.Render(d.Version))
	if d.Summary != "" {
		fmt.Fprintln(w, d.Summary)
	}
	fmt.Fprintln(w)
	kv := func(k, v string) {
		if v != "" {
			fmt.Fprintln(w, keyStyle.Render(k)+" "+StyleValue.Render(v))
		}
	}
	kv("Author", d.Author)
	kv("License", d.License)
	kv("Python", d.RequiresPython)
	kv("Home", d.HomePage)
	kv("PyPI", d.URL)
	if d.Installed {
		kv("Installed", "yes")
	}
	if len(d.Dependencies) > 0 {
		kv("Requires", strings.Join(d.Dependencies, ", "))
	}
	if len(d.Releases) > 0 {
		versions := make([]string, len(d.Releases))
		for i, r := range d.Releases {
			versions[i] = r.Version
		}
		kv("Releases", strings.Join(versions, ", "))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
