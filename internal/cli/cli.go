// Package cli implements the libscope command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/libscope/internal/config"
	"github.com/matzehuels/libscope/pkg/buildinfo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "libscope explores installed Python libraries",
		Long: `libscope describes the classes, functions and constants of Python libraries,
shows their source, gathers usage examples from documentation, GitHub and
Stack Overflow, searches PyPI and recommends libraries for a task.

Run 'libscope serve' to expose the same operations as a JSON API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default ./libscope.toml, then ~/.config/libscope/libscope.toml)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.sourceCommand())
	root.AddCommand(c.examplesCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.packageCommand())
	root.AddCommand(c.recommendCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(config.LoadOptions{File: c.configFile})
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "cache", cfg.Cache.Backend, "interpreter", cfg.Python.Interpreter)
	return nil
}

// settings returns the loaded configuration, falling back to defaults when
// a command runs without the root pre-run (as in tests).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}
