// Package cli provides the Cobra command structure for gomdindent.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdindent/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdindent command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdindent",
		Short: "Reindent Markdown lists and nested blocks",
		Long: `gomdindent reindents Markdown documents.

It models a document as a tree of blocks, each with an indent kind and
optional alignment and wrap groups, and recomputes the indentation of every
line from its enclosing blocks. List continuations, nested lists, quotes and
code inside list items end up aligned with their containers while text
inside code blocks keeps its relative indentation.`,
		Version: info.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))
	rootCmd.AddCommand(newManCommand(rootCmd))

	NewHelpFormatter(color, rootCmd.OutOrStdout()).ApplyToCommand(rootCmd)

	return rootCmd
}
