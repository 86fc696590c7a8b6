// Package cli provides the Cobra command structure for headertool.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/headertool/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root headertool command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "headertool",
		Short: "Parse reflection macros in C++ game-engine headers",
		Long: `headertool scans C++ headers for UCLASS, UFUNCTION, UENUM and UMETA
annotations and extracts the reflection data a code generator needs.

Only annotated declarations are parsed; the rest of the header is skipped.
A file with a malformed annotation is reported with its line and column
and the run continues with the remaining files.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand(info))
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
