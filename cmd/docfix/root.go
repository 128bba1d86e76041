package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teamsdoc/docfix/pkg/docfix"
)

// NewRootCmd creates the root command for docfix.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docfix",
		Short: "Repair Word documents for Word Online / Teams rendering",
		Long: `docfix rewrites DOCX files so they render correctly in constrained
web-based viewers such as Word Online and Microsoft Teams.

It applies a fixed set of normalizing edits: excessive paragraph spacing and
indentation are clamped, fonts unavailable online are substituted, floating
images become inline, tables gain minimal cell margins, and legacy
compatibility flags are removed. Everything else in the document passes
through untouched.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewFixCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyVerbose lowers the log level when --verbose is set.
func applyVerbose(cmd *cobra.Command, config *docfix.Config) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		config.LogLevel = "debug"
	}
}
