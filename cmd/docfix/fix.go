package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/teamsdoc/docfix/pkg/docfix"
	"golang.org/x/sync/errgroup"
)

// NewFixCmd creates the fix command.
func NewFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [files...]",
		Short: "Fix DOCX files on disk",
		Long: `Fix rewrites one or more DOCX files for Word Online / Teams rendering.

Each input produces a sibling output file with "_teams" inserted before the
extension, or a file of the same derived name inside the --output directory.

Examples:
  # Fix a single document
  docfix fix report.docx

  # Fix several documents, four at a time, into ./fixed
  docfix fix --jobs 4 --output fixed *.docx

  # Fix only images and tables
  docfix fix --spacing=false --margins=false --fonts=false report.docx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFixCmd,
	}

	cmd.Flags().StringP("output", "o", "", "Directory for fixed files (default: next to each input)")
	cmd.Flags().IntP("jobs", "j", docfix.DefaultJobs, "Number of files fixed concurrently")

	cmd.Flags().Bool("spacing", true, "Clamp excessive paragraph and line spacing")
	cmd.Flags().Bool("margins", true, "Zero unusually large indents")
	cmd.Flags().Bool("fonts", true, "Substitute fonts unavailable in Word Online")
	cmd.Flags().Bool("images", true, "Convert floating images to inline")
	cmd.Flags().Bool("tables", true, "Insert default table cell margins")

	return cmd
}

// runFixCmd executes the fix command.
func runFixCmd(cmd *cobra.Command, args []string) error {
	config := docfix.GetGlobalConfig()
	applyVerbose(cmd, config)
	docfix.SetGlobalConfig(config)

	opts := optionsFromFlags(cmd)

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs <= 0 {
		jobs = docfix.DefaultJobs
	}

	engine := docfix.NewWithConfig(config)
	logger := docfix.GetLogger()

	var g errgroup.Group
	g.SetLimit(jobs)
	for _, input := range args {
		input := input
		g.Go(func() error {
			outPath := outputPath(input, outputDir)
			if err := fixFile(engine, input, outPath, opts); err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			logger.Info("fixed %s -> %s", input, outPath)
			return nil
		})
	}
	return g.Wait()
}

// fixFile processes a single document from inPath to outPath.
func fixFile(engine *docfix.Engine, inPath, outPath string, opts docfix.Options) error {
	input, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	result, err := engine.Process(input, opts)
	if err != nil {
		return err
	}

	return os.WriteFile(outPath, result.Output, 0o644)
}

// outputPath derives where the fixed copy of input is written.
func outputPath(input, outputDir string) string {
	name := docfix.DerivedFilename(filepath.Base(input))
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

// optionsFromFlags builds the fix options from the command's toggle flags.
func optionsFromFlags(cmd *cobra.Command) docfix.Options {
	var opts docfix.Options
	opts.FixSpacing, _ = cmd.Flags().GetBool("spacing")
	opts.FixMargins, _ = cmd.Flags().GetBool("margins")
	opts.FixFonts, _ = cmd.Flags().GetBool("fonts")
	opts.FixImages, _ = cmd.Flags().GetBool("images")
	opts.FixTables, _ = cmd.Flags().GetBool("tables")
	return opts
}
