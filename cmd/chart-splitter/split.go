// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chart-splitter/internal/catalog"
	"github.com/pdiddy/chart-splitter/internal/export"
	"github.com/pdiddy/chart-splitter/internal/pdfdoc"
	"github.com/pdiddy/chart-splitter/internal/split"
	"github.com/pdiddy/chart-splitter/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split <file.pdf>",
	Short: "Split a chart PDF into one named file per page",
	Long: `Split reads every page of a chart PDF, classifies it from its text, and
writes it to <output-root>/<SITE>/<NN>_<title> - <SITE>.pdf, where SITE is
the upper-cased input file name. Rotated pages are read with their layout
preserved. Pages without a recognizable title are written as
Untitled_Page_<n>; pages that cannot be processed as Error_Page_<n>.

With --dry-run nothing is written; the planned file names are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func runSplit(cmd *cobra.Command, args []string) error {
	input := args[0]
	cfg := splitConfig()
	logger := slog.Default()
	out := cmd.OutOrStdout()

	doc, err := pdfdoc.Open(input)
	if err != nil {
		return err
	}
	if err := doc.TextErr(); err != nil {
		logger.Warn("text layer unreadable, pages will be untitled", "source", input, "error", err)
	}

	naming := export.NamingFor(input, cfg.OutputRoot)
	report, err := split.New(doc, naming, cfg, logger).Run(input, out)
	if err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		if err := split.WriteReport(cfg.ReportPath, report); err != nil {
			return err
		}
		fmt.Fprintf(out, "report: %s\n", cfg.ReportPath)
	}

	if err := recordRun(cmd.Context(), report); err != nil {
		return err
	}

	if report.HasFailures() {
		return fmt.Errorf("%d page(s) failed export", report.Failed())
	}
	return nil
}

// recordRun stores the report in the catalog when one is configured.
func recordRun(ctx context.Context, report types.RunReport) error {
	cfg := catalogConfig()
	if cfg.Path == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(ctx, report)
	if err != nil {
		return err
	}
	slog.Info("run recorded", "catalog", cfg.Path, "run", id)
	return nil
}

func init() {
	splitCmd.Flags().String("output-root", "", "parent directory of the per-site output folder (default: the input file's directory)")
	splitCmd.Flags().Bool("dry-run", false, "classify pages and print planned file names without writing")
	splitCmd.Flags().String("report", "", "write a run report to this .yaml, .yml, or .json file")

	bindFlag("output_root", splitCmd.Flags().Lookup("output-root"))
	bindFlag("dry_run", splitCmd.Flags().Lookup("dry-run"))
	bindFlag("report", splitCmd.Flags().Lookup("report"))

	rootCmd.AddCommand(splitCmd)
}
