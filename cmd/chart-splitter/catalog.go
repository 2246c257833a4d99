// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pdiddy/chart-splitter/internal/catalog"
	"github.com/pdiddy/chart-splitter/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the run catalog",
	Long: `Catalog queries the SQLite database that split runs are recorded in
when --catalog (or catalog.path) is set.`,
}

var catalogRunsCmd = &cobra.Command{
	Use:   "runs [site]",
	Short: "List recorded runs, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogRuns,
}

func runCatalogRuns(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	site := ""
	if len(args) > 0 {
		site = args[0]
	}
	runs, err := store.Runs(cmd.Context(), site)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(out, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-6s  %-5s  %-5s  %-6s  %s\n", "Run", "Site", "Pages", "Saved", "Failed", "Recorded")
	fmt.Fprintln(out, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s  %-6s  %-5d  %-5d  %-6d  %s\n",
			r.ID, r.SiteCode, r.PageCount, r.Exported, r.Failed, humanize.Time(r.RecordedAt))
	}
	return nil
}

var catalogPagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Search recorded pages by site, category, or title",
	RunE:  runCatalogPages,
}

func runCatalogPages(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	site, _ := cmd.Flags().GetString("site")
	category, _ := cmd.Flags().GetString("category")
	title, _ := cmd.Flags().GetString("title")
	limit, _ := cmd.Flags().GetInt("limit")

	pages, err := store.Pages(cmd.Context(), catalog.QueryOptions{
		Site:     site,
		Category: types.Category(category),
		Title:    title,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(out, pages)
	}
	if len(pages) == 0 {
		fmt.Fprintln(out, "No pages found.")
		return nil
	}

	fmt.Fprintf(out, "%-6s  %-4s  %-15s  %-40s  %s\n", "Site", "Page", "Category", "Title", "Status")
	fmt.Fprintln(out, strings.Repeat("-", 90))
	for _, p := range pages {
		t := p.Title
		if len(t) > 40 {
			t = t[:37] + "..."
		}
		fmt.Fprintf(out, "%-6s  %-4d  %-15s  %-40s  %s\n", p.SiteCode, p.Page, p.Category, t, p.Status)
	}
	fmt.Fprintf(out, "\n%d pages\n", len(pages))
	return nil
}

func openCatalog() (*catalog.Store, error) {
	cfg := catalogConfig()
	if cfg.Path == "" {
		return nil, fmt.Errorf("no catalog configured: pass --catalog or set catalog.path")
	}
	return catalog.NewStore(cfg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	catalogCmd.PersistentFlags().Int("max-results", 50, "default maximum number of query results")
	catalogCmd.PersistentFlags().Bool("json", false, "output results as JSON")
	bindFlag("catalog.max_results", catalogCmd.PersistentFlags().Lookup("max-results"))

	catalogPagesCmd.Flags().String("site", "", "filter by site code")
	catalogPagesCmd.Flags().String("category", "", "filter by category (STAR, SID, Approach, ...)")
	catalogPagesCmd.Flags().String("title", "", "filter by title substring")
	catalogPagesCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")

	catalogCmd.AddCommand(catalogRunsCmd)
	catalogCmd.AddCommand(catalogPagesCmd)

	rootCmd.AddCommand(catalogCmd)
}
