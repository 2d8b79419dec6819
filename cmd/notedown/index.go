// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notedown/internal/index"
	"github.com/pdiddy/notedown/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and query a full-text index over exported notes",
	Long: `Index maintains a local SQLite full-text search index over the exported
Markdown tree. Use "build" after a convert run and "search" to find notes.`,
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Index the exported Markdown files",
	Long: `Build walks the output directory for Markdown files and indexes their
content. Files unchanged since the last build are skipped.`,
	RunE: runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	store, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Build(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the indexed notes",
	Long: `Search runs an FTS5 full-text query over the indexed notes and prints
matching files with a highlighted excerpt, most relevant first.`,
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("provide a search query")
	}

	store, err := openIndex(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	maxResults, _ := cmd.Flags().GetInt("max-results")
	results, err := store.Search(context.Background(), query, maxResults)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s\n    %s\n", r.Path, r.Snippet)
	}
	return nil
}

func openIndex(cmd *cobra.Command) (*index.Store, error) {
	return index.Open(types.IndexConfig{
		OutputDir:  stringSetting(cmd, "output", "export.output_dir"),
		MaxResults: viper.GetInt("index.max_results"),
	})
}

func init() {
	for _, cmd := range []*cobra.Command{indexBuildCmd, indexSearchCmd} {
		cmd.Flags().StringP("output", "o", defaultOutputDir, "output directory")
	}
	indexSearchCmd.Flags().Int("max-results", 0, "maximum number of results (default 20)")

	indexCmd.AddCommand(indexBuildCmd, indexSearchCmd)
	rootCmd.AddCommand(indexCmd)
}
