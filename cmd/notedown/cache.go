// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notedown/internal/export"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the conversion cache",
	Long: `Cache manages the per-output-directory record of already-converted pages
that makes convert runs incremental.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the conversion cache without touching exported files",
	Long: `Clear resets the conversion cache in the output directory to an empty
mapping. Exported Markdown files are left in place, but the next convert
run treats every page as unconverted and fetches it again.`,
	RunE: runCacheClear,
}

func init() {
	cacheClearCmd.Flags().StringP("output", "o", defaultOutputDir, "output directory")

	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	dir := stringSetting(cmd, "output", "export.output_dir")

	existed, err := export.ClearCache(dir)
	if err != nil {
		return err
	}
	if existed {
		fmt.Printf("Cleared conversion cache in %s\n", dir)
	} else {
		fmt.Printf("No conversion cache found in %s\n", dir)
	}
	return nil
}
