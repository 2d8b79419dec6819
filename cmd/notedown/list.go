// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notedown/internal/graph"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List OneNote notebooks",
	Long: `List prints every notebook available to the signed-in account along with
its ID, for use with convert --notebook-id.`,
	RunE: runList,
}

func init() {
	addGraphFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := graphSettings(cmd)
	if err != nil {
		return err
	}

	client := graph.NewClient(cfg)
	notebooks, err := client.ListNotebooks(context.Background())
	if err != nil {
		return fmt.Errorf("listing notebooks: %w", err)
	}

	if len(notebooks) == 0 {
		fmt.Println("No notebooks found")
		return nil
	}

	fmt.Println("Available notebooks:")
	for _, nb := range notebooks {
		fmt.Printf("  %s (ID: %s)\n", nb.DisplayName, nb.ID)
	}
	return nil
}
