// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notedown/internal/export"
	"github.com/pdiddy/notedown/internal/graph"
	"github.com/pdiddy/notedown/pkg/types"
)

const (
	defaultOutputDir = "./onenote_output"
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "notedown/0.1"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Export a notebook to Markdown files",
	Long: `Convert exports one OneNote notebook to Markdown: each section becomes a
directory under the output directory and each page a Markdown file. Pages
recorded in the conversion cache and still present on disk are skipped, so
interrupted or repeated runs only fetch what is missing.

Without --notebook-id, the available notebooks are listed for interactive
selection. With --date-format, filenames gain a creation-date prefix and
each section's pages are exported in chronological order.`,
	RunE: runConvert,
}

func init() {
	addGraphFlags(convertCmd)
	convertCmd.Flags().String("notebook-id", "", "notebook to export (default: interactive selection)")
	convertCmd.Flags().StringP("output", "o", defaultOutputDir, "output directory")
	convertCmd.Flags().String("date-format", "", `date prefix for filenames: "YYYY-MM-DD", "MM-DD-YYYY", or "DD-MM-YYYY"`)
	convertCmd.Flags().String("skip-probe", string(types.ProbeBare), `existence check for cached pages: "bare" or "exact"`)

	rootCmd.AddCommand(convertCmd)
}

// addGraphFlags registers the flags shared by commands that call the
// Graph API.
func addGraphFlags(cmd *cobra.Command) {
	cmd.Flags().String("token", "", "Microsoft Graph access token")
	cmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	cmd.Flags().Duration("delay", graph.DefaultRequestDelay, "minimum delay between Graph API requests")
}

// graphSettings builds the Graph client config from flags, config file,
// and the token resolution chain.
func graphSettings(cmd *cobra.Command) (types.GraphConfig, error) {
	token, err := resolveToken(cmd)
	if err != nil {
		return types.GraphConfig{}, err
	}
	return types.GraphConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "graph.timeout"),
			UserAgent: defaultUserAgent,
		},
		Token:        token,
		RequestDelay: durationSetting(cmd, "delay", "graph.request_delay"),
	}, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	dateFormat := types.DateFormat(stringSetting(cmd, "date-format", "export.date_format"))
	if !dateFormat.Valid() {
		return fmt.Errorf("unrecognized date format %q (supported: %s, %s, %s)",
			dateFormat, types.DateYMD, types.DateMDY, types.DateDMY)
	}
	skipProbe := types.SkipProbe(stringSetting(cmd, "skip-probe", "export.skip_probe"))
	if !skipProbe.Valid() {
		return fmt.Errorf("unrecognized skip probe %q (supported: %s, %s)",
			skipProbe, types.ProbeBare, types.ProbeExact)
	}
	outputDir := stringSetting(cmd, "output", "export.output_dir")

	cfg, err := graphSettings(cmd)
	if err != nil {
		return err
	}
	client := graph.NewClient(cfg)
	ctx := context.Background()

	notebooks, err := client.ListNotebooks(ctx)
	if err != nil {
		return fmt.Errorf("listing notebooks: %w", err)
	}
	if len(notebooks) == 0 {
		fmt.Println("No notebooks found")
		return nil
	}

	notebook, err := selectNotebook(cmd, notebooks)
	if err != nil {
		return err
	}

	if m, err := export.ReadManifest(outputDir); err == nil {
		fmt.Printf("Resuming export into %s (last run %s)\n",
			outputDir, m.ExportedAt.Format(time.RFC3339))
	}

	exporter := &export.Exporter{
		Source: client,
		Config: types.ExportConfig{
			OutputDir:  outputDir,
			DateFormat: dateFormat,
			SkipProbe:  skipProbe,
		},
	}

	summary, err := exporter.ExportNotebook(ctx, notebook, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("Conversion complete! Files saved to %s\n", outputDir)
	if summary.HasFailures() {
		return fmt.Errorf("%d page(s) failed conversion", summary.Failed)
	}
	return nil
}

// selectNotebook returns the notebook named by --notebook-id, or prompts
// for a numbered choice when the flag is absent.
func selectNotebook(cmd *cobra.Command, notebooks []types.Notebook) (types.Notebook, error) {
	id, _ := cmd.Flags().GetString("notebook-id")
	if id != "" {
		for _, nb := range notebooks {
			if nb.ID == id {
				return nb, nil
			}
		}
		return types.Notebook{}, fmt.Errorf("notebook ID %s not found", id)
	}
	return pickNotebook(os.Stdin, os.Stderr, notebooks)
}

// pickNotebook presents a numbered menu and reads a 1-based selection.
func pickNotebook(r io.Reader, w io.Writer, notebooks []types.Notebook) (types.Notebook, error) {
	fmt.Fprintln(w, "Available notebooks:")
	for i, nb := range notebooks {
		fmt.Fprintf(w, "  %d. %s\n", i+1, nb.DisplayName)
	}
	fmt.Fprint(w, "Select notebook number: ")

	line, err := bufio.NewReader(r).ReadString('\n')
	choice := strings.TrimSpace(line)
	if choice == "" && err != nil {
		return types.Notebook{}, fmt.Errorf("reading selection: %w", err)
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(notebooks) {
		return types.Notebook{}, fmt.Errorf("invalid selection %q", choice)
	}
	return notebooks[n-1], nil
}
