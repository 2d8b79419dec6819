// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/notedown/internal/convert"
	"github.com/pdiddy/notedown/internal/graph"
	"github.com/pdiddy/notedown/pkg/types"
)

// PageSource enumerates a notebook's sections and pages and fetches page
// content. graph.Client implements it; tests substitute fakes.
type PageSource interface {
	ListSections(ctx context.Context, notebookID string) ([]types.Section, error)
	ListPages(ctx context.Context, sectionID string) ([]types.Page, error)
	GetPageContent(ctx context.Context, pageID string) (string, error)
}

// Summary holds the outcome of an export run.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of pages processed.
func (s Summary) Total() int {
	return s.Converted + s.Skipped + s.Failed
}

// HasFailures reports whether any pages failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Exporter converts one notebook's pages to Markdown files on disk.
// Execution is strictly sequential: each page is fully fetched, converted,
// and written (or skipped) before the next begins.
type Exporter struct {
	Source PageSource
	Config types.ExportConfig
}

// ExportNotebook exports every section of the notebook under the
// configured output directory, one subdirectory per section, printing
// per-page progress to w. Individual page failures are logged and counted
// but never abort the run; enumeration failures do.
func (e *Exporter) ExportNotebook(ctx context.Context, notebook types.Notebook, w io.Writer) (Summary, error) {
	outDir := e.Config.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	cache, err := LoadCache(outDir)
	if err != nil {
		return Summary{}, err
	}

	sections, err := e.Source.ListSections(ctx, notebook.ID)
	if err != nil {
		return Summary{}, fmt.Errorf("listing sections of notebook %s: %w", notebook.ID, err)
	}
	fmt.Fprintf(w, "Found %d sections\n", len(sections))

	var summary Summary
	manifest := Manifest{NotebookID: notebook.ID, NotebookName: notebook.DisplayName}

	for _, section := range sections {
		sectionDir := filepath.Join(outDir, SanitizeFilename(section.DisplayName))
		if err := os.MkdirAll(sectionDir, 0o755); err != nil {
			return summary, fmt.Errorf("creating section directory %s: %w", sectionDir, err)
		}

		pages, err := e.Source.ListPages(ctx, section.ID)
		if err != nil {
			return summary, fmt.Errorf("listing pages of section %q: %w", section.DisplayName, err)
		}

		// With date-prefixed names, process chronologically so the
		// prefixes sort the way the notebook reads. RFC 3339 strings
		// order lexicographically; missing timestamps sort first.
		if e.Config.DateFormat != types.DateNone {
			sort.SliceStable(pages, func(i, j int) bool {
				return pages[i].CreatedDateTime < pages[j].CreatedDateTime
			})
		}

		fmt.Fprintf(w, "Section %q: %d pages\n", section.DisplayName, len(pages))

		for _, page := range pages {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			e.exportPage(ctx, cache, sectionDir, page, &summary, w)
		}

		manifest.Sections = append(manifest.Sections, SectionManifest{
			Name:  section.DisplayName,
			Pages: len(pages),
		})
	}

	fmt.Fprintf(w, "\nExport summary: %d converted, %d skipped, %d failed (total: %d)\n",
		summary.Converted, summary.Skipped, summary.Failed, summary.Total())

	manifest.ExportedAt = nowUTC()
	if err := WriteManifest(outDir, manifest); err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}

	return summary, nil
}

// exportPage converts a single page, updating the summary and reporting
// its outcome to w. All per-page failures are absorbed here.
func (e *Exporter) exportPage(ctx context.Context, cache *Cache, sectionDir string, page types.Page, summary *Summary, w io.Writer) {
	filename := Filename(page, e.Config.DateFormat)

	if cache.Contains(page.ID) && e.onDisk(cache, sectionDir, page, filename) {
		fmt.Fprintf(w, "skipped: %s (already converted)\n", page.Title)
		summary.Skipped++
		return
	}

	fmt.Fprintf(w, "converting: %s\n", page.Title)

	content, err := e.Source.GetPageContent(ctx, page.ID)
	if err != nil {
		switch {
		case errors.Is(err, graph.ErrNotFound):
			// Subpage or sync artifact; it will never appear, so cache
			// it to stop future runs from retrying.
			fmt.Fprintf(w, "failed:  %s (page not found, will not retry)\n", page.Title)
			e.record(cache, page.ID, filename, w)
		case errors.Is(err, graph.ErrForbidden):
			fmt.Fprintf(w, "failed:  %s (access denied, may be password protected)\n", page.Title)
		default:
			fmt.Fprintf(w, "failed:  %s (%v)\n", page.Title, err)
		}
		summary.Failed++
		return
	}

	markdown, err := convert.ToMarkdown(content)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", page.Title, err)
		summary.Failed++
		return
	}

	if err := writeFileAtomic(filepath.Join(sectionDir, filename), []byte(markdown)); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", page.Title, err)
		summary.Failed++
		return
	}

	e.record(cache, page.ID, filename, w)
	fmt.Fprintf(w, "converted: %s\n", filename)
	summary.Converted++
}

// record updates the cache and persists it immediately, so a crash after
// this page loses at most the next one.
func (e *Exporter) record(cache *Cache, pageID, filename string, w io.Writer) {
	cache.Record(pageID, filename)
	if err := cache.Save(); err != nil {
		fmt.Fprintf(w, "warning: saving conversion cache: %v\n", err)
	}
}

// onDisk reports whether a plausibly matching file for a cached page
// exists: the exact filename computed for this run, the filename recorded
// in the cache, or (in bare probe mode) the sanitized title without a
// date prefix. The bare probe keeps files written under a different
// prefixing mode counted as done; it guards against a cache that outlived
// a deleted output tree.
func (e *Exporter) onDisk(cache *Cache, sectionDir string, page types.Page, filename string) bool {
	candidates := []string{filename}
	if recorded, ok := cache.Get(page.ID); ok && recorded != filename {
		candidates = append(candidates, recorded)
	}
	if e.Config.SkipProbe != types.ProbeExact {
		if bare := SanitizeFilename(page.Title) + ".md"; bare != filename {
			candidates = append(candidates, bare)
		}
	}

	for _, name := range candidates {
		if _, err := os.Stat(filepath.Join(sectionDir, name)); err == nil {
			return true
		}
	}
	return false
}
