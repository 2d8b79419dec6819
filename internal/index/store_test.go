// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/notedown/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()

	store, err := Open(types.IndexConfig{OutputDir: root, MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, root
}

func writeNote(t *testing.T, root, section, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, section)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildAndSearch(t *testing.T) {
	store, root := testStore(t)
	writeNote(t, root, "Work", "Standup.md", "# Standup\n\nDiscussed the quarterly budget.")
	writeNote(t, root, "Personal", "Recipes.md", "# Recipes\n\nBread needs flour and patience.")

	var log bytes.Buffer
	summary, err := store.Build(context.Background(), &log)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if summary.Indexed != 2 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 2 indexed", summary)
	}

	results, err := store.Search(context.Background(), "budget", 0)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Path != filepath.ToSlash(filepath.Join("Work", "Standup.md")) {
		t.Errorf("path = %q", r.Path)
	}
	if r.Section != "Work" || r.Title != "Standup" {
		t.Errorf("section/title = %q/%q", r.Section, r.Title)
	}
	if !strings.Contains(r.Snippet, "[budget]") {
		t.Errorf("snippet %q does not highlight the match", r.Snippet)
	}
}

func TestBuildSkipsUnchangedFiles(t *testing.T) {
	store, root := testStore(t)
	writeNote(t, root, "Work", "Standup.md", "notes")

	if _, err := store.Build(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Build(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Indexed != 0 {
		t.Errorf("second build summary = %+v, want 1 skipped", summary)
	}
}

func TestBuildReindexesModifiedFiles(t *testing.T) {
	store, root := testStore(t)
	path := writeNote(t, root, "Work", "Standup.md", "first draft about topic alpha")

	if _, err := store.Build(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("second draft about topic beta"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Force a distinct modification time; coarse filesystem clocks can
	// otherwise make the rewrite invisible.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Build(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Updated != 1 {
		t.Errorf("summary = %+v, want 1 updated", summary)
	}

	if results, err := store.Search(context.Background(), "alpha", 0); err != nil {
		t.Fatal(err)
	} else if len(results) != 0 {
		t.Errorf("stale content still indexed: %+v", results)
	}
	if results, err := store.Search(context.Background(), "beta", 0); err != nil {
		t.Fatal(err)
	} else if len(results) != 1 {
		t.Errorf("new content not indexed, got %d results", len(results))
	}
}

func TestBuildIgnoresNonMarkdownAndHidden(t *testing.T) {
	store, root := testStore(t)
	writeNote(t, root, "Work", "Standup.md", "real note")
	writeNote(t, root, "Work", "image.png", "binary-ish")
	if err := os.WriteFile(filepath.Join(root, ".conversion_cache.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Build(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total() != 1 {
		t.Errorf("summary = %+v, want exactly 1 file processed", summary)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	store, _ := testStore(t)
	if _, err := store.Search(context.Background(), "   ", 0); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestSearchLimit(t *testing.T) {
	store, root := testStore(t)
	writeNote(t, root, "A", "One.md", "shared keyword here")
	writeNote(t, root, "B", "Two.md", "shared keyword here")
	writeNote(t, root, "C", "Three.md", "shared keyword here")

	if _, err := store.Build(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	results, err := store.Search(context.Background(), "keyword", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}
