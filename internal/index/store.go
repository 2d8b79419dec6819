// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a local SQLite full-text search index over an
// exported notebook tree, so notes can be found again without opening
// OneNote. The index lives beside the exported files and is rebuilt
// incrementally: unchanged files are skipped by modification time.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notedown/pkg/types"
)

// dbFile is the index database filename inside the export directory.
const dbFile = ".notedown-index.db"

// Store manages the note index SQLite database.
type Store struct {
	db         *sql.DB
	root       string
	maxResults int
}

// Open opens or creates the index database inside the export directory
// and ensures the schema exists.
func Open(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.OutputDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, root: cfg.OutputDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			section TEXT,
			title TEXT,
			content TEXT NOT NULL,
			modified TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_section ON notes(section)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='notes_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE notes_fts USING fts5(title, content, content=notes, content_rowid=rowid)`,
			`CREATE TRIGGER notes_ai AFTER INSERT ON notes BEGIN
				INSERT INTO notes_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
			END`,
			`CREATE TRIGGER notes_ad AFTER DELETE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
			END`,
			`CREATE TRIGGER notes_au AFTER UPDATE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
				INSERT INTO notes_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// BuildSummary holds counts from an index build run.
type BuildSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s BuildSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Build walks the export tree for Markdown files and indexes them,
// skipping files whose modification time is unchanged since the last
// build. Per-file failures are logged and counted but do not abort.
func (s *Store) Build(ctx context.Context, w io.Writer) (BuildSummary, error) {
	var summary BuildSummary

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		status, err := s.indexFile(ctx, path, rel, d)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rel, err)
			summary.Failed++
			return nil
		}
		switch status {
		case "indexed":
			fmt.Fprintf(w, "indexed %s\n", rel)
			summary.Indexed++
		case "updated":
			fmt.Fprintf(w, "updated %s\n", rel)
			summary.Updated++
		default:
			summary.Skipped++
		}
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("walking export tree %s: %w", s.root, err)
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// indexFile upserts one note, returning "indexed", "updated", or
// "skipped".
func (s *Store) indexFile(ctx context.Context, path, rel string, d fs.DirEntry) (string, error) {
	info, err := d.Info()
	if err != nil {
		return "", err
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)
	rel = filepath.ToSlash(rel)

	var storedModTime string
	err = s.db.QueryRowContext(ctx,
		`SELECT modified FROM notes WHERE path = ?`, rel,
	).Scan(&storedModTime)
	if err == nil && storedModTime == modTime {
		return "skipped", nil
	}
	isUpdate := err == nil
	if err != nil && err != sql.ErrNoRows {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	section := ""
	if dir := filepath.Dir(rel); dir != "." {
		section = filepath.ToSlash(dir)
	}
	title := strings.TrimSuffix(filepath.Base(rel), ".md")

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO notes (path, section, title, content, modified)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			section=excluded.section, title=excluded.title,
			content=excluded.content, modified=excluded.modified`,
		rel, section, title, string(data), modTime,
	)
	if err != nil {
		return "", fmt.Errorf("upserting note: %w", err)
	}

	if isUpdate {
		return "updated", nil
	}
	return "indexed", nil
}

// Result is one full-text search hit.
type Result struct {
	// Path is the note's path relative to the export root.
	Path string

	// Section is the section directory the note belongs to.
	Section string

	// Title is the note title derived from its filename.
	Title string

	// Snippet is an excerpt of the matching content with the match
	// highlighted.
	Snippet string
}

// Search runs an FTS5 query over indexed notes, ranked by relevance.
// A maxResults of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT n.path, n.section, n.title,
			snippet(notes_fts, 1, '[', ']', '…', 12)
		FROM notes_fts
		JOIN notes n ON n.rowid = notes_fts.rowid
		WHERE notes_fts MATCH ?
		ORDER BY notes_fts.rank
		LIMIT ?`,
		query, maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Path, &r.Section, &r.Title, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
