// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export drives incremental notebook-to-Markdown export: it walks
// a notebook's sections and pages, converts each unconverted page, writes
// the result under one directory per section, and records progress in a
// durable conversion cache so interrupted runs resume where they left off.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// cacheFile is the conversion cache filename inside the output directory.
const cacheFile = ".conversion_cache.json"

// Cache maps page IDs to the relative filename already written for them.
// Presence of an entry means a best-effort conversion attempt has
// completed; absence means the page must be converted.
type Cache struct {
	path    string
	entries map[string]string
}

// LoadCache reads the conversion cache from dir. A missing or empty cache
// file yields an empty cache, never an error; only an unreadable or
// corrupt file fails.
func LoadCache(dir string) (*Cache, error) {
	path := filepath.Join(dir, cacheFile)
	c := &Cache{path: path, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading conversion cache %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parsing conversion cache %s: %w", path, err)
	}
	return c, nil
}

// Contains reports whether a page ID has a cache entry.
func (c *Cache) Contains(pageID string) bool {
	_, ok := c.entries[pageID]
	return ok
}

// Get returns the filename recorded for a page ID.
func (c *Cache) Get(pageID string) (string, bool) {
	name, ok := c.entries[pageID]
	return name, ok
}

// Record upserts the filename for a page ID. Idempotent.
func (c *Cache) Record(pageID, filename string) {
	c.entries[pageID] = filename
}

// Len returns the number of cached pages.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Save rewrites the whole cache file. The write goes through a temp file
// in the same directory followed by a rename, so a crash loses at most the
// entry being written.
func (c *Cache) Save() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling conversion cache: %w", err)
	}
	return writeFileAtomic(c.path, append(data, '\n'))
}

// ClearCache resets the cache file in dir to an empty mapping without
// touching already-written Markdown files. The existed return reports
// whether a cache file was present.
func ClearCache(dir string) (existed bool, err error) {
	path := filepath.Join(dir, cacheFile)
	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) {
			return false, nil
		}
		return false, fmt.Errorf("checking conversion cache %s: %w", path, statErr)
	}
	if err := writeFileAtomic(path, []byte("{}\n")); err != nil {
		return true, err
	}
	return true, nil
}

// writeFileAtomic writes data to path via a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
