// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Notebook is one OneNote notebook as returned by the Graph API.
type Notebook struct {
	// ID is the Graph identifier for the notebook.
	ID string `json:"id" yaml:"id"`

	// DisplayName is the notebook name shown in OneNote.
	DisplayName string `json:"displayName" yaml:"display_name"`
}

// Section is one section within a notebook. Each section maps to one
// output directory in the export tree.
type Section struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"displayName" yaml:"display_name"`
}

// Page is one page within a section. Timestamps are the RFC 3339 strings
// the Graph API returns; either may be empty. They are kept as strings so
// chronological ordering is a plain lexicographic comparison.
type Page struct {
	// ID is the Graph identifier for the page; the conversion cache is
	// keyed on it.
	ID string `json:"id" yaml:"id"`

	// Title is the page title. May be empty.
	Title string `json:"title" yaml:"title"`

	// CreatedDateTime is when the page was created.
	CreatedDateTime string `json:"createdDateTime,omitempty" yaml:"created,omitempty"`

	// LastModifiedDateTime is when the page was last modified.
	LastModifiedDateTime string `json:"lastModifiedDateTime,omitempty" yaml:"modified,omitempty"`
}

// Date returns the page creation time, falling back to the modification
// time when creation is absent. ok is false when neither timestamp is
// present or parseable.
func (p Page) Date() (t time.Time, ok bool) {
	for _, ts := range []string{p.CreatedDateTime, p.LastModifiedDateTime} {
		if ts == "" {
			continue
		}
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
