package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "notedown/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GraphConfig holds settings for the Microsoft Graph API client.
type GraphConfig struct {
	HTTPConfig `yaml:",inline"`

	// Token is the Microsoft Graph bearer token.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// RequestDelay is the minimum delay between consecutive Graph API
	// requests (default 500ms). Graph throttles aggressive clients.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// DateFormat selects the date prefix applied to exported filenames.
// The empty value disables prefixing.
type DateFormat string

const (
	DateNone DateFormat = ""
	DateYMD  DateFormat = "YYYY-MM-DD"
	DateMDY  DateFormat = "MM-DD-YYYY"
	DateDMY  DateFormat = "DD-MM-YYYY"
)

// Layout returns the time.Format layout for the format, or "" for DateNone.
func (f DateFormat) Layout() string {
	switch f {
	case DateYMD:
		return "2006-01-02"
	case DateMDY:
		return "01-02-2006"
	case DateDMY:
		return "02-01-2006"
	}
	return ""
}

// Valid reports whether f is one of the recognized formats.
func (f DateFormat) Valid() bool {
	switch f {
	case DateNone, DateYMD, DateMDY, DateDMY:
		return true
	}
	return false
}

// SkipProbe selects which on-disk filename variants satisfy the
// already-converted check for a cached page.
type SkipProbe string

const (
	// ProbeExact accepts only the filename computed for the current run
	// or the filename recorded in the cache.
	ProbeExact SkipProbe = "exact"

	// ProbeBare additionally accepts the sanitized title without a date
	// prefix, so files written before prefixing was enabled still count.
	ProbeBare SkipProbe = "bare"
)

// Valid reports whether p is a recognized probe mode.
func (p SkipProbe) Valid() bool {
	return p == ProbeExact || p == ProbeBare
}

// ExportConfig holds settings for the notebook export driver.
type ExportConfig struct {
	// OutputDir is the root directory for exported Markdown files
	// (one subdirectory per section).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DateFormat, when set, prefixes filenames with the page creation
	// date and sorts each section's pages chronologically.
	DateFormat DateFormat `json:"date_format,omitempty" yaml:"date_format,omitempty"`

	// SkipProbe controls the secondary existence check for cached pages
	// (default bare).
	SkipProbe SkipProbe `json:"skip_probe,omitempty" yaml:"skip_probe,omitempty"`
}

// IndexConfig holds settings for the local full-text search index.
type IndexConfig struct {
	// OutputDir is the export tree the index covers; the database lives
	// inside it.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all settings for the notedown CLI.
type Config struct {
	Graph  GraphConfig  `json:"graph" yaml:"graph"`
	Export ExportConfig `json:"export" yaml:"export"`
	Index  IndexConfig  `json:"index" yaml:"index"`
}
