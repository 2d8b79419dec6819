// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"strings"
	"testing"

	"github.com/pdiddy/notedown/pkg/types"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"passes clean title through", "Meeting Notes", "Meeting Notes"},
		{"replaces reserved characters", "A/B:C?", "A_B_C_"},
		{"replaces every reserved character", `a/b\c:d*e?f"g<h>i|j`, "a_b_c_d_e_f_g_h_i_j"},
		{"empty title becomes placeholder", "", "Untitled"},
		{"whitespace-only title becomes placeholder", "   \t ", "Untitled"},
		{"trims surrounding whitespace", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.title); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilenameTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := SanitizeFilename(long)
	if len(got) != 200 {
		t.Errorf("length = %d, want 200", len(got))
	}

	// Truncation counts runes, not bytes.
	wide := strings.Repeat("ü", 300)
	got = SanitizeFilename(wide)
	if n := len([]rune(got)); n != 200 {
		t.Errorf("rune length = %d, want 200", n)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		page   types.Page
		format types.DateFormat
		want   string
	}{
		{
			name:   "no date format",
			page:   types.Page{Title: "Groceries", CreatedDateTime: "2023-01-15T10:00:00Z"},
			format: types.DateNone,
			want:   "Groceries.md",
		},
		{
			name:   "year-month-day prefix",
			page:   types.Page{Title: "Groceries", CreatedDateTime: "2023-01-15T10:00:00Z"},
			format: types.DateYMD,
			want:   "2023-01-15-Groceries.md",
		},
		{
			name:   "month-day-year prefix",
			page:   types.Page{Title: "Groceries", CreatedDateTime: "2023-01-15T10:00:00Z"},
			format: types.DateMDY,
			want:   "01-15-2023-Groceries.md",
		},
		{
			name:   "day-month-year prefix",
			page:   types.Page{Title: "Groceries", CreatedDateTime: "2023-01-15T10:00:00Z"},
			format: types.DateDMY,
			want:   "15-01-2023-Groceries.md",
		},
		{
			name:   "falls back to modified timestamp",
			page:   types.Page{Title: "Groceries", LastModifiedDateTime: "2024-06-01T08:30:00Z"},
			format: types.DateYMD,
			want:   "2024-06-01-Groceries.md",
		},
		{
			name:   "no timestamp means no prefix",
			page:   types.Page{Title: "Groceries"},
			format: types.DateYMD,
			want:   "Groceries.md",
		},
		{
			name:   "sanitizes before prefixing",
			page:   types.Page{Title: "a/b", CreatedDateTime: "2023-01-15T10:00:00Z"},
			format: types.DateYMD,
			want:   "2023-01-15-a_b.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.page, tt.format); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}
