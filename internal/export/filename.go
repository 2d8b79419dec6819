// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"strings"

	"github.com/pdiddy/notedown/pkg/types"
)

// placeholderName stands in for titles that sanitize to nothing.
const placeholderName = "Untitled"

// maxNameLen caps the sanitized title length, keeping paths well inside
// filesystem limits even with a date prefix and extension appended.
const maxNameLen = 200

// invalidChars replaces the characters Windows filesystems reject.
var invalidChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeFilename turns a page or section title into a safe filename
// component: reserved characters become underscores, the result is capped
// at 200 characters and trimmed, and an empty result falls back to
// "Untitled".
func SanitizeFilename(title string) string {
	name := invalidChars.Replace(title)
	if runes := []rune(name); len(runes) > maxNameLen {
		name = string(runes[:maxNameLen])
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return placeholderName
	}
	return name
}

// Filename derives the output filename for a page: the sanitized title
// plus the ".md" extension, with a date prefix and separator prepended
// when a date format is configured and the page carries a timestamp.
func Filename(page types.Page, format types.DateFormat) string {
	name := SanitizeFilename(page.Title)
	if prefix := datePrefix(page, format); prefix != "" {
		return prefix + "-" + name + ".md"
	}
	return name + ".md"
}

// datePrefix formats the page creation (or, failing that, modification)
// timestamp per the configured format. Empty when prefixing is off or the
// page has no usable timestamp.
func datePrefix(page types.Page, format types.DateFormat) string {
	layout := format.Layout()
	if layout == "" {
		return ""
	}
	t, ok := page.Date()
	if !ok {
		return ""
	}
	return t.Format(layout)
}
