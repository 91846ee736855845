package format

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dm/eua-go/internal/model"
)

// FormatLevel returns the upper-cased deprecation level, or "UNKNOWN" for an
// empty level.
func FormatLevel(level string) string {
	if level == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(level)
}

// FormatFlags lists the annotations of an index warning as a comma separated
// string, e.g. "reindex, default fields, index closed". Returns "" when none apply.
func FormatFlags(w model.EnrichedDeprecationWarning) string {
	var flags []string
	if w.Reindex {
		flags = append(flags, "reindex")
	}
	if w.NeedsDefaultFields {
		flags = append(flags, "default fields")
	}
	if w.BlockerForReindexing == model.BlockerIndexClosed {
		flags = append(flags, "index closed")
	}
	return strings.Join(flags, ", ")
}

// FormatReadiness returns "READY" or "NOT READY".
func FormatReadiness(ready bool) string {
	if ready {
		return "READY"
	}
	return "NOT READY"
}

// Truncate shortens s to at most maxWidth terminal cells, ending with "..."
// when there is room for it. Wide characters count as two cells.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// FormatNumber formats an integer with locale-style comma separators.
// Example: 12345678 → "12,345,678".
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		// s starts with "-"; strip it, insert commas, restore sign.
		return "-" + insertCommas(s[1:])
	}
	return insertCommas(s)
}

// FormatCount formats n followed by noun, pluralised with a trailing "s"
// when n != 1. Example: FormatCount(1204, "warning") → "1,204 warnings".
func FormatCount(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return FormatNumber(int64(n)) + " " + noun
}

// insertCommas inserts comma separators into a digit string every 3 digits from the right.
func insertCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var buf strings.Builder
	lead := n % 3
	if lead > 0 {
		buf.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}
