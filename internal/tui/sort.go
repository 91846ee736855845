package tui

import (
	"sort"
	"strings"

	"github.com/dm/eua-go/internal/format"
	"github.com/dm/eua-go/internal/model"
)

// levelRank orders levels by severity; unknown levels rank lowest.
func levelRank(level string) int {
	switch level {
	case model.LevelCritical:
		return 3
	case model.LevelWarning:
		return 2
	case model.LevelInfo:
		return 1
	default:
		return 0
	}
}

// sortWarnings returns a sorted copy of rows ordered by the field behind kind.
// Ties are broken by index name, then message, both case-insensitive.
func sortWarnings(rows []model.EnrichedDeprecationWarning, kind columnKind, desc bool) []model.EnrichedDeprecationWarning {
	out := make([]model.EnrichedDeprecationWarning, len(rows))
	copy(out, rows)

	tieBreak := func(a, b model.EnrichedDeprecationWarning) bool {
		ai, bi := strings.ToLower(a.Index), strings.ToLower(b.Index)
		if ai != bi {
			return ai < bi
		}
		return strings.ToLower(a.Message) < strings.ToLower(b.Message)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less bool
		switch kind {
		case colLevel:
			ra, rb := levelRank(a.Level), levelRank(b.Level)
			if ra == rb {
				return tieBreak(a, b)
			}
			less = ra < rb
		case colMessage:
			ma, mb := strings.ToLower(a.Message), strings.ToLower(b.Message)
			if ma == mb {
				return tieBreak(a, b)
			}
			less = ma < mb
		case colDetails:
			da, db := strings.ToLower(a.Details), strings.ToLower(b.Details)
			if da == db {
				return tieBreak(a, b)
			}
			less = da < db
		case colFlags:
			fa, fb := format.FormatFlags(a), format.FormatFlags(b)
			if fa == fb {
				return tieBreak(a, b)
			}
			less = fa < fb
		default:
			if strings.EqualFold(a.Index, b.Index) {
				return strings.ToLower(a.Message) < strings.ToLower(b.Message)
			}
			less = tieBreak(a, b)
		}
		if desc {
			return !less
		}
		return less
	})
	return out
}

// filterWarnings returns rows whose index, message or details contain search
// (case-insensitive). Returns all rows when search is empty.
func filterWarnings(rows []model.EnrichedDeprecationWarning, search string) []model.EnrichedDeprecationWarning {
	if search == "" {
		return rows
	}
	lower := strings.ToLower(search)
	out := rows[:0:0]
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Index), lower) ||
			strings.Contains(strings.ToLower(r.Message), lower) ||
			strings.Contains(strings.ToLower(r.Details), lower) {
			out = append(out, r)
		}
	}
	return out
}
