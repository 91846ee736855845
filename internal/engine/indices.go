package engine

import (
	"strings"

	"github.com/dm/eua-go/internal/client"
	"github.com/dm/eua-go/internal/model"
)

const (
	reindexPattern       = "Index created before"
	defaultFieldsPattern = "Number of fields exceeds automatic field expansion limit"
)

// IsReindexMessage reports whether a deprecation message says the index was
// created by an older major version and must be reindexed.
func IsReindexMessage(message string) bool {
	return strings.Contains(message, reindexPattern)
}

// NeedsDefaultFieldsMessage reports whether a deprecation message says the
// index has more fields than the automatic field expansion limit.
func NeedsDefaultFieldsMessage(message string) bool {
	return strings.Contains(message, defaultFieldsPattern)
}

// IsSystemIndex reports whether name is an internal index (.kibana,
// .security-6, .tasks and so on).
func IsSystemIndex(name string) bool {
	return strings.HasPrefix(name, ".")
}

// MergeIndexDeprecations builds the index warning list. Indices covered by
// the APM lookup are skipped so they are reported once, through apm, which is
// appended at the end. System indices are removed from the general list only.
func MergeIndexDeprecations(
	resp *client.DeprecationsResponse,
	apm []model.EnrichedDeprecationWarning,
	isSystemIndex SystemIndexPredicate,
) []model.EnrichedDeprecationWarning {
	apmIndices := make(map[string]struct{}, len(apm))
	for _, w := range apm {
		apmIndices[w.Index] = struct{}{}
	}

	out := make([]model.EnrichedDeprecationWarning, 0, len(apm))
	for _, entry := range resp.IndexSettings {
		if _, ok := apmIndices[entry.Index]; ok {
			continue
		}
		if isSystemIndex != nil && isSystemIndex(entry.Index) {
			continue
		}
		for _, w := range entry.Warnings {
			_, isApm := apmIndices[entry.Index]
			out = append(out, model.EnrichedDeprecationWarning{
				DeprecationWarning: w,
				Index:              entry.Index,
				Reindex:            IsReindexMessage(w.Message) && !isApm,
				NeedsDefaultFields: NeedsDefaultFieldsMessage(w.Message),
			})
		}
	}

	return append(out, apm...)
}
