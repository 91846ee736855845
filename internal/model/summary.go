package model

// Summary holds per-level counts across an UpgradeStatus.
type Summary struct {
	Total    int
	Critical int
	Warning  int
	Info     int // every level other than critical and warning
	Reindex  int // index warnings that require a reindex
	Closed   int // distinct indices closed at check time
}

// Summarize counts the warnings of status by level and annotation.
func Summarize(status *UpgradeStatus) Summary {
	var s Summary
	if status == nil {
		return s
	}

	count := func(w EnrichedDeprecationWarning) {
		s.Total++
		switch w.Level {
		case LevelCritical:
			s.Critical++
		case LevelWarning:
			s.Warning++
		default:
			s.Info++
		}
	}

	for _, w := range status.Cluster {
		count(w)
	}

	closed := make(map[string]struct{})
	for _, w := range status.Indices {
		count(w)
		if w.Reindex {
			s.Reindex++
		}
		if w.BlockerForReindexing == BlockerIndexClosed {
			closed[w.Index] = struct{}{}
		}
	}
	s.Closed = len(closed)

	return s
}
