package model

import "github.com/dm/eua-go/internal/client"

// Deprecation levels reported by /_migration/deprecations.
const (
	LevelCritical = "critical"
	LevelWarning  = "warning"
	LevelInfo     = "info"
)

// BlockerIndexClosed marks an index warning whose index is closed and
// therefore cannot be reindexed until it is reopened.
const BlockerIndexClosed = "index-closed"

// EnrichedDeprecationWarning is a deprecation warning annotated for the
// upgrade status. Index is empty for cluster-level warnings.
type EnrichedDeprecationWarning struct {
	client.DeprecationWarning
	Index                string `json:"index,omitempty"`
	Reindex              bool   `json:"reindex"`
	NeedsDefaultFields   bool   `json:"needsDefaultFields"`
	BlockerForReindexing string `json:"blockerForReindexing,omitempty"`
}

// UpgradeStatus is the result of a single upgrade readiness check.
type UpgradeStatus struct {
	ReadyForUpgrade bool                         `json:"readyForUpgrade"`
	Cluster         []EnrichedDeprecationWarning `json:"cluster"`
	Indices         []EnrichedDeprecationWarning `json:"indices"`
}

// IsCritical reports whether the warning blocks the upgrade.
func (w EnrichedDeprecationWarning) IsCritical() bool {
	return w.Level == LevelCritical
}

// HasCritical reports whether any of the given warning lists holds a
// critical entry.
func HasCritical(lists ...[]EnrichedDeprecationWarning) bool {
	for _, list := range lists {
		for _, w := range list {
			if w.IsCritical() {
				return true
			}
		}
	}
	return false
}
