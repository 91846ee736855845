package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dm/eua-go/internal/model"
)

// indexStateClosed is the state /_cluster/state reports for a closed index.
const indexStateClosed = "close"

// IndexStateProbe returns the open/close state of each named index.
type IndexStateProbe func(ctx context.Context, names []string) (map[string]string, error)

// EnrichIndexStates marks, in place, every warning whose index is closed with
// model.BlockerIndexClosed. The probe is called once with the distinct index
// names in first-seen order, and not at all when there are none. Probe errors
// are returned unchanged.
func EnrichIndexStates(ctx context.Context, warnings []model.EnrichedDeprecationWarning, probe IndexStateProbe) error {
	seen := make(map[string]struct{})
	var names []string
	for _, w := range warnings {
		if w.Index == "" {
			continue
		}
		if _, ok := seen[w.Index]; ok {
			continue
		}
		seen[w.Index] = struct{}{}
		names = append(names, w.Index)
	}
	if len(names) == 0 {
		return nil
	}

	states, err := probe(ctx, names)
	if err != nil {
		return err
	}

	closed := 0
	for i := range warnings {
		if states[warnings[i].Index] == indexStateClosed {
			warnings[i].BlockerForReindexing = model.BlockerIndexClosed
			closed++
		}
	}
	if closed > 0 {
		logrus.Debugf("%d index warnings belong to closed indices", closed)
	}
	return nil
}
