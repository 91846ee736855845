package engine

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dm/eua-go/internal/apm"
	"github.com/dm/eua-go/internal/client"
	"github.com/dm/eua-go/internal/model"
)

// ApmLookup returns the deprecation warnings of APM indices matching patterns.
// Every returned warning carries its index name.
type ApmLookup func(ctx context.Context, c client.ESClient, patterns []string) ([]model.EnrichedDeprecationWarning, error)

// SystemIndexPredicate reports whether an index is internal to the stack.
type SystemIndexPredicate func(name string) bool

// Aggregator computes the upgrade status of a cluster. The zero value of each
// collaborator field is replaced by its default, so Aggregator{Client: c} is
// ready to use. It holds no state between calls.
type Aggregator struct {
	Client client.ESClient

	ApmLookup     ApmLookup
	IsSystemIndex SystemIndexPredicate
	// IndexStates overrides Client.GetIndexStates.
	IndexStates IndexStateProbe
}

// NewAggregator returns an Aggregator for c wired with the default
// collaborators.
func NewAggregator(c client.ESClient) *Aggregator {
	return &Aggregator{
		Client:        c,
		ApmLookup:     apm.GetDeprecatedApmIndices,
		IsSystemIndex: IsSystemIndex,
		IndexStates:   c.GetIndexStates,
	}
}

// GetUpgradeStatus is a convenience wrapper around NewAggregator(c).GetUpgradeStatus.
func GetUpgradeStatus(ctx context.Context, c client.ESClient, isCloud bool, apmIndexPatterns []string) (*model.UpgradeStatus, error) {
	return NewAggregator(c).GetUpgradeStatus(ctx, isCloud, apmIndexPatterns)
}

// GetUpgradeStatus fetches the cluster deprecations and the APM index
// deprecations concurrently, merges them, marks closed indices and decides
// whether the cluster is ready for the upgrade. Any collaborator error is
// returned unchanged and no partial status is produced.
func (a *Aggregator) GetUpgradeStatus(ctx context.Context, isCloud bool, apmIndexPatterns []string) (*model.UpgradeStatus, error) {
	var (
		deprecations *client.DeprecationsResponse
		apmWarnings  []model.EnrichedDeprecationWarning
	)

	// Both fetches run on the caller's context; a failure in one does not
	// cancel the other.
	var g errgroup.Group

	g.Go(func() error {
		var err error
		deprecations, err = a.Client.GetDeprecations(ctx)
		return err
	})

	g.Go(func() error {
		var err error
		apmWarnings, err = a.apmLookup()(ctx, a.Client, apmIndexPatterns)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	cluster := FilterClusterDeprecations(deprecations, isCloud)
	indices := MergeIndexDeprecations(deprecations, apmWarnings, a.systemIndex())
	logrus.Debugf("upgrade status: %d cluster warnings, %d index warnings (%d from apm)",
		len(cluster), len(indices), len(apmWarnings))

	if len(indices) > 0 {
		if err := EnrichIndexStates(ctx, indices, a.indexStates()); err != nil {
			return nil, err
		}
	}

	return &model.UpgradeStatus{
		ReadyForUpgrade: !model.HasCritical(cluster, indices),
		Cluster:         cluster,
		Indices:         indices,
	}, nil
}

func (a *Aggregator) apmLookup() ApmLookup {
	if a.ApmLookup != nil {
		return a.ApmLookup
	}
	return apm.GetDeprecatedApmIndices
}

func (a *Aggregator) systemIndex() SystemIndexPredicate {
	if a.IsSystemIndex != nil {
		return a.IsSystemIndex
	}
	return IsSystemIndex
}

func (a *Aggregator) indexStates() IndexStateProbe {
	if a.IndexStates != nil {
		return a.IndexStates
	}
	return a.Client.GetIndexStates
}
