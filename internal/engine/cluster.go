package engine

import (
	"github.com/dm/eua-go/internal/client"
	"github.com/dm/eua-go/internal/model"
)

// cloudManagedMessage is applied automatically by the cloud platform during
// the upgrade, so it is not reported for cloud deployments.
const cloudManagedMessage = "Security realm settings structure changed"

// FilterClusterDeprecations returns the cluster, ML and node setting warnings
// of resp, in that order. When isCloud is true the security realm warning,
// which the platform resolves on its own, is dropped.
func FilterClusterDeprecations(resp *client.DeprecationsResponse, isCloud bool) []model.EnrichedDeprecationWarning {
	total := len(resp.ClusterSettings) + len(resp.MLSettings) + len(resp.NodeSettings)
	out := make([]model.EnrichedDeprecationWarning, 0, total)

	for _, list := range [][]client.DeprecationWarning{resp.ClusterSettings, resp.MLSettings, resp.NodeSettings} {
		for _, w := range list {
			if isCloud && w.Message == cloudManagedMessage {
				continue
			}
			out = append(out, model.EnrichedDeprecationWarning{DeprecationWarning: w})
		}
	}
	return out
}
