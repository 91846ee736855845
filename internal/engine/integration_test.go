//go:build integration

package engine_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/eua-go/internal/apm"
	"github.com/dm/eua-go/internal/client"
	"github.com/dm/eua-go/internal/engine"
	"github.com/dm/eua-go/internal/model"
)

// esClient creates a DefaultClient from $ES_URI or skips the test if unset.
func esClient(t *testing.T, insecure bool) client.ESClient {
	t.Helper()
	uri := os.Getenv("ES_URI")
	if uri == "" {
		t.Skip("ES_URI not set; skipping integration test")
	}
	c, err := client.NewDefaultClient(client.ClientConfig{
		BaseURL:            uri,
		InsecureSkipVerify: insecure,
		RequestTimeout:     10 * time.Second,
	})
	require.NoError(t, err)
	return c
}

// TestLiveCluster_UpgradeStatus runs the full check against $ES_URI and
// verifies the result invariants hold on real data.
func TestLiveCluster_UpgradeStatus(t *testing.T) {
	c := esClient(t, false)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := engine.GetUpgradeStatus(ctx, c, false, apm.DefaultIndexPatterns)
	require.NoError(t, err)
	require.NotNil(t, status)

	for _, w := range status.Indices {
		assert.NotEmpty(t, w.Index, "index warnings must name their index")
		if w.BlockerForReindexing != "" {
			assert.Equal(t, model.BlockerIndexClosed, w.BlockerForReindexing)
		}
	}
	assert.Equal(t, !model.HasCritical(status.Cluster, status.Indices), status.ReadyForUpgrade)
}

// TestLiveCluster_HTTPSWithInsecure skips unless ES_URI is https://.
func TestLiveCluster_HTTPSWithInsecure(t *testing.T) {
	if !strings.HasPrefix(os.Getenv("ES_URI"), "https://") {
		t.Skip("ES_URI is not https://; skipping TLS insecure test")
	}
	c := esClient(t, true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := engine.GetUpgradeStatus(ctx, c, false, nil)
	require.NoError(t, err)
}
