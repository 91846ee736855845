package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/eua-go/internal/client"
)

func warn(level, index string) EnrichedDeprecationWarning {
	return EnrichedDeprecationWarning{
		DeprecationWarning: client.DeprecationWarning{Level: level, Message: "m"},
		Index:              index,
	}
}

func TestSummarize(t *testing.T) {
	closed := warn(LevelWarning, "old")
	closed.Reindex = true
	closed.BlockerForReindexing = BlockerIndexClosed
	closedAgain := warn(LevelInfo, "old")
	closedAgain.BlockerForReindexing = BlockerIndexClosed

	status := &UpgradeStatus{
		Cluster: []EnrichedDeprecationWarning{warn(LevelCritical, ""), warn("none", "")},
		Indices: []EnrichedDeprecationWarning{closed, closedAgain, warn(LevelCritical, "apm-1")},
	}

	s := Summarize(status)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Critical)
	assert.Equal(t, 1, s.Warning)
	assert.Equal(t, 2, s.Info)
	assert.Equal(t, 1, s.Reindex)
	assert.Equal(t, 1, s.Closed, "closed counts distinct indices")
}

func TestSummarize_Nil(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestHasCritical(t *testing.T) {
	assert.False(t, HasCritical())
	assert.False(t, HasCritical(nil, []EnrichedDeprecationWarning{warn(LevelWarning, "")}))
	assert.True(t, HasCritical(nil, []EnrichedDeprecationWarning{warn(LevelCritical, "x")}))
	// Level comparison is exact.
	assert.False(t, HasCritical([]EnrichedDeprecationWarning{warn("Critical", "")}))
}

func TestEnrichedDeprecationWarning_JSON(t *testing.T) {
	w := EnrichedDeprecationWarning{
		DeprecationWarning: client.DeprecationWarning{Level: LevelWarning, Message: "Index created before 7.0"},
		Index:              "idx1",
		Reindex:            true,
	}
	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"warning","message":"Index created before 7.0","index":"idx1","reindex":true,"needsDefaultFields":false}`, string(data))

	w.BlockerForReindexing = BlockerIndexClosed
	data, err = json.Marshal(w)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"blockerForReindexing":"index-closed"`)
}
