package engine

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/dm/eua-go/internal/client"
)

// MockESClient implements client.ESClient for testing.
type MockESClient struct {
	DeprecationsFn func(ctx context.Context) (*client.DeprecationsResponse, error)
	IndexStatesFn  func(ctx context.Context, names []string) (map[string]string, error)
	MappingsFn     func(ctx context.Context, patterns []string) (client.MappingsResponse, error)

	indexStateCalls atomic.Int32
	mappingCalls    atomic.Int32
}

func (m *MockESClient) GetDeprecations(ctx context.Context) (*client.DeprecationsResponse, error) {
	if m.DeprecationsFn != nil {
		return m.DeprecationsFn(ctx)
	}
	return &client.DeprecationsResponse{}, nil
}

func (m *MockESClient) GetIndexStates(ctx context.Context, names []string) (map[string]string, error) {
	m.indexStateCalls.Add(1)
	if m.IndexStatesFn != nil {
		return m.IndexStatesFn(ctx, names)
	}
	states := make(map[string]string, len(names))
	for _, n := range names {
		states[n] = "open"
	}
	return states, nil
}

func (m *MockESClient) GetMappings(ctx context.Context, patterns []string) (client.MappingsResponse, error) {
	m.mappingCalls.Add(1)
	if m.MappingsFn != nil {
		return m.MappingsFn(ctx, patterns)
	}
	return client.MappingsResponse{}, nil
}

func (m *MockESClient) Ping(ctx context.Context) error {
	return nil
}

func (m *MockESClient) BaseURL() string {
	return "http://mock:9200"
}

var errMockFailure = errors.New("mock failure")
