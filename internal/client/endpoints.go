package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const (
	endpointRoot         = "/"
	endpointDeprecations = "/_migration/deprecations"
	endpointClusterState = "/_cluster/state/metadata/"
	filterIndexState     = "?filter_path=metadata.indices.*.state"
	filterApmMappings    = "?ignore_unavailable=true&allow_no_indices=true" +
		"&filter_path=*.mappings._meta.version,*.mappings.*._meta.version," +
		"*.mappings.properties.@timestamp,*.mappings.*.properties.@timestamp"
)

// GetDeprecations fetches cluster and index deprecation warnings from
// /_migration/deprecations.
func (c *DefaultClient) GetDeprecations(ctx context.Context) (*DeprecationsResponse, error) {
	body, err := c.doGet(ctx, endpointDeprecations)
	if err != nil {
		return nil, fmt.Errorf("GetDeprecations: %w", err)
	}

	var result DeprecationsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetDeprecations decode: %w", err)
	}
	return &result, nil
}

// GetIndexStates fetches the open/close state of the named indices from
// /_cluster/state/metadata. Indices missing from the response are absent
// from the returned map.
func (c *DefaultClient) GetIndexStates(ctx context.Context, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("GetIndexStates: names must not be empty")
	}
	body, err := c.doGet(ctx, endpointClusterState+joinEscaped(names)+filterIndexState)
	if err != nil {
		return nil, fmt.Errorf("GetIndexStates: %w", err)
	}

	var result IndexStateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetIndexStates decode: %w", err)
	}

	states := make(map[string]string, len(result.Metadata.Indices))
	for name, meta := range result.Metadata.Indices {
		states[name] = meta.State
	}
	return states, nil
}

// GetMappings fetches the _meta.version and @timestamp mapping fragments of
// every index matching patterns.
func (c *DefaultClient) GetMappings(ctx context.Context, patterns []string) (MappingsResponse, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("GetMappings: patterns must not be empty")
	}
	body, err := c.doGet(ctx, "/"+joinEscaped(patterns)+"/_mapping"+filterApmMappings)
	if err != nil {
		return nil, fmt.Errorf("GetMappings: %w", err)
	}

	result := MappingsResponse{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetMappings decode: %w", err)
	}
	return result, nil
}

// joinEscaped path-escapes each name and joins them with commas into a
// single multi-target path segment.
func joinEscaped(names []string) string {
	escaped := make([]string, len(names))
	for i, n := range names {
		escaped[i] = url.PathEscape(n)
	}
	return strings.Join(escaped, ",")
}
