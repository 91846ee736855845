// Package apm detects APM indices whose mappings predate the 7.x format.
package apm

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"

	"github.com/dm/eua-go/internal/client"
	"github.com/dm/eua-go/internal/model"
)

const (
	deprecationMessage = "APM index requires conversion to 7.x format"
	deprecationURL     = "https://www.elastic.co/guide/en/apm/get-started/master/apm-release-notes.html"
	deprecationDetails = "This index was created prior to 7.0"
)

// DefaultIndexPatterns are the index patterns APM Server writes to out of the box.
var DefaultIndexPatterns = []string{"apm-*"}

var minMappingVersion = semver.MustParse("7.0.0")

// Patterns is a compiled set of index name patterns.
type Patterns []glob.Glob

// CompilePatterns compiles Elasticsearch style index patterns ("apm-*").
func CompilePatterns(patterns []string) (Patterns, error) {
	out := make(Patterns, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid index pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Match reports whether name matches any of the patterns.
func (p Patterns) Match(name string) bool {
	for _, g := range p {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// IsLegacyApmIndex reports whether name is an APM index whose mapping was
// written by an APM Server older than 7.0. A mapping without a parsable
// _meta.version is treated as legacy.
func IsLegacyApmIndex(name string, patterns Patterns, mappings client.IndexMappings) bool {
	if !patterns.Match(name) {
		return false
	}
	version := mappings.MetaVersion()
	if version == "" {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		logrus.Debugf("apm index %s has unparsable mapping version %q", name, version)
		return true
	}
	return v.LessThan(minMappingVersion)
}

// GetDeprecatedApmIndices returns a critical, reindex-required warning for
// every legacy APM index matching patterns, ordered by index name. No request
// is made when patterns is empty, and a 404 from the cluster means no index
// matched.
func GetDeprecatedApmIndices(ctx context.Context, c client.ESClient, patterns []string) ([]model.EnrichedDeprecationWarning, error) {
	out := []model.EnrichedDeprecationWarning{}
	if len(patterns) == 0 {
		return out, nil
	}

	compiled, err := CompilePatterns(patterns)
	if err != nil {
		return nil, err
	}

	mappings, err := c.GetMappings(ctx, patterns)
	if err != nil {
		if client.IsNotFound(err) {
			return out, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(mappings))
	for name := range mappings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !IsLegacyApmIndex(name, compiled, mappings[name]) {
			continue
		}
		out = append(out, model.EnrichedDeprecationWarning{
			DeprecationWarning: client.DeprecationWarning{
				Level:   model.LevelCritical,
				Message: deprecationMessage,
				URL:     deprecationURL,
				Details: deprecationDetails,
			},
			Index:   name,
			Reindex: true,
		})
	}
	return out, nil
}
