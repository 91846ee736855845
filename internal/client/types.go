package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DeprecationWarning is a single entry from /_migration/deprecations.
type DeprecationWarning struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
	Details string `json:"details,omitempty"`
}

// DeprecationsResponse represents the response from /_migration/deprecations.
// Missing categories decode to empty lists.
type DeprecationsResponse struct {
	ClusterSettings []DeprecationWarning `json:"cluster_settings"`
	MLSettings      []DeprecationWarning `json:"ml_settings"`
	NodeSettings    []DeprecationWarning `json:"node_settings"`
	IndexSettings   IndexDeprecations    `json:"index_settings"`
}

// IndexDeprecation holds the warnings reported for one index.
type IndexDeprecation struct {
	Index    string
	Warnings []DeprecationWarning
}

// IndexDeprecations is the index_settings object of the deprecations
// response. It keeps the key order of the JSON document, which a Go map
// would lose.
type IndexDeprecations []IndexDeprecation

// UnmarshalJSON decodes an {"index": [warnings...]} object in document order.
func (d *IndexDeprecations) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("index_settings: expected object, got %v", tok)
	}

	var out IndexDeprecations
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("index_settings: unexpected key %v", tok)
		}
		var warnings []DeprecationWarning
		if err := dec.Decode(&warnings); err != nil {
			return fmt.Errorf("index_settings[%s]: %w", name, err)
		}
		out = append(out, IndexDeprecation{Index: name, Warnings: warnings})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = out
	return nil
}

// MarshalJSON encodes the list back into an object keyed by index name.
func (d IndexDeprecations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Index)
		if err != nil {
			return nil, err
		}
		warnings := entry.Warnings
		if warnings == nil {
			warnings = []DeprecationWarning{}
		}
		val, err := json.Marshal(warnings)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IndexStateResponse represents the filtered response from /_cluster/state/metadata.
type IndexStateResponse struct {
	Metadata struct {
		Indices map[string]struct {
			State string `json:"state"`
		} `json:"indices"`
	} `json:"metadata"`
}

// MappingsResponse represents the filtered response from /<index>/_mapping,
// keyed by concrete index name.
type MappingsResponse map[string]IndexMappings

// IndexMappings holds the raw mappings of one index. Typeless (7.x) mappings
// carry _meta and properties at the top level; typed (6.x) mappings nest them
// under the single mapping type name.
type IndexMappings struct {
	Mappings map[string]json.RawMessage `json:"mappings"`
}

type mappingMeta struct {
	Meta *struct {
		Version string `json:"version"`
	} `json:"_meta"`
}

// MetaVersion returns _meta.version of the mapping, or "" if none is recorded.
func (m IndexMappings) MetaVersion() string {
	if raw, ok := m.Mappings["_meta"]; ok {
		var meta struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(raw, &meta); err == nil {
			return meta.Version
		}
		return ""
	}
	for name, raw := range m.Mappings {
		if name == "properties" {
			continue
		}
		var typed mappingMeta
		if err := json.Unmarshal(raw, &typed); err != nil {
			continue
		}
		if typed.Meta != nil && typed.Meta.Version != "" {
			return typed.Meta.Version
		}
	}
	return ""
}
