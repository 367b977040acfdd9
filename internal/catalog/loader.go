package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"stackmap/internal/domain"
)

// Format identifies a catalog file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the file format from the extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
	}
}

// fileCatalog is the on-disk catalog structure shared by YAML and TOML
type fileCatalog struct {
	Nodes     []domain.Node                         `yaml:"nodes" toml:"nodes"`
	Edges     []domain.Edge                         `yaml:"edges" toml:"edges"`
	Presets   map[string]map[string]domain.Position `yaml:"presets" toml:"presets"`
	Scenarios []domain.Scenario                     `yaml:"scenarios" toml:"scenarios"`
	Payloads  map[string]any                        `yaml:"payloads" toml:"payloads"`
}

// LoadFile reads and validates a catalog file
func LoadFile(path string) (*Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Parse(bytes.NewReader(data), format)
}

// Parse decodes a catalog and validates it
func Parse(r io.Reader, format Format) (*Catalog, error) {
	var fc fileCatalog

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&fc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&fc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	cat, err := fc.toCatalog()
	if err != nil {
		return nil, err
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return cat, nil
}

func (fc *fileCatalog) toCatalog() (*Catalog, error) {
	cat := &Catalog{
		Nodes:     fc.Nodes,
		Edges:     make([]domain.Edge, 0, len(fc.Edges)),
		Presets:   make(map[domain.LayoutMode]domain.Snapshot, len(fc.Presets)),
		Scenarios: fc.Scenarios,
		Payloads:  make(map[string]json.RawMessage, len(fc.Payloads)),
	}

	for _, e := range fc.Edges {
		cat.Edges = append(cat.Edges, domain.NewEdge(e.ID, e.From, e.To, e.Label))
	}

	for mode, positions := range fc.Presets {
		cat.Presets[domain.LayoutMode(mode)] = domain.Snapshot(positions)
	}

	for edgeID, payload := range fc.Payloads {
		raw, err := encodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload for %s: %w", edgeID, err)
		}
		cat.Payloads[edgeID] = raw
	}

	return cat, nil
}

// encodePayload turns a decoded YAML/TOML value into JSON.
// A string value is taken as literal JSON text.
func encodePayload(v any) (json.RawMessage, error) {
	if s, ok := v.(string); ok {
		if !json.Valid([]byte(s)) {
			return nil, fmt.Errorf("payload string is not valid JSON")
		}
		return json.RawMessage(s), nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
