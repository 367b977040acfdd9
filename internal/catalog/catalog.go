// Package catalog holds the static node, edge, preset, scenario and payload
// tables of the diagram, and validates their invariants.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"stackmap/internal/domain"
)

// Catalog is the static data the diagram is built from
type Catalog struct {
	Nodes     []domain.Node
	Edges     []domain.Edge
	Presets   map[domain.LayoutMode]domain.Snapshot
	Scenarios []domain.Scenario
	Payloads  map[string]json.RawMessage
}

// Node returns the node with the given id
func (c *Catalog) Node(id string) (domain.Node, bool) {
	for _, n := range c.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Node{}, false
}

// HasNode reports whether a node with the given id exists
func (c *Catalog) HasNode(id string) bool {
	_, ok := c.Node(id)
	return ok
}

// Edge returns the edge with the given id
func (c *Catalog) Edge(id string) (domain.Edge, bool) {
	for _, e := range c.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Edge{}, false
}

// Scenario returns the named scenario. ALL is not stored and is reported as absent.
func (c *Catalog) Scenario(key string) (domain.Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.Key == key {
			return s, true
		}
	}
	return domain.Scenario{}, false
}

// HasScenario reports whether key is ALL or a known scenario
func (c *Catalog) HasScenario(key string) bool {
	if key == domain.ScenarioAll {
		return true
	}
	_, ok := c.Scenario(key)
	return ok
}

// Preset returns a copy of the built-in positions for a layout mode
func (c *Catalog) Preset(mode domain.LayoutMode) domain.Snapshot {
	return c.Presets[mode].Clone()
}

// Payload returns the example payload for an edge
func (c *Catalog) Payload(edgeID string) (json.RawMessage, bool) {
	p, ok := c.Payloads[edgeID]
	return p, ok
}

// NodeIDs returns node ids in catalog order
func (c *Catalog) NodeIDs() []string {
	ids := make([]string, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

// Validate checks the catalog invariants and reports every violation found
func (c *Catalog) Validate() error {
	var errs []error

	nodeIDs := make(map[string]struct{}, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.ID == "" {
			errs = append(errs, errors.New("node with empty id"))
			continue
		}
		if _, dup := nodeIDs[n.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate node id %q", n.ID))
		}
		nodeIDs[n.ID] = struct{}{}
		if !n.Role.Valid() {
			errs = append(errs, fmt.Errorf("node %q has unknown role %q", n.ID, n.Role))
		}
	}

	edgeIDs := make(map[string]struct{}, len(c.Edges))
	for _, e := range c.Edges {
		if e.ID == "" {
			errs = append(errs, errors.New("edge with empty id"))
			continue
		}
		if _, dup := edgeIDs[e.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate edge id %q", e.ID))
		}
		edgeIDs[e.ID] = struct{}{}
		if _, ok := nodeIDs[e.From]; !ok {
			errs = append(errs, fmt.Errorf("edge %q references unknown source node %q", e.ID, e.From))
		}
		if _, ok := nodeIDs[e.To]; !ok {
			errs = append(errs, fmt.Errorf("edge %q references unknown target node %q", e.ID, e.To))
		}
	}

	scenarioKeys := make(map[string]struct{}, len(c.Scenarios))
	for _, s := range c.Scenarios {
		switch {
		case s.Key == "":
			errs = append(errs, errors.New("scenario with empty key"))
			continue
		case s.Key == domain.ScenarioAll:
			errs = append(errs, fmt.Errorf("scenario key %q is reserved", domain.ScenarioAll))
			continue
		}
		if _, dup := scenarioKeys[s.Key]; dup {
			errs = append(errs, fmt.Errorf("duplicate scenario key %q", s.Key))
		}
		scenarioKeys[s.Key] = struct{}{}
		for _, id := range s.EdgeIDs {
			if _, ok := edgeIDs[id]; !ok {
				errs = append(errs, fmt.Errorf("scenario %q references unknown edge %q", s.Key, id))
			}
		}
	}

	for mode, preset := range c.Presets {
		if !mode.Valid() {
			errs = append(errs, fmt.Errorf("preset for unknown layout mode %q", mode))
			continue
		}
		for id := range preset {
			if _, ok := nodeIDs[id]; !ok {
				errs = append(errs, fmt.Errorf("%s preset references unknown node %q", mode, id))
			}
		}
	}

	for id, payload := range c.Payloads {
		if _, ok := edgeIDs[id]; !ok {
			errs = append(errs, fmt.Errorf("payload references unknown edge %q", id))
		}
		if !json.Valid(payload) {
			errs = append(errs, fmt.Errorf("payload for edge %q is not valid JSON", id))
		}
	}

	return errors.Join(errs...)
}
