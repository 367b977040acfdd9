package domain

// ScenarioAll is the sentinel scenario key that reveals every edge
const ScenarioAll = "ALL"

// Scenario is a named business flow revealing a fixed subset of edges
type Scenario struct {
	Key     string   `json:"key" yaml:"key" toml:"key"`
	Title   string   `json:"title" yaml:"title" toml:"title"`
	EdgeIDs []string `json:"edges" yaml:"edges" toml:"edges"`
}

// Includes reports whether the scenario reveals the edge
func (s Scenario) Includes(edgeID string) bool {
	for _, id := range s.EdgeIDs {
		if id == edgeID {
			return true
		}
	}
	return false
}

// EdgeSet returns the include-set as a lookup map
func (s Scenario) EdgeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.EdgeIDs))
	for _, id := range s.EdgeIDs {
		set[id] = struct{}{}
	}
	return set
}
