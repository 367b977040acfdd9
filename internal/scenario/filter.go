// Package scenario subsets the static edge list by business flow.
package scenario

import (
	"stackmap/internal/domain"
)

// Lookup resolves a scenario key to its definition
type Lookup interface {
	Scenario(key string) (domain.Scenario, bool)
}

// Filter returns the edges revealed by a scenario, in their original order.
// ALL returns every edge. An unknown key reveals nothing.
// The input slice is never modified.
func Filter(edges []domain.Edge, key string, scenarios Lookup) []domain.Edge {
	if key == domain.ScenarioAll {
		out := make([]domain.Edge, len(edges))
		copy(out, edges)
		return out
	}

	s, ok := scenarios.Scenario(key)
	if !ok {
		return []domain.Edge{}
	}

	return FilterSet(edges, s.EdgeSet())
}

// FilterSet keeps the edges whose id is in the include-set
func FilterSet(edges []domain.Edge, include map[string]struct{}) []domain.Edge {
	out := make([]domain.Edge, 0, len(include))
	for _, e := range edges {
		if _, ok := include[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}
