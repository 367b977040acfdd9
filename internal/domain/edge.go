package domain

import "fmt"

// Edge is a directed integration between two nodes
type Edge struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	From  string `json:"from" yaml:"from" toml:"from"`
	To    string `json:"to" yaml:"to" toml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label"`
}

// NewEdge creates an edge. An empty id is derived from the endpoints.
func NewEdge(id, from, to, label string) Edge {
	edge := Edge{
		ID:    id,
		From:  from,
		To:    to,
		Label: label,
	}
	if edge.ID == "" {
		edge.ID = edge.GenerateID()
	}
	return edge
}

// GenerateID creates a deterministic ID from the endpoints.
// Direction matters: shop->oms and oms->shop are different integrations.
func (e Edge) GenerateID() string {
	return fmt.Sprintf("%s-%s", e.From, e.To)
}
