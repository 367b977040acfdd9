package domain

import "fmt"

// Graph is the derived view for the browser's vis-network instance
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphNode represents a node in the visualization
type GraphNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Group string  `json:"group"` // role
	Title string  `json:"title"` // Tooltip content
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// GraphEdge represents an edge in the visualization
type GraphEdge struct {
	ID       string `json:"id"`
	From     string `json:"from"`
	To       string `json:"to"`
	Label    string `json:"label,omitempty"`
	Arrows   string `json:"arrows"`
	Dashes   bool   `json:"dashes"`
	Animated bool   `json:"animated"`
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		Nodes: []GraphNode{},
		Edges: []GraphEdge{},
	}
}

// DeriveNodes converts catalog nodes to visualization nodes placed at the
// snapshot positions. Order follows the catalog.
func DeriveNodes(nodes []Node, positions Snapshot) []GraphNode {
	out := make([]GraphNode, 0, len(nodes))
	for _, node := range nodes {
		pos := positions[node.ID]
		out = append(out, GraphNode{
			ID:    node.ID,
			Label: node.Label,
			Group: string(node.Role),
			Title: buildTooltip(node),
			Color: node.Role.Color(),
			X:     pos.X,
			Y:     pos.Y,
		})
	}
	return out
}

// DeriveEdges converts edges to visualization edges.
// Animated edges are drawn dashed so the page can run the flow animation.
func DeriveEdges(edges []Edge, animated bool) []GraphEdge {
	out := make([]GraphEdge, 0, len(edges))
	for _, edge := range edges {
		out = append(out, GraphEdge{
			ID:       edge.ID,
			From:     edge.From,
			To:       edge.To,
			Label:    edge.Label,
			Arrows:   "to",
			Dashes:   animated,
			Animated: animated,
		})
	}
	return out
}

func buildTooltip(node Node) string {
	tooltip := fmt.Sprintf("%s\n%s", node.Label, node.Role)
	if node.Description != "" {
		tooltip += "\n" + node.Description
	}
	return tooltip
}
