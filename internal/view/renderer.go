package view

import "stackmap/internal/domain"

// Renderer draws the diagram. Implementations delegate to the graph library.
type Renderer interface {
	SetNodes(nodes []domain.GraphNode)
	SetEdges(edges []domain.GraphEdge)
	FitView()
	Alert(message string)
}

// NopRenderer discards every render command
type NopRenderer struct{}

func (NopRenderer) SetNodes([]domain.GraphNode) {}
func (NopRenderer) SetEdges([]domain.GraphEdge) {}
func (NopRenderer) FitView()                    {}
func (NopRenderer) Alert(string)                {}

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm calls f
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Approve is a Confirmer that always agrees
var Approve Confirmer = ConfirmFunc(func(string) bool { return true })

// Decline is a Confirmer that always refuses
var Decline Confirmer = ConfirmFunc(func(string) bool { return false })
