package service

import (
	"stackmap/internal/domain"
)

// AlertPayload is the body of an alert event
type AlertPayload struct {
	Message string `json:"message"`
}

// BusRenderer publishes render commands as events
type BusRenderer struct {
	bus *EventBus
}

// NewBusRenderer creates a renderer publishing to bus
func NewBusRenderer(bus *EventBus) *BusRenderer {
	return &BusRenderer{bus: bus}
}

func (r *BusRenderer) SetNodes(nodes []domain.GraphNode) {
	r.bus.Publish(Event{Type: EventRenderNodes, Payload: nodes})
}

func (r *BusRenderer) SetEdges(edges []domain.GraphEdge) {
	r.bus.Publish(Event{Type: EventRenderEdges, Payload: edges})
}

func (r *BusRenderer) FitView() {
	r.bus.Publish(Event{Type: EventRenderFit})
}

func (r *BusRenderer) Alert(message string) {
	r.bus.Publish(Event{Type: EventAlert, Payload: AlertPayload{Message: message}})
}
