// Package inspector renders the example payload attached to an edge.
package inspector

import (
	"bytes"
	"encoding/json"
)

const indent = "  "

// PlaceholderMessage is shown for edges without an example payload
const PlaceholderMessage = "no payload available"

// Payloads looks up example payloads by edge id
type Payloads interface {
	Payload(edgeID string) (json.RawMessage, bool)
}

type placeholder struct {
	Edge    string `json:"edge"`
	Message string `json:"message"`
}

// Inspector answers edge clicks with indented JSON
type Inspector struct {
	payloads Payloads
}

// New creates an inspector over payloads
func New(payloads Payloads) *Inspector {
	return &Inspector{payloads: payloads}
}

// OnEdgeClick returns the payload for edgeID, or a placeholder object when
// the edge has none
func (i *Inspector) OnEdgeClick(edgeID string) string {
	if raw, ok := i.payloads.Payload(edgeID); ok && len(raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", indent); err == nil {
			return buf.String()
		}
	}
	return Placeholder(edgeID)
}

// Placeholder returns the object shown for an edge without a payload
func Placeholder(edgeID string) string {
	out, _ := json.MarshalIndent(placeholder{Edge: edgeID, Message: PlaceholderMessage}, "", indent)
	return string(out)
}
