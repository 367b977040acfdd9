package domain

// Document is the exported layout state.
// On import both fields are optional.
type Document struct {
	Layout    LayoutMode `json:"layout" yaml:"layout"`
	Positions Snapshot   `json:"positions" yaml:"positions"`
}

// NewDocument creates a document for a layout and its snapshot
func NewDocument(layout LayoutMode, positions Snapshot) *Document {
	return &Document{
		Layout:    layout,
		Positions: positions.Clone(),
	}
}
