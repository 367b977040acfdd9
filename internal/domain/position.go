package domain

// Position is a 2-D node coordinate in graph space
type Position struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Origin is the position used for nodes with neither a stored nor a preset position
var Origin = Position{}

// Snapshot maps node id to position for one layout mode
type Snapshot map[string]Position

// Clone returns an independent copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for id, pos := range s {
		out[id] = pos
	}
	return out
}

// Equal reports whether both snapshots hold the same positions
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for id, pos := range s {
		if o, ok := other[id]; !ok || o != pos {
			return false
		}
	}
	return true
}
