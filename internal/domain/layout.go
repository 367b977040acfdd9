package domain

import "fmt"

// LayoutMode selects a position preset
type LayoutMode string

const (
	LayoutCube  LayoutMode = "cube"
	LayoutLanes LayoutMode = "lanes"
)

// LayoutModes returns every layout mode
func LayoutModes() []LayoutMode {
	return []LayoutMode{LayoutCube, LayoutLanes}
}

// Valid reports whether m is a known layout mode
func (m LayoutMode) Valid() bool {
	return m == LayoutCube || m == LayoutLanes
}

// ParseLayoutMode converts a string to a LayoutMode
func ParseLayoutMode(s string) (LayoutMode, error) {
	m := LayoutMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown layout mode %q", s)
	}
	return m, nil
}
