// Package view implements the diagram's interactive state machine.
//
// A Controller owns the current State (layout mode, scenario and animation
// flag) together with the node positions of the active layout. Each exported
// transition validates its input, updates the state, persists positions
// through the layout store where required and pushes the resulting nodes and
// edges to a Renderer. The controller is not safe for concurrent use; callers
// serialize access.
package view
