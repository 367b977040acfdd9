package view

import (
	"errors"

	"stackmap/internal/domain"
)

var (
	ErrUnknownLayout   = errors.New("unknown layout mode")
	ErrUnknownNode     = errors.New("unknown node")
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrNotConfirmed    = errors.New("action not confirmed")
	ErrInvalidDocument = errors.New("invalid layout document")
)

// State is the interactive state of one diagram session
type State struct {
	Layout   domain.LayoutMode `json:"layout"`
	Scenario string            `json:"scenario"`
	Playing  bool              `json:"playing"`
}

// Action names a state transition
type Action string

const (
	ActionSwitchLayout   Action = "switch_layout"
	ActionDragStop       Action = "drag_stop"
	ActionSetScenario    Action = "set_scenario"
	ActionTogglePlay     Action = "toggle_play"
	ActionResetLayout    Action = "reset_layout"
	ActionExport         Action = "export"
	ActionImport         Action = "import"
	ActionReplaceCatalog Action = "replace_catalog"
)

// Actions returns every action
func Actions() []Action {
	return []Action{
		ActionSwitchLayout,
		ActionDragStop,
		ActionSetScenario,
		ActionTogglePlay,
		ActionResetLayout,
		ActionExport,
		ActionImport,
		ActionReplaceCatalog,
	}
}

// Model is the state together with the graph derived from it
type Model struct {
	State     State               `json:"state"`
	Graph     *domain.Graph       `json:"graph"`
	Scenarios []ScenarioOption    `json:"scenarios"`
	Layouts   []domain.LayoutMode `json:"layouts"`
}

// ScenarioOption is a selectable scenario
type ScenarioOption struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}
