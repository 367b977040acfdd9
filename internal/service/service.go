package service

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"stackmap/internal/catalog"
	"stackmap/internal/codec"
	"stackmap/internal/domain"
	"stackmap/internal/inspector"
	"stackmap/internal/metrics"
	"stackmap/internal/theme"
	"stackmap/internal/view"
)

// StateChange is the body of a state_changed event
type StateChange struct {
	Action view.Action `json:"action"`
	State  view.State  `json:"state"`
}

// RoleInfo describes a node role and its color
type RoleInfo struct {
	Role  domain.Role `json:"role"`
	Color string      `json:"color"`
}

// CatalogInfo is the static part of the diagram
type CatalogInfo struct {
	Nodes     []domain.Node       `json:"nodes"`
	Edges     []domain.Edge       `json:"edges"`
	Scenarios []domain.Scenario   `json:"scenarios"`
	Roles     []RoleInfo          `json:"roles"`
	Layouts   []domain.LayoutMode `json:"layouts"`
}

// ViewService serializes access to one diagram session
type ViewService struct {
	mu        sync.Mutex
	ctrl      *view.Controller
	inspector *inspector.Inspector
	themes    *theme.Service
	eventBus  *EventBus
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// NewViewService creates a view service. collector may be nil.
func NewViewService(ctrl *view.Controller, themes *theme.Service, eventBus *EventBus, collector *metrics.Collector, logger *zap.Logger) *ViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	return &ViewService{
		ctrl:      ctrl,
		inspector: inspector.New(ctrl.Catalog()),
		themes:    themes,
		eventBus:  eventBus,
		metrics:   collector,
		logger:    logger,
	}
}

// View returns the current state and graph
func (s *ViewService) View() view.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.View()
}

// State returns the current state
func (s *ViewService) State() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.State()
}

// Catalog describes the nodes, edges, scenarios and roles
func (s *ViewService) Catalog() CatalogInfo {
	s.mu.Lock()
	cat := s.ctrl.Catalog()
	s.mu.Unlock()

	roles := make([]RoleInfo, 0, len(domain.Roles()))
	for _, r := range domain.Roles() {
		roles = append(roles, RoleInfo{Role: r, Color: r.Color()})
	}

	return CatalogInfo{
		Nodes:     cat.Nodes,
		Edges:     cat.Edges,
		Scenarios: cat.Scenarios,
		Roles:     roles,
		Layouts:   domain.LayoutModes(),
	}
}

// SwitchLayout activates a layout mode
func (s *ViewService) SwitchLayout(ctx context.Context, mode domain.LayoutMode) (view.Model, error) {
	return s.apply(view.ActionSwitchLayout, func() error {
		return s.ctrl.SwitchLayout(ctx, mode)
	})
}

// DragStop records a node's new position
func (s *ViewService) DragStop(ctx context.Context, nodeID string, pos domain.Position) (view.Model, error) {
	return s.apply(view.ActionDragStop, func() error {
		return s.ctrl.DragStop(ctx, nodeID, pos)
	})
}

// SetScenario selects the visible flow
func (s *ViewService) SetScenario(key string) (view.Model, error) {
	return s.apply(view.ActionSetScenario, func() error {
		return s.ctrl.SetScenario(key)
	})
}

// TogglePlay flips edge animation
func (s *ViewService) TogglePlay() (view.Model, error) {
	return s.apply(view.ActionTogglePlay, func() error {
		s.ctrl.TogglePlay()
		return nil
	})
}

// ResetLayout restores the preset positions of the active layout
func (s *ViewService) ResetLayout(ctx context.Context, confirmer view.Confirmer) (view.Model, error) {
	return s.apply(view.ActionResetLayout, func() error {
		return s.ctrl.ResetLayout(ctx, confirmer)
	})
}

// ImportState applies a layout document
func (s *ViewService) ImportState(ctx context.Context, r io.Reader, imp codec.Importer) (view.Model, error) {
	return s.apply(view.ActionImport, func() error {
		return s.ctrl.ImportState(ctx, r, imp)
	})
}

// ExportState returns the active layout document
func (s *ViewService) ExportState() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.ctrl.ExportState()
	s.observe(view.ActionExport, nil)
	return doc
}

// ExportTo writes the active layout document with exp
func (s *ViewService) ExportTo(w io.Writer, exp codec.Exporter) error {
	doc := s.ExportState()
	return exp.Export(doc, w)
}

// Payload returns the example payload for an edge as indented JSON
func (s *ViewService) Payload(edgeID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inspector.OnEdgeClick(edgeID)
}

// ReplaceCatalog swaps in a reloaded catalog
func (s *ViewService) ReplaceCatalog(ctx context.Context, cat *catalog.Catalog) error {
	_, err := s.apply(view.ActionReplaceCatalog, func() error {
		if err := s.ctrl.ReplaceCatalog(ctx, cat); err != nil {
			return err
		}
		s.inspector = inspector.New(cat)
		return nil
	})
	if err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type: EventCatalogReloaded,
		Payload: map[string]int{
			"nodes":     len(cat.Nodes),
			"edges":     len(cat.Edges),
			"scenarios": len(cat.Scenarios),
		},
	})
	s.logger.Info("catalog replaced",
		zap.Int("nodes", len(cat.Nodes)),
		zap.Int("edges", len(cat.Edges)))
	return nil
}

// Theme returns the current theme
func (s *ViewService) Theme(ctx context.Context) domain.Theme {
	return s.themes.Get(ctx)
}

// SetTheme stores a theme and notifies clients
func (s *ViewService) SetTheme(ctx context.Context, t domain.Theme) (domain.Theme, error) {
	if err := s.themes.Set(ctx, t); err != nil {
		return domain.Theme{}, err
	}
	s.eventBus.Publish(Event{Type: EventThemeChanged, Payload: t})
	return t, nil
}

// ResetTheme restores the default theme and notifies clients
func (s *ViewService) ResetTheme(ctx context.Context) (domain.Theme, error) {
	if err := s.themes.Reset(ctx); err != nil {
		return domain.Theme{}, err
	}
	t := s.themes.Get(ctx)
	s.eventBus.Publish(Event{Type: EventThemeChanged, Payload: t})
	return t, nil
}

// apply runs one transition under the session lock
func (s *ViewService) apply(action view.Action, fn func() error) (view.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn()
	s.observe(action, err)
	if err != nil {
		s.logger.Debug("transition rejected",
			zap.String("action", string(action)),
			zap.Error(err))
		return view.Model{}, err
	}

	state := s.ctrl.State()
	s.eventBus.Publish(Event{
		Type:    EventStateChanged,
		Payload: StateChange{Action: action, State: state},
	})
	return s.ctrl.View(), nil
}

func (s *ViewService) observe(action view.Action, err error) {
	if s.metrics != nil {
		s.metrics.ObserveTransition(string(action), err)
	}
}
