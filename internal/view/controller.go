package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"stackmap/internal/catalog"
	"stackmap/internal/codec"
	"stackmap/internal/domain"
	"stackmap/internal/layout"
	"stackmap/internal/scenario"
)

// ResetPrompt is the question asked before positions are reset
const ResetPrompt = "Reset all node positions of the current layout to the preset?"

// Options sets the initial state of a controller
type Options struct {
	Layout   domain.LayoutMode
	Scenario string
	Playing  bool
}

// Controller drives the diagram through its transitions
type Controller struct {
	catalog   *catalog.Catalog
	positions *layout.Store
	renderer  Renderer
	logger    *zap.Logger

	state    State
	snapshot domain.Snapshot
}

// NewController loads the initial layout and renders it
func NewController(ctx context.Context, cat *catalog.Catalog, positions *layout.Store, renderer Renderer, logger *zap.Logger, opts Options) (*Controller, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if positions == nil {
		return nil, errors.New("position store is required")
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mode := opts.Layout
	if mode == "" {
		mode = domain.LayoutCube
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, mode)
	}

	key := opts.Scenario
	if key == "" {
		key = domain.ScenarioAll
	}
	if !cat.HasScenario(key) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, key)
	}

	c := &Controller{
		catalog:   cat,
		positions: positions.WithPresets(cat),
		renderer:  renderer,
		logger:    logger,
		state: State{
			Layout:   mode,
			Scenario: key,
			Playing:  opts.Playing,
		},
	}
	c.snapshot = c.positions.Load(ctx, mode)

	c.renderNodes()
	c.renderEdges()
	c.renderer.FitView()
	return c, nil
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Catalog returns the catalog in use
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Positions returns a copy of the active layout's positions
func (c *Controller) Positions() domain.Snapshot {
	return c.snapshot.Clone()
}

// SwitchLayout activates mode with its stored or preset positions
func (c *Controller) SwitchLayout(ctx context.Context, mode domain.LayoutMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLayout, mode)
	}

	c.state.Layout = mode
	c.snapshot = c.positions.Load(ctx, mode)

	c.renderNodes()
	c.renderer.FitView()
	c.logger.Debug("layout switched", zap.String("layout", string(mode)))
	return nil
}

// DragStop records the final position of a dragged node and persists the
// whole snapshot of the active layout. The in-memory position is kept even
// when persisting fails.
func (c *Controller) DragStop(ctx context.Context, nodeID string, pos domain.Position) error {
	if !c.catalog.HasNode(nodeID) {
		return fmt.Errorf("%w: %q", ErrUnknownNode, nodeID)
	}

	c.snapshot[nodeID] = pos
	c.renderNodes()

	if err := c.positions.Save(ctx, c.state.Layout, c.snapshot); err != nil {
		return err
	}
	c.logger.Debug("node moved",
		zap.String("node", nodeID),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y))
	return nil
}

// SetScenario selects the edges shown. Positions are not touched.
func (c *Controller) SetScenario(key string) error {
	if !c.catalog.HasScenario(key) {
		return fmt.Errorf("%w: %q", ErrUnknownScenario, key)
	}

	c.state.Scenario = key
	c.renderEdges()
	c.logger.Debug("scenario selected", zap.String("scenario", key))
	return nil
}

// TogglePlay flips the edge animation and returns the new flag
func (c *Controller) TogglePlay() bool {
	c.state.Playing = !c.state.Playing
	c.renderEdges()
	return c.state.Playing
}

// ResetLayout clears the stored positions of the active layout after
// confirmation and reloads the preset
func (c *Controller) ResetLayout(ctx context.Context, confirmer Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(ResetPrompt) {
		return ErrNotConfirmed
	}

	if err := c.positions.Clear(ctx, c.state.Layout); err != nil {
		return err
	}
	c.snapshot = c.positions.Load(ctx, c.state.Layout)

	c.renderNodes()
	c.renderer.FitView()
	c.logger.Debug("layout reset", zap.String("layout", string(c.state.Layout)))
	return nil
}

// ExportState returns the active layout and its positions
func (c *Controller) ExportState() *domain.Document {
	return domain.NewDocument(c.state.Layout, c.snapshot)
}

// ExportTo writes the exported state with exp
func (c *Controller) ExportTo(w io.Writer, exp codec.Exporter) error {
	return exp.Export(c.ExportState(), w)
}

// ImportState reads a layout document, persists its positions under its
// layout and switches to that layout. A document that cannot be parsed
// raises an alert and leaves the state unchanged.
func (c *Controller) ImportState(ctx context.Context, r io.Reader, imp codec.Importer) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return c.rejectImport(err)
	}

	doc, err := imp.Parse(bytes.NewReader(body))
	if err != nil {
		return c.rejectImport(err)
	}

	mode := doc.Layout
	if mode == "" {
		mode = c.state.Layout
	}

	positions := domain.Snapshot{}
	dropped := 0
	for id, pos := range doc.Positions {
		if !c.catalog.HasNode(id) {
			dropped++
			continue
		}
		positions[id] = pos
	}
	if dropped > 0 {
		c.logger.Info("import dropped positions of unknown nodes", zap.Int("count", dropped))
	}

	if err := c.positions.Save(ctx, mode, positions); err != nil {
		c.renderer.Alert("Import failed: positions could not be saved")
		return err
	}

	c.state.Layout = mode
	c.snapshot = c.positions.Load(ctx, mode)

	c.renderNodes()
	c.renderer.FitView()
	c.logger.Debug("layout imported",
		zap.String("layout", string(mode)),
		zap.Int("positions", len(positions)))
	return nil
}

func (c *Controller) rejectImport(err error) error {
	c.renderer.Alert("Import failed: " + err.Error())
	return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
}

// View returns the state and the graph derived from it
func (c *Controller) View() Model {
	graph := domain.NewGraph()
	graph.Nodes = c.nodes()
	graph.Edges = c.edges()

	options := make([]ScenarioOption, 0, len(c.catalog.Scenarios)+1)
	options = append(options, ScenarioOption{Key: domain.ScenarioAll, Title: "All flows"})
	for _, s := range c.catalog.Scenarios {
		options = append(options, ScenarioOption{Key: s.Key, Title: s.Title})
	}

	return Model{
		State:     c.state,
		Graph:     graph,
		Scenarios: options,
		Layouts:   domain.LayoutModes(),
	}
}

// ReplaceCatalog swaps in a new catalog. Layout and animation are kept; a
// scenario missing from the new catalog falls back to ALL.
func (c *Controller) ReplaceCatalog(ctx context.Context, cat *catalog.Catalog) error {
	if cat == nil {
		return errors.New("catalog is required")
	}

	c.catalog = cat
	c.positions = c.positions.WithPresets(cat)
	if !cat.HasScenario(c.state.Scenario) {
		c.logger.Info("scenario removed from catalog, showing all flows",
			zap.String("scenario", c.state.Scenario))
		c.state.Scenario = domain.ScenarioAll
	}
	c.snapshot = c.positions.Load(ctx, c.state.Layout)

	c.renderNodes()
	c.renderEdges()
	return nil
}

func (c *Controller) nodes() []domain.GraphNode {
	return domain.DeriveNodes(c.catalog.Nodes, c.snapshot)
}

func (c *Controller) edges() []domain.GraphEdge {
	visible := scenario.Filter(c.catalog.Edges, c.state.Scenario, c.catalog)
	return domain.DeriveEdges(visible, c.state.Playing)
}

func (c *Controller) renderNodes() {
	c.renderer.SetNodes(c.nodes())
}

func (c *Controller) renderEdges() {
	c.renderer.SetEdges(c.edges())
}
