// Package layout persists node positions per layout mode and falls back to
// the catalog presets when nothing usable is stored.
package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"stackmap/internal/domain"
	"stackmap/internal/repository"
)

// Presets supplies the built-in positions and the node list they apply to
type Presets interface {
	Preset(mode domain.LayoutMode) domain.Snapshot
	NodeIDs() []string
}

// Store reads and writes position snapshots keyed by layout mode
type Store struct {
	records repository.Store
	presets Presets
	logger  *zap.Logger
}

// NewStore creates a position store
func NewStore(records repository.Store, presets Presets, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		records: records,
		presets: presets,
		logger:  logger,
	}
}

// WithPresets returns a store sharing the same records with different presets
func (s *Store) WithPresets(presets Presets) *Store {
	return &Store{
		records: s.records,
		presets: presets,
		logger:  s.logger,
	}
}

// Load returns the position of every node for mode: the persisted position,
// else the preset, else the origin. A persisted snapshot that cannot be read
// or parsed is ignored as a whole.
func (s *Store) Load(ctx context.Context, mode domain.LayoutMode) domain.Snapshot {
	persisted := s.readPersisted(ctx, mode)
	preset := s.presets.Preset(mode)

	ids := s.presets.NodeIDs()
	out := make(domain.Snapshot, len(ids))
	for _, id := range ids {
		if pos, ok := persisted[id]; ok {
			out[id] = pos
			continue
		}
		if pos, ok := preset[id]; ok {
			out[id] = pos
			continue
		}
		out[id] = domain.Origin
	}
	return out
}

// Preset returns the built-in positions for mode with origin for uncovered nodes
func (s *Store) Preset(mode domain.LayoutMode) domain.Snapshot {
	preset := s.presets.Preset(mode)

	ids := s.presets.NodeIDs()
	out := make(domain.Snapshot, len(ids))
	for _, id := range ids {
		out[id] = preset[id]
	}
	return out
}

// Save overwrites the persisted snapshot for mode
func (s *Store) Save(ctx context.Context, mode domain.LayoutMode, snapshot domain.Snapshot) error {
	if snapshot == nil {
		snapshot = domain.Snapshot{}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal %s positions: %w", mode, err)
	}

	if err := s.records.Put(ctx, repository.PositionsKey(mode), data); err != nil {
		return fmt.Errorf("failed to save %s positions: %w", mode, err)
	}
	return nil
}

// Clear removes the persisted snapshot for mode
func (s *Store) Clear(ctx context.Context, mode domain.LayoutMode) error {
	if err := s.records.Delete(ctx, repository.PositionsKey(mode)); err != nil {
		return fmt.Errorf("failed to clear %s positions: %w", mode, err)
	}
	return nil
}

func (s *Store) readPersisted(ctx context.Context, mode domain.LayoutMode) domain.Snapshot {
	data, err := s.records.Get(ctx, repository.PositionsKey(mode))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("failed to read positions, using preset",
			zap.String("layout", string(mode)), zap.Error(err))
		return nil
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn("malformed positions, using preset",
			zap.String("layout", string(mode)), zap.Error(err))
		return nil
	}
	return snapshot
}
