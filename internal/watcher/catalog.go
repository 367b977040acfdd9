package watcher

import (
	"context"

	"go.uber.org/zap"

	"stackmap/internal/catalog"
)

// ApplyFunc installs a freshly loaded catalog
type ApplyFunc func(ctx context.Context, cat *catalog.Catalog) error

// CatalogReloader reloads a catalog file and hands valid results to apply.
// An unreadable or invalid file is logged and the current catalog stays.
type CatalogReloader struct {
	path     string
	apply    ApplyFunc
	logger   *zap.Logger
	observed func(error)
}

// NewCatalogReloader creates a reloader for path
func NewCatalogReloader(path string, apply ApplyFunc, logger *zap.Logger) *CatalogReloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogReloader{
		path:     path,
		apply:    apply,
		logger:   logger,
		observed: func(error) {},
	}
}

// OnResult registers a callback receiving the outcome of every reload
func (r *CatalogReloader) OnResult(fn func(error)) *CatalogReloader {
	r.observed = fn
	return r
}

// Reload loads the file and applies it when valid
func (r *CatalogReloader) Reload(ctx context.Context) {
	err := r.reload(ctx)
	r.observed(err)
}

func (r *CatalogReloader) reload(ctx context.Context) error {
	cat, err := catalog.LoadFile(r.path)
	if err != nil {
		r.logger.Warn("catalog reload rejected, keeping current catalog",
			zap.String("path", r.path), zap.Error(err))
		return err
	}

	if err := r.apply(ctx, cat); err != nil {
		r.logger.Error("failed to apply reloaded catalog",
			zap.String("path", r.path), zap.Error(err))
		return err
	}

	r.logger.Info("catalog reloaded",
		zap.String("path", r.path),
		zap.Int("nodes", len(cat.Nodes)),
		zap.Int("edges", len(cat.Edges)))
	return nil
}

// Watcher returns a file watcher that reloads on change
func (r *CatalogReloader) Watcher() *Watcher {
	return New(r.path, r.Reload, r.logger)
}
