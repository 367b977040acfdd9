package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stackmap/internal/catalog"
	"stackmap/internal/config"
	"stackmap/internal/domain"
	"stackmap/internal/layout"
	"stackmap/internal/metrics"
	"stackmap/internal/repository"
	"stackmap/internal/repository/memory"
	"stackmap/internal/repository/postgres"
	redisstore "stackmap/internal/repository/redis"
	"stackmap/internal/repository/sqlite"
	"stackmap/internal/service"
	"stackmap/internal/theme"
	"stackmap/internal/view"
)

// session is one diagram controller with its storage
type session struct {
	svc     *service.ViewService
	bus     *service.EventBus
	records repository.Store
}

func (s *session) Close() error {
	return s.records.Close()
}

// openStore opens the configured record store. A non-nil collector
// instruments every operation.
func openStore(ctx context.Context, cfg config.StorageConfig, collector *metrics.Collector) (repository.Store, error) {
	var (
		store repository.Store
		err   error
	)

	switch cfg.Backend {
	case config.BackendMemory:
		store = memory.New()
	case config.BackendSQLite:
		store, err = sqlite.New(cfg.SQLite.Path)
	case config.BackendRedis:
		store, err = redisstore.New(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.BackendPostgres:
		store, err = postgres.New(ctx, cfg.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}

	if collector != nil {
		return metrics.InstrumentStore(store, cfg.Backend, collector), nil
	}
	return store, nil
}

// loadCatalog reads the configured catalog file, or returns the built-in one
func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Retail(), nil
	}
	cat, err := catalog.LoadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Path, err)
	}
	return cat, nil
}

func (a *app) openSession(ctx context.Context, collector *metrics.Collector) (*session, error) {
	cat, err := loadCatalog(a.cfg.Catalog)
	if err != nil {
		return nil, err
	}

	records, err := openStore(ctx, a.cfg.Storage, collector)
	if err != nil {
		return nil, err
	}

	bus := service.NewEventBus()
	positions := layout.NewStore(records, cat, a.logger.Named("layout"))
	ctrl, err := view.NewController(ctx, cat, positions, service.NewBusRenderer(bus), a.logger.Named("view"), view.Options{
		Layout:   domain.LayoutMode(a.cfg.View.Layout),
		Scenario: a.cfg.View.Scenario,
		Playing:  a.cfg.View.Autoplay,
	})
	if err != nil {
		records.Close()
		return nil, err
	}

	svc := service.NewViewService(ctrl, theme.NewService(records, a.logger.Named("theme")), bus, collector, a.logger.Named("service"))
	a.logger.Debug("session opened",
		zap.String("backend", a.cfg.Storage.Backend),
		zap.Int("nodes", len(cat.Nodes)),
		zap.String("layout", a.cfg.View.Layout))

	return &session{svc: svc, bus: bus, records: records}, nil
}
