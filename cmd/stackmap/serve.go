package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stackmap/internal/handler"
	"stackmap/internal/hub"
	"stackmap/internal/metrics"
	"stackmap/internal/service"
	"stackmap/internal/watcher"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram page, API and event stream",
		Long: `Start the HTTP server. The page at / renders the diagram and follows
render events from /events. The JSON API lives under /api.

  stackmap serve
  stackmap serve --addr :8080
  STACKMAP_STORAGE_BACKEND=redis stackmap serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	logger := a.logger
	logger.Info("starting stackmap", zap.String("config", a.cfgPath), zap.String("summary", a.cfg.Summary()))

	collector := metrics.NewCollector()
	sess, err := a.openSession(ctx, collector)
	if err != nil {
		return err
	}
	defer sess.Close()

	sseHub := hub.New(logger.Named("hub"), hub.WithClientCounter(func(n int) {
		collector.SSEClients.Set(float64(n))
	}))
	go sseHub.Run(ctx)

	// Connect event bus to SSE hub
	events := make(chan service.Event, 100)
	sess.bus.Subscribe(events)
	defer sess.bus.Unsubscribe(events)
	go func() {
		for {
			select {
			case event := <-events:
				sseHub.Broadcast(event)
			case <-ctx.Done():
				return
			}
		}
	}()

	if a.cfg.Catalog.Watch {
		reloader := watcher.NewCatalogReloader(a.cfg.Catalog.Path, sess.svc.ReplaceCatalog, logger.Named("catalog")).
			OnResult(collector.ObserveReload)
		w := reloader.Watcher().WithDebounce(a.cfg.Catalog.Debounce.Duration())
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return fmt.Errorf("embedded web content: %w", err)
	}

	router := handler.NewRouter(handler.RouterOptions{
		Service:     sess.svc,
		Events:      sseHub,
		Metrics:     collector,
		Static:      webContent,
		CORSOrigins: a.cfg.Server.CORSOrigins,
		Logger:      logger.Named("http"),
	})

	// No write timeout: /events responses stay open
	server := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", a.cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
