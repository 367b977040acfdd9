package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"stackmap/internal/metrics"
	"stackmap/internal/service"
)

// RouterOptions holds the collaborators of the HTTP surface
type RouterOptions struct {
	Service     *service.ViewService
	Events      http.Handler       // SSE stream, usually a *hub.Hub
	Metrics     *metrics.Collector // optional
	Static      fs.FS              // optional web root
	CORSOrigins []string
	Logger      *zap.Logger
}

// NewRouter configures all routes and middleware
func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(logger))
	if opts.Metrics != nil {
		router.Use(Metrics(opts.Metrics))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/health", healthCheck)

	h := NewViewHandler(opts.Service, logger)
	router.Route("/api", func(r chi.Router) {
		r.Get("/view", h.GetView)
		r.Get("/catalog", h.GetCatalog)

		r.Put("/layout/{mode}", h.SwitchLayout)
		r.Post("/layout/reset", h.ResetLayout)
		r.Put("/positions/{nodeID}", h.UpdatePosition)
		r.Put("/scenario/{key}", h.SetScenario)
		r.Post("/play/toggle", h.TogglePlay)

		r.Get("/export", h.Export)
		r.Post("/import", h.Import)

		r.Get("/edges/{edgeID}/payload", h.GetPayload)

		r.Get("/theme", h.GetTheme)
		r.Put("/theme", h.SetTheme)
		r.Delete("/theme", h.ResetTheme)
	})

	if opts.Events != nil {
		router.Get("/events", opts.Events.ServeHTTP)
	}
	if opts.Metrics != nil {
		router.Get("/metrics", opts.Metrics.Handler().ServeHTTP)
	}
	if opts.Static != nil {
		router.Handle("/*", http.FileServer(http.FS(opts.Static)))
	}

	return router
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
