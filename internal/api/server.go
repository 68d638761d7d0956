// Package api exposes a colony session over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions configures the outer surface of the router
type RouterOptions struct {
	AllowedOrigins []string
	// Metrics is mounted at MetricsPath when non-nil
	Metrics     http.Handler
	MetricsPath string
	Logger      *slog.Logger
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.GetCatalog)

		r.Route("/colony", func(r chi.Router) {
			r.Get("/", h.GetColony)
			r.Put("/selection", h.SetSelection)
			r.Delete("/selection", h.ClearSelection)

			r.Route("/buildings", func(r chi.Router) {
				r.Post("/", h.AddBuilding)
				r.Route("/{x}/{y}", func(r chi.Router) {
					r.Get("/", h.GetBuilding)
					r.Delete("/", h.Destroy)
					r.Post("/upgrade", h.Upgrade)
					r.Post("/cancel", h.CancelUpgrade)
					r.Post("/workers", h.AssignWorkers)
					r.Post("/production", h.SetProduction)
					r.Post("/queue", h.Enqueue)
					r.Delete("/queue/head", h.CancelQueueHead)
					r.Delete("/queue", h.ClearQueue)
				})
			})
		})
	})

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, opts.Metrics)
	}

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
