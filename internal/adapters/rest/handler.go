// Package rest exposes the recommender over HTTP.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ewilliams-labs/lineup/internal/core/services"
	"github.com/ewilliams-labs/lineup/internal/worker"
)

// WarmQueue accepts background profile builds.
type WarmQueue interface {
	Submit(job worker.Job) bool
}

// DayLister lists the festival days that have a schedule.
type DayLister interface {
	Days() ([][2]string, error)
}

// Config holds the optional parts of the HTTP adapter.
type Config struct {
	CORSOrigins []string
	Days        DayLister
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.Recommender
	warm   WarmQueue
	days   DayLister
	router chi.Router
}

// NewHandler initializes the HTTP adapter and sets up routes. pool may be
// nil, in which case warm-up requests are rejected.
func NewHandler(svc *services.Recommender, pool WarmQueue, cfg Config) *Handler {
	h := &Handler{
		svc:    svc,
		warm:   pool,
		days:   cfg.Days,
		router: chi.NewRouter(),
	}

	h.router.Use(requestIDWithLogging)
	h.router.Use(chimiddleware.RealIP)
	h.router.Use(accessLog)
	h.router.Use(chimiddleware.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		h.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.Get("/health", h.HealthCheck)
	h.router.Handle("/metrics", promhttp.Handler())

	h.router.Get("/festivals", h.ListFestivals)
	h.router.Route("/festival/{festival}/{day}", func(r chi.Router) {
		r.Get("/", h.GetTimetable)
		r.Get("/grid", h.GetGrid)
	})
	h.router.Get("/info/artists/{festival}/{day}", h.GetArtistProfiles)

	h.router.Route("/recommend/{festival}/{day}/{playlist}", func(r chi.Router) {
		r.Get("/", h.Recommend)
		r.Get("/scores", h.GetArtistScores)
	})

	h.router.Post("/warm/{festival}/{day}", h.Warm)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
