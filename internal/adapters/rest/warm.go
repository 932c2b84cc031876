package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ewilliams-labs/lineup/internal/worker"
)

// Warm handles POST /warm/{festival}/{day}
func (h *Handler) Warm(w http.ResponseWriter, r *http.Request) {
	if h.warm == nil {
		writeError(w, http.StatusNotImplemented, "warm-up worker not configured")
		return
	}

	job := worker.Job{Festival: chi.URLParam(r, "festival"), Day: chi.URLParam(r, "day")}
	if !h.warm.Submit(job) {
		writeError(w, http.StatusServiceUnavailable, "warm-up queue is full")
		return
	}
	writeJSON(w, http.StatusAccepted, festivalDay{Festival: job.Festival, Day: job.Day})
}
