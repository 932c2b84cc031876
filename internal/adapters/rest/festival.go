package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

type festivalDay struct {
	Festival string `json:"festival"`
	Day      string `json:"day"`
}

type artistProfilesResponse struct {
	Festival string                `json:"festival"`
	Day      string                `json:"day"`
	Artists  domain.ArtistProfiles `json:"artists"`
}

// ListFestivals handles GET /festivals
func (h *Handler) ListFestivals(w http.ResponseWriter, r *http.Request) {
	if h.days == nil {
		writeError(w, http.StatusNotImplemented, "festival listing not configured")
		return
	}
	days, err := h.days.Days()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]festivalDay, 0, len(days))
	for _, d := range days {
		out = append(out, festivalDay{Festival: d[0], Day: d[1]})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTimetable handles GET /festival/{festival}/{day}
func (h *Handler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	festival, day := chi.URLParam(r, "festival"), chi.URLParam(r, "day")

	timetable, err := h.svc.Timetable(r.Context(), festival, day)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timetable)
}

// GetGrid handles GET /festival/{festival}/{day}/grid
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	festival, day := chi.URLParam(r, "festival"), chi.URLParam(r, "day")

	grid, err := h.svc.Grid(r.Context(), festival, day)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// GetArtistProfiles handles GET /info/artists/{festival}/{day}
func (h *Handler) GetArtistProfiles(w http.ResponseWriter, r *http.Request) {
	festival, day := chi.URLParam(r, "festival"), chi.URLParam(r, "day")

	profiles, err := h.svc.ArtistProfiles(r.Context(), festival, day)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artistProfilesResponse{Festival: festival, Day: day, Artists: profiles})
}
