package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

type recommendResponse struct {
	Festival string                    `json:"festival"`
	Day      string                    `json:"day"`
	Playlist string                    `json:"playlist"`
	Program  domain.RecommendedProgram `json:"program"`
}

type scoresResponse struct {
	Festival string               `json:"festival"`
	Day      string               `json:"day"`
	Playlist string               `json:"playlist"`
	Scores   []domain.ArtistScore `json:"scores"`
}

// Recommend handles GET /recommend/{festival}/{day}/{playlist}
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	festival, day, playlist := chi.URLParam(r, "festival"), chi.URLParam(r, "day"), chi.URLParam(r, "playlist")

	program, err := h.svc.RecommendForPlaylist(r.Context(), festival, day, playlist)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{Festival: festival, Day: day, Playlist: playlist, Program: program})
}

// GetArtistScores handles GET /recommend/{festival}/{day}/{playlist}/scores
func (h *Handler) GetArtistScores(w http.ResponseWriter, r *http.Request) {
	festival, day, playlist := chi.URLParam(r, "festival"), chi.URLParam(r, "day"), chi.URLParam(r, "playlist")

	scores, err := h.svc.ArtistScores(r.Context(), festival, day, playlist)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoresResponse{Festival: festival, Day: day, Playlist: playlist, Scores: scores})
}
