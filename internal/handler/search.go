package handler

import (
	"net/http"

	"github.com/brandonp20/board-game-rec/internal/domain"
)

// GET /api/games/search?query=...
func (h *Handler) SearchGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Missing query parameter")
		return
	}

	results, err := h.service.Search(r.Context(), query)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}
