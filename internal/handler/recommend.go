package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/brandonp20/board-game-rec/internal/domain"
	"github.com/brandonp20/board-game-rec/internal/engine"
)

// SelectedGame is one favorite reference in a personalized request.
type SelectedGame struct {
	BggID int64 `json:"bgg_id" validate:"required,gt=0"`
}

// GameQueryRequest is the body of both recommendation endpoints. Field
// names mirror the catalog columns the original API exposed. Year, age,
// match type, page and limit have documented defaults; everything else
// malformed is rejected.
type GameQueryRequest struct {
	SelectedGames []SelectedGame `json:"selectedGames" validate:"omitempty,max=3,dive"`
	WeightMin     float64        `json:"weight_min" validate:"gte=0,lte=5"`
	WeightMax     float64        `json:"weight_max" validate:"gte=0,lte=5"`
	RatingMin     float64        `json:"rating_min" validate:"gte=0,lte=10"`
	RatingMax     float64        `json:"rating_max" validate:"gte=0,lte=10"`
	PlaytimeMin   int            `json:"playtime_min" validate:"gte=0"`
	PlaytimeMax   int            `json:"playtime_max" validate:"gte=0"`
	PlayersMin    int            `json:"players_min" validate:"gte=1"`
	PlayersMax    int            `json:"players_max" validate:"gte=1"`
	YearMin       int            `json:"year_min" validate:"gte=0"`
	YearMax       int            `json:"year_max" validate:"gte=0"`
	MinAge        int            `json:"min_age" validate:"gte=0"`
	PlayerMatch   string         `json:"player_match_type" validate:"omitempty,oneof=best playable"`
	Categories    []string       `json:"categories"`
	Page          int            `json:"page" validate:"gte=0"`
	Limit         int            `json:"limit" validate:"gte=0,lte=100"`
}

func (q *GameQueryRequest) toEngineRequest(personalized bool) engine.Request {
	req := engine.Request{
		Constraints: domain.Constraints{
			WeightMin:   q.WeightMin,
			WeightMax:   q.WeightMax,
			RatingMin:   q.RatingMin,
			RatingMax:   q.RatingMax,
			PlaytimeMin: q.PlaytimeMin,
			PlaytimeMax: q.PlaytimeMax,
			YearMin:     q.YearMin,
			YearMax:     q.YearMax,
			MinAgeFloor: q.MinAge,
			PlayersMin:  q.PlayersMin,
			PlayersMax:  q.PlayersMax,
			PlayerMatch: domain.PlayerMatchType(q.PlayerMatch),
			Categories:  q.Categories,
		},
		Page:  q.Page,
		Limit: q.Limit,
	}
	if personalized {
		for _, g := range q.SelectedGames {
			req.FavoriteIDs = append(req.FavoriteIDs, g.BggID)
		}
	}
	return req
}

// POST /api/games
func (h *Handler) FilterGames(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, false)
}

// POST /api/games/personalized
func (h *Handler) PersonalizedGames(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, true)
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, personalized bool) {
	var q GameQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}

	page, err := h.service.Recommend(r.Context(), q.toEngineRequest(personalized))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// An empty page still serializes as [], matching the original API.
	if page == nil {
		page = []domain.RecommendedGame{}
	}
	writeJSON(w, http.StatusOK, page)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidConstraint):
		writeError(w, http.StatusBadRequest, "invalid_constraint", err.Error())
	case errors.Is(err, domain.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game_not_found", err.Error())
	case errors.Is(err, domain.ErrEmptyCatalog):
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable",
			"The game catalog is empty or unavailable")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request_timeout",
			"Request timed out, please try again")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
