package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/brandonp20/board-game-rec/internal/catalog"
	"github.com/brandonp20/board-game-rec/internal/domain"
	"github.com/brandonp20/board-game-rec/internal/engine"
	"github.com/brandonp20/board-game-rec/internal/service"
)

func catFlags(set ...string) map[string]int {
	m := make(map[string]int, len(domain.Categories))
	for _, c := range domain.Categories {
		m[c] = 0
	}
	for _, c := range set {
		m[c] = 1
	}
	return m
}

func fixtureHandler() *Handler {
	games := []domain.GameRecord{
		{BggID: 1, Name: "Granary", AvgRating: 7.8, Weight: 3.0, PlaytimeMinutes: 90,
			MinPlayers: 2, MaxPlayers: 4, GoodPlayerCounts: []int{2, 3, 4}, YearPublished: 2016,
			MinAge: 12, CategoryFlags: catFlags(domain.CatStrategy)},
		{BggID: 2, Name: "Aqueduct", AvgRating: 8.2, Weight: 3.4, PlaytimeMinutes: 100,
			MinPlayers: 2, MaxPlayers: 4, GoodPlayerCounts: []int{2, 3, 4}, YearPublished: 2019,
			MinAge: 12, CategoryFlags: catFlags(domain.CatStrategy)},
	}
	snap := catalog.NewSnapshot(games)
	idx := catalog.NewCollectionIndex([]domain.RatingEntry{
		{Username: "alice", GameID: 1, Rating: 9},
		{Username: "alice", GameID: 2, Rating: 8},
	})
	svc := service.New(snap, idx, engine.New(2), nil, zerolog.Nop())
	return NewHandler(svc)
}

const validBody = `{
	"weight_min": 1, "weight_max": 5,
	"rating_min": 0, "rating_max": 10,
	"playtime_min": 1, "playtime_max": 600,
	"players_min": 2, "players_max": 4,
	"player_match_type": "playable"
}`

func TestFilterGamesOK(t *testing.T) {
	h := fixtureHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	h.FilterGames(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var page []domain.RecommendedGame
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 games, got %d", len(page))
	}
	if page[0].BggID != 2 {
		t.Errorf("highest rated first, got %d", page[0].BggID)
	}
	if page[0].FinalScore != nil {
		t.Error("non-personalized response must omit score fields")
	}
}

func TestFilterGamesInvertedRange(t *testing.T) {
	h := fixtureHandler()
	body := strings.Replace(validBody, `"weight_min": 1`, `"weight_min": 4.5`, 1)
	body = strings.Replace(body, `"weight_max": 5`, `"weight_max": 2`, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.FilterGames(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if resp.Error != "invalid_constraint" {
		t.Errorf("error code = %q, want invalid_constraint", resp.Error)
	}
}

func TestFilterGamesMalformedJSON(t *testing.T) {
	h := fixtureHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.FilterGames(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFilterGamesFieldValidation(t *testing.T) {
	h := fixtureHandler()
	body := strings.Replace(validBody, `"weight_max": 5`, `"weight_max": 7`, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.FilterGames(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("weight above 5: status = %d, want 400", rec.Code)
	}
}

func TestFilterGamesLimitCap(t *testing.T) {
	h := fixtureHandler()

	body := strings.Replace(validBody, "{", `{"limit": 101,`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.FilterGames(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("limit 101: status = %d, want 400", rec.Code)
	}

	body = strings.Replace(validBody, "{", `{"limit": 100,`, 1)
	req = httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.FilterGames(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("limit 100: status = %d, want 200", rec.Code)
	}
}

func TestPersonalizedGamesCarriesBreakdown(t *testing.T) {
	h := fixtureHandler()
	body := strings.Replace(validBody, "{", `{"selectedGames": [{"bgg_id": 1}],`, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/games/personalized", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.PersonalizedGames(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var page []domain.RecommendedGame
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(page) == 0 {
		t.Fatal("expected results")
	}
	if page[0].FinalScore == nil || page[0].WeightSimilarity == nil {
		t.Error("personalized response must include the score breakdown")
	}
}

func TestPersonalizedGamesUnknownFavorite(t *testing.T) {
	h := fixtureHandler()
	body := strings.Replace(validBody, "{", `{"selectedGames": [{"bgg_id": 404}],`, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/games/personalized", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.PersonalizedGames(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPersonalizedGamesTooManyFavorites(t *testing.T) {
	h := fixtureHandler()
	body := strings.Replace(validBody, "{",
		`{"selectedGames": [{"bgg_id":1},{"bgg_id":2},{"bgg_id":1},{"bgg_id":2}],`, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/games/personalized", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.PersonalizedGames(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchGames(t *testing.T) {
	h := fixtureHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/games/search?query=gran", nil)
	rec := httptest.NewRecorder()
	h.SearchGames(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var results []domain.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(results) != 1 || results[0].Game != "Granary" {
		t.Errorf("results = %+v", results)
	}
}

func TestSearchGamesMissingQuery(t *testing.T) {
	h := fixtureHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/games/search", nil)
	rec := httptest.NewRecorder()
	h.SearchGames(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
