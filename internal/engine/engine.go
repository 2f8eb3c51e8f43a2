// Package engine implements the filtering and scoring core: hard
// constraints compiled to predicates, favorite-profile and collaborative
// overlap signals, the ranking formula, and pagination. The engine is pure
// computation over immutable snapshots; it holds no per-request state and
// never touches a data store.
package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/brandonp20/board-game-rec/internal/catalog"
	"github.com/brandonp20/board-game-rec/internal/domain"
	"github.com/brandonp20/board-game-rec/internal/metrics"
)

const (
	maxFavorites = 3

	// Below this many candidates the scoring loop runs inline; the fan-out
	// overhead is not worth it.
	parallelThreshold = 512

	defaultWorkers = 8
)

// Request is one recommendation computation.
type Request struct {
	Constraints domain.Constraints
	FavoriteIDs []int64 // 0..3; empty means non-personalized
	Page        int
	Limit       int
}

// Personalized reports whether favorites drive the ranking.
func (r Request) Personalized() bool {
	return len(r.FavoriteIDs) > 0
}

// Engine computes ranked recommendation pages.
type Engine struct {
	workers int
}

// New builds an engine with a bounded scoring worker pool.
func New(workers int) *Engine {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Engine{workers: workers}
}

// Recommend runs the full pipeline: validate, filter, personalize, rank,
// paginate. It is all-or-nothing; no partial results come back on error.
func (e *Engine) Recommend(ctx context.Context, snap *catalog.Snapshot, idx *catalog.CollectionIndex, req Request) ([]domain.RecommendedGame, error) {
	if snap == nil || snap.Len() == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	// A favorite listed twice would count twice in the profile mean and
	// stddev; collapse repeats before anything consumes the list.
	req.FavoriteIDs = dedupIDs(req.FavoriteIDs)
	if len(req.FavoriteIDs) > maxFavorites {
		return nil, fmt.Errorf("%w: %d favorites, at most %d", domain.ErrInvalidConstraint, len(req.FavoriteIDs), maxFavorites)
	}

	profile, err := BuildProfile(snap, req.FavoriteIDs)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cands := filterCatalog(snap.Games(), req.Constraints)
	metrics.ObserveStage("filter", time.Since(start))

	// Filtering a large catalog may already have eaten into the request
	// deadline; bail before spending CPU on scoring.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.Personalized() {
		start = time.Now()
		overlap := FindOverlap(idx, req.FavoriteIDs)
		e.scoreAll(cands, profile, overlap)
		metrics.ObserveStage("score", time.Since(start))
		for _, c := range cands {
			if math.IsNaN(c.score.Final) || math.IsInf(c.score.Final, 0) {
				return nil, fmt.Errorf("%w: game %d scored %v", domain.ErrComputation, c.game.BggID, c.score.Final)
			}
		}
	}

	start = time.Now()
	rankCandidates(cands, req.Personalized())
	page := pageOf(cands, req.Page, req.Limit)
	metrics.ObserveStage("rank", time.Since(start))

	out := make([]domain.RecommendedGame, 0, len(page))
	for _, c := range page {
		out = append(out, toRecommended(c, req.Personalized()))
	}
	return out, nil
}

// scoreAll scores every candidate, fanning out across the worker pool for
// large candidate sets. Scoring is pure, so workers only ever write their
// own index.
func (e *Engine) scoreAll(cands []candidate, profile *Profile, overlap map[int64]Overlap) {
	if len(cands) < parallelThreshold || e.workers < 2 {
		for i := range cands {
			cands[i].score = scoreGame(cands[i].game, profile, overlap[cands[i].game.BggID])
		}
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)
	chunk := (len(cands) + e.workers - 1) / e.workers

	for start := 0; start < len(cands); start += chunk {
		end := start + chunk
		if end > len(cands) {
			end = len(cands)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			for i := lo; i < hi; i++ {
				cands[i].score = scoreGame(cands[i].game, profile, overlap[cands[i].game.BggID])
			}
		}(start, end)
	}
	wg.Wait()
}

// dedupIDs drops repeated ids, keeping first-occurrence order.
func dedupIDs(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toRecommended(c candidate, personalized bool) domain.RecommendedGame {
	g := c.game
	if g.GoodPlayerCounts == nil {
		g.GoodPlayerCounts = []int{}
	}
	row := domain.RecommendedGame{
		Game:        g.Name,
		ImagePath:   g.ImagePath,
		GameWeight:  g.Weight,
		AvgRating:   g.AvgRating,
		MfgPlaytime: g.PlaytimeMinutes,
		GoodPlayers: g.GoodPlayerCounts,
		BggID:       g.BggID,
	}
	if personalized {
		s := c.score
		row.RatingOverlapCount = &s.SharedRaters
		row.SimilarUsersRating = &s.SimilarRating
		row.CategoryScore = &s.CategoryScore
		row.WeightSimilarity = &s.WeightSimilarity
		row.FinalScore = &s.Final
	}
	return row
}
