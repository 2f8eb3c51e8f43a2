package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/brandonp20/board-game-rec/internal/cache"
	"github.com/brandonp20/board-game-rec/internal/catalog"
	"github.com/brandonp20/board-game-rec/internal/domain"
	"github.com/brandonp20/board-game-rec/internal/engine"
)

const searchLimit = 10

// Service ties the immutable snapshots, the engine and the cache together.
// The cache is optional; a nil cache means every request is computed.
type Service struct {
	snap   *catalog.Snapshot
	idx    *catalog.CollectionIndex
	engine *engine.Engine
	cache  *cache.Cache
	log    zerolog.Logger
}

func New(snap *catalog.Snapshot, idx *catalog.CollectionIndex, eng *engine.Engine, c *cache.Cache, log zerolog.Logger) *Service {
	return &Service{
		snap:   snap,
		idx:    idx,
		engine: eng,
		cache:  c,
		log:    log,
	}
}

// Recommend returns one ranked result page for the request. Cache-aside:
// cache errors are logged and the page is recomputed; they never fail the
// request.
func (s *Service) Recommend(ctx context.Context, req engine.Request) ([]domain.RecommendedGame, error) {
	req.Constraints.Normalize()

	var key string
	if s.cache != nil {
		key = cache.Fingerprint(req)
		page, found, err := s.cache.GetPage(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Msg("page cache get failed")
		}
		if found {
			return page, nil
		}
	}

	page, err := s.engine.Recommend(ctx, s.snap, s.idx, req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPage(ctx, key, page); err != nil {
			s.log.Warn().Err(err).Msg("page cache set failed")
		}
	}
	return page, nil
}

// Search is the lookup-by-name endpoint: case-insensitive substring match
// over the snapshot, avg rating descending, at most 10 rows.
func (s *Service) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if s.snap == nil || s.snap.Len() == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	if s.cache != nil {
		results, found, err := s.cache.GetSearch(ctx, query)
		if err != nil {
			s.log.Warn().Err(err).Msg("search cache get failed")
		}
		if found {
			return results, nil
		}
	}

	needle := strings.ToLower(query)
	var matches []domain.SearchResult
	for _, g := range s.snap.Games() {
		if strings.Contains(strings.ToLower(g.Name), needle) {
			matches = append(matches, domain.SearchResult{
				Game:      g.Name,
				BggID:     g.BggID,
				ImagePath: g.ImagePath,
				AvgRating: g.AvgRating,
			})
		}
	}

	// Stable sort keeps catalog order among equal ratings.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].AvgRating > matches[j].AvgRating
	})
	if len(matches) > searchLimit {
		matches = matches[:searchLimit]
	}

	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, query, matches); err != nil {
			s.log.Warn().Err(err).Msg("search cache set failed")
		}
	}
	return matches, nil
}

// CatalogSize is exposed for the health endpoint.
func (s *Service) CatalogSize() int {
	if s.snap == nil {
		return 0
	}
	return s.snap.Len()
}
