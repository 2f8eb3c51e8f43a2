package engine

import (
	"sort"

	"github.com/brandonp20/board-game-rec/internal/domain"
)

// rankCandidates orders candidates for presentation. Personalized results
// sort by final score descending; both modes fall back to avg rating
// descending and then stable catalog order, so repeated identical requests
// paginate identically.
func rankCandidates(cands []candidate, personalized bool) {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if personalized && a.score.Final != b.score.Final {
			return a.score.Final > b.score.Final
		}
		if a.game.AvgRating != b.game.AvgRating {
			return a.game.AvgRating > b.game.AvgRating
		}
		return a.order < b.order
	})
}

// pageOf slices one page out of the ranked list. Defaults apply for
// non-positive page/limit. A returned page of exactly limit items is the
// caller's "more pages may exist" signal; this is a size heuristic, not a
// true total count, and can be wrong only at exact boundaries.
func pageOf(cands []candidate, page, limit int) []candidate {
	if page < 1 {
		page = domain.DefaultPage
	}
	if limit < 1 {
		limit = domain.DefaultLimit
	}
	offset := (page - 1) * limit
	if offset >= len(cands) {
		return nil
	}
	end := offset + limit
	if end > len(cands) {
		end = len(cands)
	}
	return cands[offset:end]
}
