package engine

import "github.com/brandonp20/board-game-rec/internal/catalog"

// Overlap is the collaborative signal for one candidate game: how many
// favorite-raters also rated it, and their mean rating on it.
type Overlap struct {
	SharedRaters int
	MeanRating   float64
}

// FindOverlap locates users who rated any favorite, then groups their
// ratings on non-favorite games by game. Each user contributes one entry
// per other game regardless of how many favorites they rated. Games no
// such user rated are absent from the map; callers treat absence as the
// zero Overlap.
func FindOverlap(idx *catalog.CollectionIndex, favoriteIDs []int64) map[int64]Overlap {
	out := make(map[int64]Overlap)
	if idx == nil || len(favoriteIDs) == 0 {
		return out
	}

	favSet := make(map[int64]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favSet[id] = true
	}

	raters := make(map[string]bool)
	for _, id := range favoriteIDs {
		for _, e := range idx.RatingsByGame(id) {
			raters[e.Username] = true
		}
	}

	type acc struct {
		count int
		sum   float64
	}
	sums := make(map[int64]*acc)
	for username := range raters {
		for _, e := range idx.RatingsByUser(username) {
			if favSet[e.GameID] {
				continue
			}
			a := sums[e.GameID]
			if a == nil {
				a = &acc{}
				sums[e.GameID] = a
			}
			a.count++
			a.sum += e.Rating
		}
	}

	for gameID, a := range sums {
		out[gameID] = Overlap{
			SharedRaters: a.count,
			MeanRating:   a.sum / float64(a.count),
		}
	}
	return out
}
