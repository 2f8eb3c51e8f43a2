package engine

import "github.com/brandonp20/board-game-rec/internal/domain"

// predicate is one hard constraint applied to a candidate game.
type predicate func(domain.GameRecord) bool

// buildPredicates compiles a constraint set into an explicit predicate
// list. Every numeric range is inclusive on both ends, and the category
// test is conjunctive: selecting more categories narrows the result.
func buildPredicates(c domain.Constraints) []predicate {
	preds := []predicate{
		func(g domain.GameRecord) bool {
			return g.Weight >= c.WeightMin && g.Weight <= c.WeightMax
		},
		func(g domain.GameRecord) bool {
			return g.AvgRating >= c.RatingMin && g.AvgRating <= c.RatingMax
		},
		func(g domain.GameRecord) bool {
			return g.PlaytimeMinutes >= c.PlaytimeMin && g.PlaytimeMinutes <= c.PlaytimeMax
		},
		func(g domain.GameRecord) bool {
			return g.YearPublished >= c.YearMin && g.YearPublished <= c.YearMax
		},
		func(g domain.GameRecord) bool {
			return g.MinAge >= c.MinAgeFloor
		},
	}

	preds = append(preds, playerPredicate(c))

	if len(c.Categories) > 0 {
		cats := c.Categories
		preds = append(preds, func(g domain.GameRecord) bool {
			for _, cat := range cats {
				if g.Flag(cat) != 1 {
					return false
				}
			}
			return true
		})
	}

	return preds
}

func playerPredicate(c domain.Constraints) predicate {
	if c.PlayerMatch == domain.MatchPlayable {
		// Range overlap with the playable min/max span.
		return func(g domain.GameRecord) bool {
			return g.MinPlayers <= c.PlayersMax && g.MaxPlayers >= c.PlayersMin
		}
	}
	// "best": every requested count must be in the game's best-with set,
	// so a game with an empty set never passes.
	return func(g domain.GameRecord) bool {
		if len(g.GoodPlayerCounts) == 0 {
			return false
		}
		for n := c.PlayersMin; n <= c.PlayersMax; n++ {
			if !g.GoodWith(n) {
				return false
			}
		}
		return true
	}
}

// candidate pairs a game that survived filtering with its stable catalog
// position, which the pager uses as the final tie-break.
type candidate struct {
	game  domain.GameRecord
	order int
	score Score
}

// filterCatalog applies the compiled predicates in sequence over the
// catalog, preserving catalog order. No scoring happens here.
func filterCatalog(games []domain.GameRecord, c domain.Constraints) []candidate {
	preds := buildPredicates(c)
	out := make([]candidate, 0, len(games)/4)

next:
	for i, g := range games {
		for _, pred := range preds {
			if !pred(g) {
				continue next
			}
		}
		out = append(out, candidate{game: g, order: i})
	}
	return out
}
