package engine

import (
	"testing"

	"github.com/brandonp20/board-game-rec/internal/domain"
)

func flags(set ...string) map[string]int {
	m := make(map[string]int, len(domain.Categories))
	for _, c := range domain.Categories {
		m[c] = 0
	}
	for _, c := range set {
		m[c] = 1
	}
	return m
}

func testGame(id int64) domain.GameRecord {
	return domain.GameRecord{
		BggID:            id,
		Name:             "game",
		Weight:           2.5,
		AvgRating:        7.0,
		PlaytimeMinutes:  60,
		MinPlayers:       2,
		MaxPlayers:       4,
		GoodPlayerCounts: []int{2, 3, 4},
		YearPublished:    2015,
		MinAge:           10,
		CategoryFlags:    flags(domain.CatStrategy),
	}
}

func openConstraints() domain.Constraints {
	return domain.Constraints{
		WeightMin:   1,
		WeightMax:   5,
		RatingMin:   0,
		RatingMax:   10,
		PlaytimeMin: 1,
		PlaytimeMax: 600,
		YearMin:     1900,
		YearMax:     2024,
		PlayersMin:  2,
		PlayersMax:  4,
		PlayerMatch: domain.MatchPlayable,
	}
}

func filterIDs(games []domain.GameRecord, c domain.Constraints) []int64 {
	var ids []int64
	for _, cand := range filterCatalog(games, c) {
		ids = append(ids, cand.game.BggID)
	}
	return ids
}

func TestNumericRangesAreInclusive(t *testing.T) {
	g := testGame(1)
	g.Weight = 3.0

	c := openConstraints()
	c.WeightMin = 3.0
	c.WeightMax = 3.0

	if got := filterIDs([]domain.GameRecord{g}, c); len(got) != 1 {
		t.Errorf("weight exactly on both bounds should pass, got %v", got)
	}

	c.WeightMax = 2.99
	if got := filterIDs([]domain.GameRecord{g}, c); len(got) != 0 {
		t.Errorf("weight above max should fail, got %v", got)
	}
}

func TestMinAgeIsAFloor(t *testing.T) {
	young := testGame(1)
	young.MinAge = 8
	old := testGame(2)
	old.MinAge = 14

	c := openConstraints()
	c.MinAgeFloor = 12

	got := filterIDs([]domain.GameRecord{young, old}, c)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expected only the 14+ game, got %v", got)
	}
}

func TestPlayerMatchBestRequiresSubset(t *testing.T) {
	partial := testGame(1)
	partial.GoodPlayerCounts = []int{2, 3} // 4 missing
	full := testGame(2)
	full.GoodPlayerCounts = []int{2, 3, 4, 5}
	empty := testGame(3)
	empty.GoodPlayerCounts = nil

	c := openConstraints()
	c.PlayerMatch = domain.MatchBest
	c.PlayersMin = 2
	c.PlayersMax = 4

	got := filterIDs([]domain.GameRecord{partial, full, empty}, c)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("best-with [2,4]: expected only game 2, got %v", got)
	}
}

func TestPlayerMatchPlayableUsesRangeOverlap(t *testing.T) {
	overlapping := testGame(1)
	overlapping.MinPlayers = 3
	overlapping.MaxPlayers = 8
	disjoint := testGame(2)
	disjoint.MinPlayers = 5
	disjoint.MaxPlayers = 6

	c := openConstraints()
	c.PlayerMatch = domain.MatchPlayable
	c.PlayersMin = 2
	c.PlayersMax = 4

	got := filterIDs([]domain.GameRecord{overlapping, disjoint}, c)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("playable [2,4]: expected only game 1, got %v", got)
	}
}

func TestCategoryFilterIsConjunctive(t *testing.T) {
	both := testGame(1)
	both.CategoryFlags = flags(domain.CatStrategy, domain.CatWar)
	onlyStrategy := testGame(2)
	onlyStrategy.CategoryFlags = flags(domain.CatStrategy)
	onlyWar := testGame(3)
	onlyWar.CategoryFlags = flags(domain.CatWar)

	c := openConstraints()
	c.Categories = []string{domain.CatStrategy, domain.CatWar}

	got := filterIDs([]domain.GameRecord{both, onlyStrategy, onlyWar}, c)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("selecting two categories must require both flags, got %v", got)
	}
}

func TestEmptyCategorySetMatchesEverything(t *testing.T) {
	games := []domain.GameRecord{testGame(1), testGame(2)}

	c := openConstraints()
	c.Categories = nil

	if got := filterIDs(games, c); len(got) != 2 {
		t.Errorf("no category constraint should pass all games, got %v", got)
	}
}

func TestFilterPreservesCatalogOrder(t *testing.T) {
	games := []domain.GameRecord{testGame(5), testGame(3), testGame(9)}

	cands := filterCatalog(games, openConstraints())
	for i, c := range cands {
		if c.order != i {
			t.Errorf("candidate %d: order = %d, want %d", c.game.BggID, c.order, i)
		}
	}
}
