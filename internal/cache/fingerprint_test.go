package cache

import (
	"strings"
	"testing"

	"github.com/brandonp20/board-game-rec/internal/domain"
	"github.com/brandonp20/board-game-rec/internal/engine"
)

func baseRequest() engine.Request {
	return engine.Request{
		Constraints: domain.Constraints{
			WeightMin: 1, WeightMax: 5,
			RatingMin: 0, RatingMax: 10,
			PlaytimeMin: 30, PlaytimeMax: 120,
			YearMin: 1900, YearMax: 2024,
			PlayersMin: 2, PlayersMax: 4,
			PlayerMatch: domain.MatchBest,
		},
		Page:  1,
		Limit: 24,
	}
}

func TestFingerprintIsStable(t *testing.T) {
	a := Fingerprint(baseRequest())
	b := Fingerprint(baseRequest())
	if a != b {
		t.Errorf("identical requests fingerprint differently: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "rec:page:") {
		t.Errorf("fingerprint %q missing key prefix", a)
	}
}

func TestFingerprintDistinguishesRequests(t *testing.T) {
	a := baseRequest()

	b := baseRequest()
	b.Page = 2

	c := baseRequest()
	c.FavoriteIDs = []int64{100}

	d := baseRequest()
	d.Constraints.Categories = []string{domain.CatWar}

	keys := map[string]string{
		"page":       Fingerprint(b),
		"favorites":  Fingerprint(c),
		"categories": Fingerprint(d),
	}
	base := Fingerprint(a)
	for name, key := range keys {
		if key == base {
			t.Errorf("changing %s did not change the fingerprint", name)
		}
	}
}
