package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/brandonp20/board-game-rec/internal/catalog"
	"github.com/brandonp20/board-game-rec/internal/domain"
)

func snapshotOf(games ...domain.GameRecord) *catalog.Snapshot {
	return catalog.NewSnapshot(games)
}

func TestBuildProfileEmptyFavorites(t *testing.T) {
	p, err := BuildProfile(snapshotOf(testGame(1)), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("empty favorites should produce a nil profile, got %+v", p)
	}
}

func TestBuildProfileUnknownFavorite(t *testing.T) {
	_, err := BuildProfile(snapshotOf(testGame(1)), []int64{99})
	if !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestFavoredRequiresStrictMajority(t *testing.T) {
	a := testGame(1)
	a.CategoryFlags = flags(domain.CatStrategy, domain.CatWar)
	b := testGame(2)
	b.CategoryFlags = flags(domain.CatStrategy)

	p, err := BuildProfile(snapshotOf(a, b), []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// strategy: mean 1.0 > 0.5. war: mean 0.5, not strictly greater.
	if !p.Favored(domain.CatStrategy) {
		t.Error("strategy should be favored at mean 1.0")
	}
	if p.Favored(domain.CatWar) {
		t.Error("war at mean exactly 0.5 should not be favored")
	}
	if p.Favored(domain.CatParty) {
		t.Error("party at mean 0 should not be favored")
	}
}

func TestWeightStatsUseSampleStdDev(t *testing.T) {
	a := testGame(1)
	a.Weight = 2.0
	b := testGame(2)
	b.Weight = 4.0

	p, err := BuildProfile(snapshotOf(a, b), []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.WeightMean() != 3.0 {
		t.Errorf("mean = %f, want 3.0", p.WeightMean())
	}
	// Sample stddev of {2,4}: sqrt(((1)^2+(1)^2)/1) = sqrt(2)
	want := math.Sqrt2
	if math.Abs(p.WeightStdDev()-want) > 1e-9 {
		t.Errorf("stddev = %f, want %f", p.WeightStdDev(), want)
	}
}

func TestSingleFavoriteStdDevIsClamped(t *testing.T) {
	g := testGame(1)
	g.Weight = 3.0

	p, err := BuildProfile(snapshotOf(g), []int64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.WeightStdDev() != minWeightStdDev {
		t.Errorf("single-favorite stddev = %f, want clamp %f", p.WeightStdDev(), minWeightStdDev)
	}

	// The clamp keeps a candidate at the exact favorite weight in the
	// most-similar bucket without a zero-width band.
	if got := weightSimilarity(3.05, p.WeightMean(), p.WeightStdDev()); got != 1.5 {
		t.Errorf("candidate inside clamped band: similarity = %f, want 1.5", got)
	}
	if got := weightSimilarity(5.0, p.WeightMean(), p.WeightStdDev()); got != 0.5 {
		t.Errorf("distant candidate: similarity = %f, want 0.5", got)
	}
}

func TestIdenticalWeightsClamped(t *testing.T) {
	a := testGame(1)
	a.Weight = 2.5
	b := testGame(2)
	b.Weight = 2.5

	p, err := BuildProfile(snapshotOf(a, b), []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.WeightStdDev() != minWeightStdDev {
		t.Errorf("zero-spread stddev = %f, want clamp %f", p.WeightStdDev(), minWeightStdDev)
	}
}
