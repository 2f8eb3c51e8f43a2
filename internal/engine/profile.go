package engine

import (
	"fmt"
	"math"

	"github.com/brandonp20/board-game-rec/internal/catalog"
	"github.com/brandonp20/board-game-rec/internal/domain"
)

// minWeightStdDev is the floor for the favorite weight spread. A single
// favorite (or several with identical weights) has zero spread, which
// would shrink the ±1σ band to nothing and drop every candidate into the
// worst similarity bucket. Clamping keeps a usable band.
const minWeightStdDev = 0.1

// Profile aggregates a favorites list into the two personalization
// signals: which categories the majority of favorites carry, and where
// their complexity weights cluster.
type Profile struct {
	favored      map[string]bool
	weightMean   float64
	weightStdDev float64
}

// BuildProfile computes a profile from 1..3 favorite ids. An empty id list
// returns a nil profile, which downstream scoring treats as neutral.
// Unknown ids are an error rather than being silently dropped: the caller
// asked to personalize against games the catalog does not have.
func BuildProfile(snap *catalog.Snapshot, favoriteIDs []int64) (*Profile, error) {
	if len(favoriteIDs) == 0 {
		return nil, nil
	}

	favorites := make([]domain.GameRecord, 0, len(favoriteIDs))
	for _, id := range favoriteIDs {
		g, ok := snap.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: favorite %d", domain.ErrGameNotFound, id)
		}
		favorites = append(favorites, g)
	}

	n := float64(len(favorites))
	favored := make(map[string]bool, len(domain.Categories))
	for _, cat := range domain.Categories {
		sum := 0
		for _, g := range favorites {
			sum += g.Flag(cat)
		}
		// Favored when the mean flag exceeds 0.5, i.e. a strict majority.
		favored[cat] = float64(sum)/n > 0.5
	}

	mean := 0.0
	for _, g := range favorites {
		mean += g.Weight
	}
	mean /= n

	// Sample standard deviation, matching STDDEV in the original store.
	stddev := 0.0
	if len(favorites) > 1 {
		ss := 0.0
		for _, g := range favorites {
			d := g.Weight - mean
			ss += d * d
		}
		stddev = math.Sqrt(ss / (n - 1))
	}
	if stddev < minWeightStdDev {
		stddev = minWeightStdDev
	}

	return &Profile{
		favored:      favored,
		weightMean:   mean,
		weightStdDev: stddev,
	}, nil
}

// Favored reports whether the majority of favorites carry a category flag.
func (p *Profile) Favored(category string) bool {
	return p.favored[category]
}

// WeightMean returns the mean complexity weight of the favorites.
func (p *Profile) WeightMean() float64 {
	return p.weightMean
}

// WeightStdDev returns the clamped sample stddev of the favorite weights.
func (p *Profile) WeightStdDev() float64 {
	return p.weightStdDev
}
