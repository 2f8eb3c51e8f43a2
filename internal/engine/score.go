package engine

import (
	"math"

	"github.com/brandonp20/board-game-rec/internal/domain"
)

// Score is the full per-candidate breakdown. Final is the ranking key in
// personalized mode; the components are exposed for response debugging.
type Score struct {
	CategoryScore    int
	WeightSimilarity float64
	SharedRaters     int
	SimilarRating    float64
	Final            float64
}

// scoreGame applies the ranking formula:
//
//	final = (categoryScore + sharedRaters*meanRating/10) * weightSimilarity
//
// The overlap and category components are summed before the weight
// similarity multiplier is applied; scaling them independently changes the
// ranking and is wrong. A nil profile degrades to category 0 and a neutral
// 1.0 multiplier.
func scoreGame(g domain.GameRecord, p *Profile, ov Overlap) Score {
	s := Score{
		WeightSimilarity: 1.0,
		SharedRaters:     ov.SharedRaters,
		SimilarRating:    ov.MeanRating,
	}

	if p != nil {
		matches := 0
		for _, cat := range domain.Categories {
			if g.Flag(cat) == 1 && p.Favored(cat) {
				matches++
			}
		}
		s.CategoryScore = 2 * matches
		s.WeightSimilarity = weightSimilarity(g.Weight, p.WeightMean(), p.WeightStdDev())
	}

	overlapScore := float64(ov.SharedRaters) * ov.MeanRating / 10.0
	s.Final = (float64(s.CategoryScore) + overlapScore) * s.WeightSimilarity
	return s
}

// weightSimilarity buckets a candidate's complexity by its distance from
// the favorite mean in stddev units: within 1σ is most similar.
func weightSimilarity(weight, mean, stddev float64) float64 {
	d := math.Abs(weight - mean)
	switch {
	case d <= stddev:
		return 1.5
	case d <= 2*stddev:
		return 1.0
	default:
		return 0.5
	}
}
