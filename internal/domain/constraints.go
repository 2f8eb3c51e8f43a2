package domain

import (
	"fmt"
	"sort"
)

// PlayerMatchType selects how the requested player range is matched
// against a game's player counts.
type PlayerMatchType string

const (
	// MatchBest requires every requested count to be in the game's
	// "best with" set.
	MatchBest PlayerMatchType = "best"
	// MatchPlayable only requires the requested range to overlap the
	// game's playable min/max range.
	MatchPlayable PlayerMatchType = "playable"
)

// Default bounds applied to omitted fields. These are the documented
// silent defaults; everything else that is malformed is rejected.
const (
	DefaultYearMin = 1900
	DefaultYearMax = 2024
	DefaultPage    = 1
	DefaultLimit   = 24
)

// Constraints is the hard-filter value object for one request. All numeric
// ranges are inclusive.
type Constraints struct {
	WeightMin   float64
	WeightMax   float64
	RatingMin   float64
	RatingMax   float64
	PlaytimeMin int
	PlaytimeMax int
	YearMin     int
	YearMax     int
	MinAgeFloor int
	PlayersMin  int
	PlayersMax  int
	PlayerMatch PlayerMatchType
	Categories  []string
}

// Normalize fills documented defaults in place: year bounds, player match
// type, and a sorted, deduplicated category list (sorting keeps cache
// fingerprints stable across equivalent requests).
func (c *Constraints) Normalize() {
	if c.YearMin == 0 {
		c.YearMin = DefaultYearMin
	}
	if c.YearMax == 0 {
		c.YearMax = DefaultYearMax
	}
	if c.PlayerMatch == "" {
		c.PlayerMatch = MatchBest
	}
	if len(c.Categories) > 1 {
		sort.Strings(c.Categories)
		dedup := c.Categories[:1]
		for _, cat := range c.Categories[1:] {
			if cat != dedup[len(dedup)-1] {
				dedup = append(dedup, cat)
			}
		}
		c.Categories = dedup
	}
}

// Validate rejects out-of-order ranges, bad player settings and unknown
// category keys. It does not apply defaults; call Normalize first.
func (c *Constraints) Validate() error {
	if c.WeightMin > c.WeightMax {
		return fmt.Errorf("%w: weight range %v..%v is inverted", ErrInvalidConstraint, c.WeightMin, c.WeightMax)
	}
	if c.RatingMin > c.RatingMax {
		return fmt.Errorf("%w: rating range %v..%v is inverted", ErrInvalidConstraint, c.RatingMin, c.RatingMax)
	}
	if c.PlaytimeMin > c.PlaytimeMax {
		return fmt.Errorf("%w: playtime range %d..%d is inverted", ErrInvalidConstraint, c.PlaytimeMin, c.PlaytimeMax)
	}
	if c.YearMin > c.YearMax {
		return fmt.Errorf("%w: year range %d..%d is inverted", ErrInvalidConstraint, c.YearMin, c.YearMax)
	}
	if c.MinAgeFloor < 0 {
		return fmt.Errorf("%w: min age %d is negative", ErrInvalidConstraint, c.MinAgeFloor)
	}
	if c.PlayersMin < 1 || c.PlayersMax < c.PlayersMin {
		return fmt.Errorf("%w: player range %d..%d", ErrInvalidConstraint, c.PlayersMin, c.PlayersMax)
	}
	if c.PlayerMatch != MatchBest && c.PlayerMatch != MatchPlayable {
		return fmt.Errorf("%w: player match type %q", ErrInvalidConstraint, c.PlayerMatch)
	}
	for _, cat := range c.Categories {
		if !IsCategory(cat) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidConstraint, cat)
		}
	}
	return nil
}
