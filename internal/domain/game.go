package domain

// The 8 category flags carried by every catalog record. These are the keys
// accepted in filter requests and used by favorite-profile scoring.
const (
	CatThematic  = "cat_thematic"
	CatStrategy  = "cat_strategy"
	CatWar       = "cat_war"
	CatFamily    = "cat_family"
	CatCGS       = "cat_cgs"
	CatAbstract  = "cat_abstract"
	CatParty     = "cat_party"
	CatChildrens = "cat_childrens"
)

// Categories lists every category key in a fixed order.
var Categories = []string{
	CatThematic,
	CatStrategy,
	CatWar,
	CatFamily,
	CatCGS,
	CatAbstract,
	CatParty,
	CatChildrens,
}

// IsCategory reports whether key names one of the 8 category flags.
func IsCategory(key string) bool {
	for _, c := range Categories {
		if c == key {
			return true
		}
	}
	return false
}

// GameRecord is one board game in the catalog snapshot. Records are
// immutable once loaded; the engine only ever reads them.
type GameRecord struct {
	BggID            int64
	Name             string
	ImagePath        string
	Weight           float64 // complexity, 1..5
	AvgRating        float64 // community rating, 0..10
	PlaytimeMinutes  int
	MinPlayers       int
	MaxPlayers       int
	GoodPlayerCounts []int // "best with" counts, subset of [MinPlayers,MaxPlayers]
	YearPublished    int
	MinAge           int
	CategoryFlags    map[string]int // exactly the 8 keys above, values 0/1
}

// Flag returns the 0/1 value of a category flag.
func (g GameRecord) Flag(category string) int {
	return g.CategoryFlags[category]
}

// GoodWith reports whether n is one of the game's "best with" player counts.
func (g GameRecord) GoodWith(n int) bool {
	for _, c := range g.GoodPlayerCounts {
		if c == n {
			return true
		}
	}
	return false
}
