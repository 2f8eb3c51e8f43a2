package domain

// RatingEntry is one user's rating of one game. The collection loader only
// materializes entries with a real rating; NULL-rated collection rows can
// never contribute to overlap and are dropped at the source.
type RatingEntry struct {
	Username string
	GameID   int64
	Rating   float64 // 0..10
}
