package domain

// RecommendedGame is one row of a ranked result page. The score-breakdown
// pointers are set only in personalized mode; non-personalized responses
// omit them entirely.
type RecommendedGame struct {
	Game        string  `json:"game"`
	ImagePath   string  `json:"image_path"`
	GameWeight  float64 `json:"game_weight"`
	AvgRating   float64 `json:"avg_rating"`
	MfgPlaytime int     `json:"mfg_playtime"`
	GoodPlayers []int   `json:"good_players"`
	BggID       int64   `json:"bgg_id"`

	RatingOverlapCount *int     `json:"rating_overlap_count,omitempty"`
	SimilarUsersRating *float64 `json:"similar_users_rating,omitempty"`
	CategoryScore      *int     `json:"category_score,omitempty"`
	WeightSimilarity   *float64 `json:"weight_similarity,omitempty"`
	FinalScore         *float64 `json:"final_score,omitempty"`
}

// SearchResult is one row of the lookup-by-name endpoint.
type SearchResult struct {
	Game      string  `json:"game"`
	BggID     int64   `json:"bgg_id"`
	ImagePath string  `json:"image_path"`
	AvgRating float64 `json:"avg_rating"`
}
