package repository

import (
	"context"
	"fmt"

	"github.com/brandonp20/board-game-rec/internal/domain"
)

// LoadGames reads the full catalog in bgg_id order, which becomes the
// stable catalog order used as the pagination tie-break.
func (r *Repository) LoadGames(ctx context.Context) ([]domain.GameRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT bgg_id, game, COALESCE(image_path, ''),
			game_weight, avg_rating, mfg_playtime,
			min_players, max_players, COALESCE(good_players, '{}'),
			year_published, mfg_age_rec,
			cat_thematic, cat_strategy, cat_war, cat_family,
			cat_cgs, cat_abstract, cat_party, cat_childrens
		FROM board_games
		ORDER BY bgg_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query board games: %w", err)
	}
	defer rows.Close()

	var games []domain.GameRecord
	for rows.Next() {
		var (
			g     domain.GameRecord
			good  []int32
			flags [8]int
		)
		err := rows.Scan(&g.BggID, &g.Name, &g.ImagePath,
			&g.Weight, &g.AvgRating, &g.PlaytimeMinutes,
			&g.MinPlayers, &g.MaxPlayers, &good,
			&g.YearPublished, &g.MinAge,
			&flags[0], &flags[1], &flags[2], &flags[3],
			&flags[4], &flags[5], &flags[6], &flags[7])
		if err != nil {
			return nil, fmt.Errorf("scan board game: %w", err)
		}

		g.GoodPlayerCounts = make([]int, len(good))
		for i, n := range good {
			g.GoodPlayerCounts[i] = int(n)
		}
		g.CategoryFlags = make(map[string]int, len(domain.Categories))
		for i, cat := range domain.Categories {
			g.CategoryFlags[cat] = flags[i]
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate board games: %w", err)
	}
	return games, nil
}

// CountGames is used at startup to decide whether seeding is needed.
func (r *Repository) CountGames(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM board_games`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count board games: %w", err)
	}
	return count, nil
}
