package repository

import (
	"context"
	"fmt"

	"github.com/brandonp20/board-game-rec/internal/domain"
)

// LoadRatings reads every rated collection row. NULL ratings are excluded
// at the source: they can never contribute to collaborative overlap, and
// skipping them keeps the in-memory index dense.
func (r *Repository) LoadRatings(ctx context.Context) ([]domain.RatingEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT username, game_id, rating
		FROM collections
		WHERE rating IS NOT NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	var entries []domain.RatingEntry
	for rows.Next() {
		var e domain.RatingEntry
		if err := rows.Scan(&e.Username, &e.GameID, &e.Rating); err != nil {
			return nil, fmt.Errorf("scan collection row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return entries, nil
}
