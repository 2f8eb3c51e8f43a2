package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/brandonp20/board-game-rec/internal/domain"
)

const (
	numUsers   = 40
	numRatings = 600
)

func Setup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Info().Msg("seed: truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE collections, board_games CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Info().Msg("seed: inserting board games")
	if err := seedGames(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed games: %w", err)
	}

	log.Info().Msg("seed: inserting collections")
	if err := seedCollections(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed collections: %w", err)
	}

	log.Info().Msg("seed: complete")
	return nil
}

// gameNames pairs a display name with the category flag it seeds under.
var gameNames = map[string][]string{
	domain.CatThematic: {
		"Shadow Harbor", "Tales of the Red Keep", "Nightfall Manor",
		"The Lighthouse Keepers", "Voyage of the Meridian",
	},
	domain.CatStrategy: {
		"Granary", "Trade Winds of Lucca", "Aqueduct", "The Spice Roads",
		"Foundries of Esk", "Terraced Fields", "Caravanserai",
	},
	domain.CatWar: {
		"Line of Advance", "The Winter Campaign", "Bastion Fallen",
		"March on the Delta",
	},
	domain.CatFamily: {
		"Orchard Lane", "Ticket Booth", "Hedgehog Hollow", "Paper Lanterns",
		"Market Day", "Carousel",
	},
	domain.CatCGS: {
		"Runebinder", "Arcway Duels", "Cinder Court",
	},
	domain.CatAbstract: {
		"Hex and Line", "Quarto Falls", "Meridian Stones", "Lattice",
	},
	domain.CatParty: {
		"Say It Louder", "Fib Factory", "Drawn Together", "One More Clue",
	},
	domain.CatChildrens: {
		"Bunny Hop", "The Sleepy Dragon", "Puddle Jumpers",
	},
}

func seedGames(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rows := []string{}
	args := []any{}

	id := int64(1000)
	for _, cat := range domain.Categories {
		for _, name := range gameNames[cat] {
			id++

			weight := math.Round((1.0+rng.Float64()*4.0)*100) / 100
			rating := math.Round((5.0+rng.Float64()*4.5)*100) / 100
			playtime := 15 * (1 + rng.Intn(12))
			minPlayers := 1 + rng.Intn(3)
			maxPlayers := minPlayers + 1 + rng.Intn(4)
			year := 1990 + rng.Intn(34)
			minAge := 6 + 2*rng.Intn(5)

			good := goodCounts(rng, minPlayers, maxPlayers)

			flags := make(map[string]int, len(domain.Categories))
			flags[cat] = 1
			// About a third of games carry a second category.
			if rng.Float64() < 0.35 {
				flags[domain.Categories[rng.Intn(len(domain.Categories))]] = 1
			}

			base := len(args)
			ph := make([]string, 0, 19)
			for p := 1; p <= 19; p++ {
				ph = append(ph, fmt.Sprintf("$%d", base+p))
			}
			rows = append(rows, "("+strings.Join(ph, ", ")+")")
			args = append(args, id, name, fmt.Sprintf("/images/%d.jpg", id),
				weight, rating, playtime, minPlayers, maxPlayers, good,
				year, minAge,
				flags[domain.CatThematic], flags[domain.CatStrategy],
				flags[domain.CatWar], flags[domain.CatFamily],
				flags[domain.CatCGS], flags[domain.CatAbstract],
				flags[domain.CatParty], flags[domain.CatChildrens])
		}
	}

	query := `INSERT INTO board_games (
		bgg_id, game, image_path, game_weight, avg_rating, mfg_playtime,
		min_players, max_players, good_players, year_published, mfg_age_rec,
		cat_thematic, cat_strategy, cat_war, cat_family,
		cat_cgs, cat_abstract, cat_party, cat_childrens
	) VALUES ` + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

// goodCounts picks a contiguous "best with" band inside the playable
// range, occasionally empty.
func goodCounts(rng *rand.Rand, minPlayers, maxPlayers int) []int32 {
	if rng.Float64() < 0.1 {
		return []int32{}
	}
	lo := minPlayers + rng.Intn(maxPlayers-minPlayers+1)
	hi := lo + rng.Intn(maxPlayers-lo+1)
	counts := make([]int32, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		counts = append(counts, int32(n))
	}
	return counts
}

func seedCollections(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	var gameIDs []int64
	idRows, err := pool.Query(ctx, `SELECT bgg_id FROM board_games ORDER BY bgg_id`)
	if err != nil {
		return fmt.Errorf("query game ids: %w", err)
	}
	defer idRows.Close()
	for idRows.Next() {
		var id int64
		if err := idRows.Scan(&id); err != nil {
			return fmt.Errorf("scan game id: %w", err)
		}
		gameIDs = append(gameIDs, id)
	}
	if err := idRows.Err(); err != nil {
		return fmt.Errorf("iterate game ids: %w", err)
	}

	seen := make(map[[2]int64]bool)
	rows := []string{}
	args := []any{}

	for range numRatings {
		userID := int64(math.Ceil(math.Pow(rng.Float64(), 1.5) * numUsers))
		userID = max(1, min(userID, numUsers))
		username := fmt.Sprintf("player%02d", userID)

		// Power-law game popularity, like real collections.
		gi := int(math.Ceil(math.Pow(rng.Float64(), 1.3) * float64(len(gameIDs))))
		gi = max(1, min(gi, len(gameIDs)))
		gameID := gameIDs[gi-1]

		key := [2]int64{userID, gameID}
		if seen[key] {
			continue
		}
		seen[key] = true

		// Roughly 15% of collection rows carry no rating.
		var rating any
		if rng.Float64() >= 0.15 {
			rating = math.Round((3.0+rng.Float64()*7.0)*10) / 10
		}

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, username, gameID, rating)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO collections (username, game_id, rating) VALUES " +
		strings.Join(rows, ", ")

	_, err = pool.Exec(ctx, query, args...)
	return err
}
