package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/brandonp20/board-game-rec/internal/cache"
	"github.com/brandonp20/board-game-rec/internal/catalog"
	"github.com/brandonp20/board-game-rec/internal/config"
	"github.com/brandonp20/board-game-rec/internal/engine"
	"github.com/brandonp20/board-game-rec/internal/handler"
	"github.com/brandonp20/board-game-rec/internal/repository"
	"github.com/brandonp20/board-game-rec/internal/router"
	"github.com/brandonp20/board-game-rec/internal/service"
	"github.com/brandonp20/board-game-rec/seeds"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := runMigration(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate down")
		}
		log.Info().Msg("migrations dropped")
		return
	}

	if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate up")
	}
	log.Info().Msg("migrations applied")

	// ------------ Seed When Empty ---------------
	repo := repository.New(pool)
	if err := checkSeed(ctx, repo, pool, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed")
	}

	// ------------ Load Snapshots ---------------
	games, err := repo.LoadGames(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}
	ratings, err := repo.LoadRatings(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load collections")
	}
	snap := catalog.NewSnapshot(games)
	idx := catalog.NewCollectionIndex(ratings)
	log.Info().Int("games", snap.Len()).Int("rated_games", idx.Len()).Msg("snapshots loaded")

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	pageCache := cache.NewCache(redisClient, cfg.CacheTTL)
	if err := pageCache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, caching degraded")
	}

	// ---------------- Server --------------------
	svc := service.New(snap, idx, engine.New(cfg.ScoreWorkers), pageCache, log)
	h := handler.NewHandler(svc)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router.Setup(h, log, svc.CatalogSize),
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-shutdownCtx.Done()
	log.Info().Msg("shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(timeoutCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration %s: %w", path, err)
	}
	return nil
}

func checkSeed(ctx context.Context, repo *repository.Repository, pool *pgxpool.Pool, log zerolog.Logger) error {
	count, err := repo.CountGames(ctx)
	if err != nil {
		return fmt.Errorf("check games count: %w", err)
	}
	if count > 0 {
		log.Info().Int("games", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool, log)
}
