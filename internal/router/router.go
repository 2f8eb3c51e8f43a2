package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/brandonp20/board-game-rec/internal/handler"
	"github.com/brandonp20/board-game-rec/internal/metrics"
)

func Setup(h *handler.Handler, log zerolog.Logger, catalogSize func() int) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestLogger(log))
	r.Use(metrics.Middleware)
	// The original API fronted a browser SPA; keep CORS open.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	// Routes
	r.Post("/api/games", h.FilterGames)
	r.Post("/api/games/personalized", h.PersonalizedGames)
	r.Get("/api/games/search", h.SearchGames)
	r.Get("/health", healthCheck(catalogSize))
	r.Handle("/metrics", metrics.Handler())

	return r
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

func healthCheck(catalogSize func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","catalog_size":%d}`, catalogSize())
	}
}
