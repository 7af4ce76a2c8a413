package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/SYNCODE-SLIIT/sports-analysis/internal/aggregate"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/cache"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/config"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/estimator"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/handlers"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/allsports"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/apifootball"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/sportsdb"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/router"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/store"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/summary"
)

func main() {
	fmt.Println("=== Sports Data Service ===")

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	// Provider adapters. All three are always constructed: the router's
	// policy table decides who answers what, and a keyless provider
	// simply fails upstream and triggers fallback.
	sportsDB := sportsdb.New("", cfg.Providers.SportsDBKey)
	allSports := allsports.New("", cfg.Providers.AllSportsKey)
	apiFootball := apifootball.New("", cfg.Providers.APIFootballKey)

	intentRouter := router.New(sportsDB, allSports, apiFootball)
	aggregator := aggregate.New(allSports, sportsDB, apiFootball)

	// Redis snapshot cache, optional.
	var snapshots *cache.RedisWriter
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			fmt.Printf("❌ Failed to parse Redis URL: %v\n", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
			os.Exit(1)
		}
		snapshots = cache.NewRedisWriter(redisClient)
		fmt.Println("✓ Connected to Redis")
	} else {
		fmt.Println("- Redis not configured, snapshot caching disabled")
	}

	// Results store, optional. Feeds the estimator's form path and
	// records finished fixtures seen by the games endpoint.
	var forms estimator.FormSource
	var recorder handlers.ResultsRecorder
	if cfg.DatabaseURL != "" {
		results, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("❌ Failed to connect to Postgres: %v\n", err)
			os.Exit(1)
		}
		defer results.Close()

		if err := results.EnsureSchema(context.Background()); err != nil {
			fmt.Printf("❌ Failed to prepare results schema: %v\n", err)
			os.Exit(1)
		}
		forms = results
		recorder = results
		fmt.Println("✓ Connected to Postgres")
	} else {
		fmt.Println("- Postgres not configured, stored form disabled")
	}

	estimatorSvc := estimator.NewService(intentRouter, forms)

	// Summary generation, optional; briefs degrade to the template.
	var summarizer summary.Summarizer
	if cfg.Summary.URL != "" {
		summarizer = summary.NewClient(cfg.Summary.URL, cfg.Summary.APIKey, nil)
		fmt.Println("✓ Summary generation enabled")
	} else {
		fmt.Println("- Summary service not configured, using template briefs")
	}
	briefs := summary.NewService(summarizer)

	handler := handlers.NewHandler(intentRouter, aggregator, estimatorSvc, briefs, snapshots, recorder)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.HealthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/handle", handler.HandleIntent)
		r.Get("/games", handler.GetGames)
		r.Get("/probabilities/{eventID}", handler.GetProbabilities)
		r.Get("/summary/{eventID}", handler.GetSummary)
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Sports Data Service listening on %s\n", cfg.Server.Addr)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /health")
		fmt.Println("    POST /v1/handle")
		fmt.Println("    GET  /v1/games?date=YYYY-MM-DD")
		fmt.Println("    GET  /v1/probabilities/{eventID}")
		fmt.Println("    GET  /v1/summary/{eventID}")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("❌ Graceful shutdown failed: %v\n", err)
			srv.Close()
		}
		fmt.Println("✓ Server stopped")
	}
}
