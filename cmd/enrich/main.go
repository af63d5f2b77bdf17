// The enrich command backfills ratings and amenities for hotels that
// were discovered by searches but never fully enriched. It is meant to
// run one-shot, from cron or by hand.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"hotelapi/internal/cache"
	"hotelapi/internal/config"
	"hotelapi/internal/enrich"
	"hotelapi/internal/places"
	"hotelapi/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "Abort the run after this long")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	placesClient := places.NewClient(cfg.PlacesBaseURL, cfg.PlacesAPIKey, cfg.PlacesRPS)

	var enrichmentCache places.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("cannot connect to redis (%s): %v", cfg.RedisAddr, err)
		}
		defer redisCache.Close()
		enrichmentCache = redisCache
	}

	service := enrich.NewService(
		store.NewHotelPG(pool),
		places.NewEnricher(placesClient, enrichmentCache),
	)

	if err := service.Run(ctx); err != nil {
		log.Fatalf("enrich run failed: %v", err)
	}
}
