package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hotelapi/internal/amadeus"
	"hotelapi/internal/cache"
	"hotelapi/internal/config"
	"hotelapi/internal/flight"
	"hotelapi/internal/hotel"
	apphttp "hotelapi/internal/http"
	"hotelapi/internal/httpx"
	"hotelapi/internal/places"
	"hotelapi/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbPool := mustOpenDB(cfg.DBDSN)
	defer dbPool.Close()

	amadeusClient := amadeus.NewClient(cfg.AmadeusBaseURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.AmadeusRPS)
	placesClient := places.NewClient(cfg.PlacesBaseURL, cfg.PlacesAPIKey, cfg.PlacesRPS)

	var enrichmentCache places.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("cannot connect to redis (%s): %v", cfg.RedisAddr, err)
		}
		defer redisCache.Close()
		enrichmentCache = redisCache
		log.Printf("enrichment cache enabled addr=%s ttl=%s", cfg.RedisAddr, cfg.CacheTTL)
	}

	enricher := places.NewEnricher(placesClient, enrichmentCache)
	hotelRepo := store.NewHotelPG(dbPool)

	hotelService := hotel.NewService(amadeusClient, enricher, hotelRepo)
	flightService := flight.NewService(amadeusClient)

	hotelHandler := apphttp.NewHotelHandler(hotelService)
	flightHandler := apphttp.NewFlightHandler(flightService)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("/hotels/search", hotelHandler.Search)
	router.HandleFunc("/flights/search", flightHandler.Search)

	rateLimiter := httpx.NewRateLimiter(cfg.HTTPRateLimitRPS, cfg.HTTPRateLimitBurst)
	defer rateLimiter.Close()
	handler := httpx.Chain(router,
		httpx.RequestID,
		httpx.AccessLog,
		rateLimiter.Middleware,
		httpx.Recover,
	)

	httpServer := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
		close(shutdownDone)
	}()

	log.Printf("Starting server on %s", cfg.AppAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	<-shutdownDone
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
