// Package cache keeps resolved enrichment records in Redis so
// repeated searches over the same hotels skip the secondary provider.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelapi/internal/hotel"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "enrichment:"

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects and pings; a cache that cannot answer at startup
// is a configuration problem, not something to discover per request.
func NewRedis(addr, password string, db int, ttl time.Duration) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Redis{rdb: rdb, ttl: ttl}, nil
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

// GetEnrichment returns the cached record for a hotel ID. A missing
// key is (zero, false, nil); corrupt payloads are reported as errors
// so the caller can fall through to the provider.
func (c *Redis) GetEnrichment(ctx context.Context, hotelID string) (hotel.EnrichmentRecord, bool, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+hotelID).Bytes()
	if errors.Is(err, redis.Nil) {
		return hotel.EnrichmentRecord{}, false, nil
	}
	if err != nil {
		return hotel.EnrichmentRecord{}, false, err
	}

	var record hotel.EnrichmentRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return hotel.EnrichmentRecord{}, false, fmt.Errorf("decode cached enrichment for %s: %w", hotelID, err)
	}
	return record, true, nil
}

func (c *Redis) SetEnrichment(ctx context.Context, hotelID string, record hotel.EnrichmentRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+hotelID, raw, c.ttl).Err()
}
