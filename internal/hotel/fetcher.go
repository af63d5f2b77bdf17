package hotel

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"hotelapi/internal/amadeus"
)

const (
	// Amadeus documents a larger per-request cap; stay under it.
	maxIDsPerRequest = 20
	maxChunkAttempts = 3
	initialBackoff   = time.Second
)

// OfferFetcher issues batched offer-detail requests for discovered
// candidates. Chunks run strictly sequentially: the provider's rate
// limit is shared across the whole pipeline run, so parallel chunks
// would only trade 429s for throughput we cannot keep anyway.
type OfferFetcher struct {
	provider Provider

	// test seam; defaults to a ctx-aware sleep
	sleep func(ctx context.Context, d time.Duration) error
}

func NewOfferFetcher(provider Provider) *OfferFetcher {
	return &OfferFetcher{provider: provider, sleep: sleepCtx}
}

// FetchOffers groups candidates by region code, chunks each group and
// fetches offer details chunk by chunk. Rate-limited chunks are
// retried with exponential backoff, then dropped; chunks failing for
// any other reason degrade to one request per hotel ID so a single
// bad identifier cannot sink its whole batch. The only errors returned
// are cancellation and failed credentials — everything else degrades
// to a smaller result.
func (f *OfferFetcher) FetchOffers(ctx context.Context, candidates []Candidate, stay amadeus.Stay) ([]any, error) {
	var entries []any

	for _, group := range groupByRegion(candidates) {
		for start := 0; start < len(group.ids); start += maxIDsPerRequest {
			end := min(start+maxIDsPerRequest, len(group.ids))
			chunk := group.ids[start:end]

			got, err := f.fetchChunk(ctx, chunk, stay)
			if err != nil {
				return nil, err
			}
			entries = append(entries, got...)
		}
	}
	return entries, nil
}

// fetchChunk tries one batched request up to maxChunkAttempts times
// while the provider keeps answering 429. Failed credentials abort the
// whole fetch; any other failure switches to per-ID degradation
// immediately.
func (f *OfferFetcher) fetchChunk(ctx context.Context, chunk []string, stay amadeus.Stay) ([]any, error) {
	backoff := initialBackoff

	for attempt := 1; attempt <= maxChunkAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := f.provider.HotelOffers(ctx, chunk, stay)
		var authErr *amadeus.AuthError
		switch {
		case err == nil:
			return entries, nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case errors.As(err, &authErr):
			return nil, err
		case errors.Is(err, amadeus.ErrRateLimited):
			if attempt == maxChunkAttempts {
				log.Printf("offers: giving up on chunk after %d rate-limited attempts ids=%s", maxChunkAttempts, strings.Join(chunk, ","))
				return nil, nil
			}
			log.Printf("offers: rate limited, retrying chunk in %s ids=%s", backoff, strings.Join(chunk, ","))
			if err := f.sleep(ctx, backoff); err != nil {
				return nil, err
			}
			backoff *= 2
		default:
			log.Printf("offers: batch failed, degrading to per-hotel requests ids=%s err=%v", strings.Join(chunk, ","), err)
			return f.fetchIndividually(ctx, chunk, stay)
		}
	}
	return nil, nil
}

// fetchIndividually retries a failed batch as independent
// single-hotel requests. Individual failures are logged and skipped,
// never retried further.
func (f *OfferFetcher) fetchIndividually(ctx context.Context, chunk []string, stay amadeus.Stay) ([]any, error) {
	var entries []any
	for _, id := range chunk {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := f.provider.HotelOffers(ctx, []string{id}, stay)
		if err != nil {
			var authErr *amadeus.AuthError
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.As(err, &authErr) {
				return nil, err
			}
			log.Printf("offers: skipping hotel %s err=%v", id, err)
			continue
		}
		entries = append(entries, got...)
	}
	return entries, nil
}

type regionGroup struct {
	region string
	ids    []string
}

// groupByRegion buckets candidate IDs by region code, preserving the
// order regions and IDs were discovered in.
func groupByRegion(candidates []Candidate) []regionGroup {
	index := make(map[string]int)
	var groups []regionGroup
	for _, c := range candidates {
		i, ok := index[c.RegionCode]
		if !ok {
			i = len(groups)
			index[c.RegionCode] = i
			groups = append(groups, regionGroup{region: c.RegionCode})
		}
		groups[i].ids = append(groups[i].ids, c.ID)
	}
	return groups
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
