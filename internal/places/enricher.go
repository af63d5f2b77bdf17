package places

import (
	"context"
	"log"
	"sync"

	"hotelapi/internal/hotel"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency caps in-flight lookups per phase so a big
// discovery result does not hammer the secondary provider.
const defaultConcurrency = 8

// Lookup is the client surface the enricher needs.
type Lookup interface {
	FindPlaceID(ctx context.Context, query string) (string, error)
	PlaceDetails(ctx context.Context, placeID string) (hotel.EnrichmentRecord, error)
}

// Cache fronts the remote lookups with previously resolved records.
type Cache interface {
	GetEnrichment(ctx context.Context, hotelID string) (hotel.EnrichmentRecord, bool, error)
	SetEnrichment(ctx context.Context, hotelID string, record hotel.EnrichmentRecord) error
}

// Enricher resolves ratings and amenities for a candidate set.
// Per-candidate lookups are independent, so each phase fans out
// concurrently and joins before the next.
type Enricher struct {
	client      Lookup
	cache       Cache // may be nil
	concurrency int
}

func NewEnricher(client Lookup, cache Cache) *Enricher {
	return &Enricher{client: client, cache: cache, concurrency: defaultConcurrency}
}

type resolved struct {
	hotelID string
	placeID string
}

// Enrich maps candidate IDs to enrichment records. Candidates whose
// name resolves to nothing, or whose lookups fail, are logged and
// left out of the mapping — the merge stage fills in defaults. The
// call itself never fails; at worst the mapping is empty.
func (e *Enricher) Enrich(ctx context.Context, candidates []hotel.Candidate) map[string]hotel.EnrichmentRecord {
	records := make(map[string]hotel.EnrichmentRecord)
	var mu sync.Mutex

	// Cache pass: anything already resolved skips both remote steps.
	remaining := candidates
	if e.cache != nil {
		remaining = remaining[:0:0]
		for _, c := range candidates {
			record, ok, err := e.cache.GetEnrichment(ctx, c.ID)
			if err != nil {
				log.Printf("enrich: cache read failed hotel=%s err=%v", c.ID, err)
			}
			if ok {
				records[c.ID] = record
				continue
			}
			remaining = append(remaining, c)
		}
	}

	// Phase one: resolve display names to place IDs.
	var resolvedIDs []resolved
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, c := range remaining {
		g.Go(func() error {
			placeID, err := e.client.FindPlaceID(gctx, c.DisplayName)
			if err != nil {
				log.Printf("enrich: place lookup failed hotel=%s name=%q err=%v", c.ID, c.DisplayName, err)
				return nil
			}
			if placeID == "" {
				log.Printf("enrich: no place match hotel=%s name=%q", c.ID, c.DisplayName)
				return nil
			}
			mu.Lock()
			resolvedIDs = append(resolvedIDs, resolved{hotelID: c.ID, placeID: placeID})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Phase two: fetch details for everything that resolved.
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, r := range resolvedIDs {
		g.Go(func() error {
			record, err := e.client.PlaceDetails(gctx, r.placeID)
			if err != nil {
				log.Printf("enrich: details fetch failed hotel=%s place=%s err=%v", r.hotelID, r.placeID, err)
				return nil
			}
			mu.Lock()
			records[r.hotelID] = record
			mu.Unlock()
			if e.cache != nil {
				if err := e.cache.SetEnrichment(ctx, r.hotelID, record); err != nil {
					log.Printf("enrich: cache write failed hotel=%s err=%v", r.hotelID, err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return records
}
