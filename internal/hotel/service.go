package hotel

import (
	"context"
	"errors"
	"log"

	"hotelapi/internal/amadeus"

	"golang.org/x/sync/errgroup"
)

// Service orchestrates the pipeline: discovery, then enrichment and
// batched offer fetching side by side, then the merge.
type Service struct {
	discovery *Discovery
	fetcher   *OfferFetcher
	enricher  Enricher
	repo      Repository
}

// NewService wires the pipeline. repo may be nil when no metadata
// cache is configured; persistence is best-effort either way.
func NewService(provider Provider, enricher Enricher, repo Repository) *Service {
	return &Service{
		discovery: NewDiscovery(provider),
		fetcher:   NewOfferFetcher(provider),
		enricher:  enricher,
		repo:      repo,
	}
}

// Search runs the full pipeline for one request. It returns an empty
// list when the location yields no hotels, the merged offer list on
// any degree of partial success, and an error only for invalid input,
// failed credentials, a failed discovery call or cancellation.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]Offer, error) {
	candidates, err := s.discovery.Discover(ctx, req)
	if errors.Is(err, ErrNoCandidates) {
		return []Offer{}, nil
	}
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.SaveHotels(ctx, candidates); err != nil {
			log.Printf("search: saving discovered hotels failed err=%v", err)
		}
	}

	stay := amadeus.Stay{
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Rooms:        req.Rooms,
		Adults:       req.Adults,
	}

	var (
		enrichment map[string]EnrichmentRecord
		entries    []any
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		enrichment = s.enricher.Enrich(gctx, candidates)
		return nil
	})
	g.Go(func() error {
		var fetchErr error
		entries, fetchErr = s.fetcher.FetchOffers(gctx, candidates, stay)
		return fetchErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return MergeOffers(entries, enrichment), nil
}
