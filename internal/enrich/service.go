// Package enrich backfills ratings and amenities for hotels the
// search pipeline discovered but never enriched.
package enrich

import (
	"context"
	"log"

	"hotelapi/internal/hotel"
)

// Repository is the slice of the metadata store the backfill needs.
type Repository interface {
	HotelsMissingEnrichment(ctx context.Context) ([]hotel.Candidate, error)
	SaveEnrichment(ctx context.Context, records map[string]hotel.EnrichmentRecord) error
}

type Service struct {
	repo     Repository
	enricher hotel.Enricher
}

func NewService(repo Repository, enricher hotel.Enricher) *Service {
	return &Service{repo: repo, enricher: enricher}
}

// Run enriches every hotel still missing a rating or amenity list and
// persists whatever resolved. Hotels that stay unresolved are left
// for the next run.
func (s *Service) Run(ctx context.Context) error {
	candidates, err := s.repo.HotelsMissingEnrichment(ctx)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		log.Println("enrich: nothing to backfill")
		return nil
	}

	log.Printf("enrich: backfilling %d hotels", len(candidates))
	records := s.enricher.Enrich(ctx, candidates)
	if len(records) == 0 {
		log.Println("enrich: no hotels resolved this run")
		return nil
	}

	if err := s.repo.SaveEnrichment(ctx, records); err != nil {
		return err
	}
	log.Printf("enrich: saved enrichment for %d of %d hotels", len(records), len(candidates))
	return nil
}
