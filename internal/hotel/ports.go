package hotel

import (
	"context"

	"hotelapi/internal/amadeus"
)

// Provider is the slice of the primary travel API the pipeline
// consumes. Implemented by *amadeus.Client.
type Provider interface {
	HotelsByGeocode(ctx context.Context, lat, lon float64, radiusKM int) ([]any, error)
	HotelsByCity(ctx context.Context, cityCode string) ([]any, error)
	HotelOffers(ctx context.Context, hotelIDs []string, stay amadeus.Stay) ([]any, error)
}

// Enricher resolves secondary-source ratings and amenities for a
// candidate set. Failures degrade to missing keys; the mapping may be
// partial or empty but the call itself never fails.
type Enricher interface {
	Enrich(ctx context.Context, candidates []Candidate) map[string]EnrichmentRecord
}

// Repository is the hotel metadata cache the pipeline feeds.
// Persistence internals live elsewhere.
type Repository interface {
	SaveHotels(ctx context.Context, candidates []Candidate) error
}
