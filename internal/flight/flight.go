// Package flight searches flight offers on the primary provider and
// flattens each itinerary into a self-contained result row.
package flight

import (
	"context"

	"hotelapi/internal/amadeus"
)

// OfferDetail is one itinerary of a priced flight offer. A multi-leg
// offer yields one detail per itinerary, all sharing the offer price.
type OfferDetail struct {
	DepartureIataCode string   `json:"departure_iata_code"`
	DepartureTerminal string   `json:"departure_terminal"`
	DepartureTime     string   `json:"departure_time"`
	ArrivalIataCode   string   `json:"arrival_iata_code"`
	ArrivalTerminal   string   `json:"arrival_terminal"`
	ArrivalTime       string   `json:"arrival_time"`
	Price             float64  `json:"price"`
	Currency          string   `json:"currency"`
	Duration          string   `json:"duration"`
	NumberOfStops     int      `json:"number_of_stops"`
	ConnectionCities  []string `json:"connection_cities"`
	CheckedBags       string   `json:"checked_bags"`
	CabinBags         string   `json:"cabin_bags"`
}

// SearchRequest carries the caller's flight search criteria.
type SearchRequest struct {
	Origin        string
	Destination   string
	DepartureDate string
	Adults        int
}

// ValidationError is malformed caller input, caught before any
// network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

func (r SearchRequest) Validate() error {
	if len(r.Origin) != 3 {
		return &ValidationError{Field: "origin", Reason: "must be a 3-letter IATA code"}
	}
	if len(r.Destination) != 3 {
		return &ValidationError{Field: "destination", Reason: "must be a 3-letter IATA code"}
	}
	if r.DepartureDate == "" {
		return &ValidationError{Field: "departureDate", Reason: "is required"}
	}
	if r.Adults < 1 {
		return &ValidationError{Field: "adults", Reason: "at least one adult is required"}
	}
	return nil
}

// Provider is the slice of the primary travel API flight search
// consumes. Implemented by *amadeus.Client.
type Provider interface {
	FlightOffers(ctx context.Context, q amadeus.FlightQuery) ([]any, error)
}

type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Search validates the request, queries the provider and extracts
// itinerary details. Malformed offer entries degrade to fewer rows,
// never to an error.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]OfferDetail, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.provider.FlightOffers(ctx, amadeus.FlightQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		Adults:        req.Adults,
	})
	if err != nil {
		return nil, err
	}

	return extractOffers(entries), nil
}
