package flight

import (
	"context"
	"encoding/json"
	"testing"

	"hotelapi/internal/amadeus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rawEntries(t *testing.T, raw string) []any {
	t.Helper()
	var entries []any
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	return entries
}

const directOffer = `[{
	"price": {"total": "410.50", "currency": "EUR"},
	"travelerPricings": [{
		"fareDetailsBySegment": [{
			"includedCheckedBags": {"weight": 23, "weightUnit": "KG"},
			"includedCabinBags": {"weight": 8, "weightUnit": "KG"}
		}]
	}],
	"itineraries": [{
		"duration": "PT12H30M",
		"segments": [{
			"departure": {"iataCode": "SIN", "terminal": "1", "at": "2026-09-01T08:00:00"},
			"arrival": {"iataCode": "FRA", "terminal": "2", "at": "2026-09-01T15:30:00"}
		}]
	}]
}]`

func TestExtractOffers_DirectFlight(t *testing.T) {
	details := extractOffers(rawEntries(t, directOffer))
	require.Len(t, details, 1)

	d := details[0]
	assert.Equal(t, "SIN", d.DepartureIataCode)
	assert.Equal(t, "1", d.DepartureTerminal)
	assert.Equal(t, "FRA", d.ArrivalIataCode)
	assert.Equal(t, 410.5, d.Price)
	assert.Equal(t, "EUR", d.Currency)
	assert.Equal(t, "PT12H30M", d.Duration)
	assert.Equal(t, 0, d.NumberOfStops)
	assert.Empty(t, d.ConnectionCities)
	assert.Equal(t, "23 KG", d.CheckedBags)
	assert.Equal(t, "8 KG", d.CabinBags)
}

func TestExtractOffers_ConnectionsSpanSegments(t *testing.T) {
	entries := rawEntries(t, `[{
		"price": {"total": 800, "currency": "USD"},
		"travelerPricings": [{}],
		"itineraries": [{
			"duration": "PT20H",
			"segments": [
				{"departure": {"iataCode": "SIN", "at": "t1"}, "arrival": {"iataCode": "DXB", "at": "t2"}},
				{"departure": {"iataCode": "DXB", "at": "t3"}, "arrival": {"iataCode": "LHR", "at": "t4"}},
				{"departure": {"iataCode": "LHR", "at": "t5"}, "arrival": {"iataCode": "JFK", "at": "t6"}}
			]
		}]
	}]`)

	details := extractOffers(entries)
	require.Len(t, details, 1)

	d := details[0]
	assert.Equal(t, "SIN", d.DepartureIataCode)
	assert.Equal(t, "JFK", d.ArrivalIataCode)
	assert.Equal(t, 2, d.NumberOfStops)
	assert.Equal(t, []string{"DXB", "LHR"}, d.ConnectionCities)
	assert.Equal(t, "N/A", d.CheckedBags, "missing baggage info defaults")
	assert.Equal(t, "N/A", d.DepartureTerminal)
}

func TestExtractOffers_SkipsMalformedEntries(t *testing.T) {
	entries := rawEntries(t, `[
		{"price": {"total": 100, "currency": "EUR"}},
		{"itineraries": [], "travelerPricings": []},
		{"price": {"total": 100, "currency": "EUR"}, "travelerPricings": [],
		 "itineraries": [{"segments": []}]},
		{"price": {"total": 100, "currency": "EUR"}, "travelerPricings": [],
		 "itineraries": [{"segments": [
			{"departure": {"iataCode": "SIN", "at": "t"}, "arrival": {"iataCode": "FRA", "at": "t"}}
		 ]}]}
	]`)

	details := extractOffers(entries)
	require.Len(t, details, 1)
	assert.Equal(t, "SIN", details[0].DepartureIataCode)
}

func TestExtractOffers_RoundTripYieldsTwoRows(t *testing.T) {
	entries := rawEntries(t, `[{
		"price": {"total": 900, "currency": "EUR"},
		"travelerPricings": [],
		"itineraries": [
			{"duration": "PT13H", "segments": [
				{"departure": {"iataCode": "SIN", "at": "t"}, "arrival": {"iataCode": "FRA", "at": "t"}}
			]},
			{"duration": "PT12H", "segments": [
				{"departure": {"iataCode": "FRA", "at": "t"}, "arrival": {"iataCode": "SIN", "at": "t"}}
			]}
		]
	}]`)

	details := extractOffers(entries)
	require.Len(t, details, 2)
	assert.Equal(t, 900.0, details[0].Price)
	assert.Equal(t, 900.0, details[1].Price)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) FlightOffers(ctx context.Context, q amadeus.FlightQuery) ([]any, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

func TestService_Search(t *testing.T) {
	provider := new(mockProvider)
	provider.On("FlightOffers", mock.Anything, amadeus.FlightQuery{
		Origin: "SIN", Destination: "FRA", DepartureDate: "2026-09-01", Adults: 2,
	}).Return(rawEntries(t, directOffer), nil)

	svc := NewService(provider)
	details, err := svc.Search(context.Background(), SearchRequest{
		Origin: "SIN", Destination: "FRA", DepartureDate: "2026-09-01", Adults: 2,
	})
	require.NoError(t, err)
	assert.Len(t, details, 1)
}

func TestService_Search_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
	}{
		{"bad origin", SearchRequest{Origin: "SINGAPORE", Destination: "FRA", DepartureDate: "2026-09-01", Adults: 1}},
		{"bad destination", SearchRequest{Origin: "SIN", Destination: "", DepartureDate: "2026-09-01", Adults: 1}},
		{"missing date", SearchRequest{Origin: "SIN", Destination: "FRA", Adults: 1}},
		{"no adults", SearchRequest{Origin: "SIN", Destination: "FRA", DepartureDate: "2026-09-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(mockProvider)
			_, err := NewService(provider).Search(context.Background(), tt.req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			provider.AssertNotCalled(t, "FlightOffers", mock.Anything, mock.Anything)
		})
	}
}
