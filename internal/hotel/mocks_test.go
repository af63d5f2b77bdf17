package hotel

import (
	"context"
	"encoding/json"
	"testing"

	"hotelapi/internal/amadeus"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) HotelsByGeocode(ctx context.Context, lat, lon float64, radiusKM int) ([]any, error) {
	args := m.Called(ctx, lat, lon, radiusKM)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

func (m *mockProvider) HotelsByCity(ctx context.Context, cityCode string) ([]any, error) {
	args := m.Called(ctx, cityCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

func (m *mockProvider) HotelOffers(ctx context.Context, hotelIDs []string, stay amadeus.Stay) ([]any, error) {
	args := m.Called(ctx, hotelIDs, stay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

type stubEnricher struct {
	records map[string]EnrichmentRecord
}

func (s *stubEnricher) Enrich(ctx context.Context, candidates []Candidate) map[string]EnrichmentRecord {
	return s.records
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) SaveHotels(ctx context.Context, candidates []Candidate) error {
	args := m.Called(ctx, candidates)
	return args.Error(0)
}

// rawEntries decodes a JSON array literal into the entry shape the
// provider client hands the pipeline.
func rawEntries(t *testing.T, raw string) []any {
	t.Helper()
	var entries []any
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	return entries
}

func floatPtr(f float64) *float64 { return &f }
