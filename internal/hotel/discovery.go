package hotel

import (
	"context"
	"log"

	"hotelapi/internal/jsonpath"
)

// unknownValue stands in for optional discovery fields the provider
// left out.
const unknownValue = "Unknown"

// Discovery turns a geographic query into a set of candidate hotels.
type Discovery struct {
	provider Provider
}

func NewDiscovery(provider Provider) *Discovery {
	return &Discovery{provider: provider}
}

// Discover validates the request, queries the provider's location
// search and extracts one Candidate per usable entry. Entries without
// a hotel ID are skipped; duplicate IDs keep their first occurrence,
// so one discovery result never carries the same ID with conflicting
// region codes. Returns ErrNoCandidates when nothing usable remains.
func (d *Discovery) Discover(ctx context.Context, req SearchRequest) ([]Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		entries []any
		err     error
	)
	if req.CityCode != "" {
		entries, err = d.provider.HotelsByCity(ctx, req.CityCode)
	} else {
		entries, err = d.provider.HotelsByGeocode(ctx, *req.Latitude, *req.Longitude, req.RadiusKM)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(entries))
	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		id, ok := jsonpath.ExtractString(entry, "hotelId")
		if !ok || id == "" {
			log.Printf("discovery: skipping entry without hotelId")
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		region, ok := jsonpath.ExtractString(entry, "iataCode")
		if !ok || region == "" {
			region = unknownValue
		}
		name, ok := jsonpath.ExtractString(entry, "name")
		if !ok || name == "" {
			name = unknownValue
		}

		candidates = append(candidates, Candidate{ID: id, RegionCode: region, DisplayName: name})
	}

	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return candidates, nil
}
