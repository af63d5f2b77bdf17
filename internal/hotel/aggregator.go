package hotel

import (
	"log"

	"hotelapi/internal/jsonpath"
)

// MergeOffers joins raw offer entries from the primary provider with
// the enrichment mapping by hotel ID. Entries missing their nested
// hotel object are skipped defensively; hotels without an enrichment
// record get rating 0 and no amenities. Duplicate IDs are kept as-is —
// deduplication is not this stage's call.
func MergeOffers(entries []any, enrichment map[string]EnrichmentRecord) []Offer {
	offers := make([]Offer, 0, len(entries))

	for _, entry := range entries {
		if _, ok := jsonpath.ExtractString(entry, "hotel.hotelId"); !ok {
			log.Printf("aggregate: entry missing hotel block, skipping")
			continue
		}

		offer := Offer{
			HotelID:   stringOr(entry, "hotel.hotelId", unknownValue),
			Name:      stringOr(entry, "hotel.name", unknownValue),
			Location:  stringOr(entry, "hotel.cityCode", unknownValue),
			Price:     jsonpath.ExtractFloat(entry, "offers[0].price.total"),
			Currency:  stringOr(entry, "offers[0].price.currency", unknownValue),
			Amenities: []string{},
		}
		if available, ok := jsonpath.ExtractBool(entry, "available"); ok {
			offer.Available = &available
		}

		if record, ok := enrichment[offer.HotelID]; ok {
			offer.Rating = record.Rating
			if record.Amenities != nil {
				offer.Amenities = record.Amenities
			}
		}

		offers = append(offers, offer)
	}
	return offers
}

func stringOr(entry any, path, def string) string {
	if s, ok := jsonpath.ExtractString(entry, path); ok && s != "" {
		return s
	}
	return def
}
