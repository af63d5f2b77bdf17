package flight

import (
	"fmt"
	"log"

	"hotelapi/internal/jsonpath"
)

const noBaggageInfo = "N/A"

// extractOffers flattens raw flight-offer entries into itinerary
// rows. Offers missing their itinerary, price or traveler-pricing
// blocks are skipped; within an offer, itineraries without segments
// are skipped too. Nothing here aborts the whole extraction.
func extractOffers(entries []any) []OfferDetail {
	details := make([]OfferDetail, 0, len(entries))

	for _, entry := range entries {
		itineraries, ok := jsonpath.ExtractArray(entry, "itineraries")
		if !ok {
			log.Printf("flights: offer missing itineraries, skipping")
			continue
		}

		price := jsonpath.ExtractFloat(entry, "price.total")
		currency, ok := jsonpath.ExtractString(entry, "price.currency")
		if !ok {
			log.Printf("flights: offer missing price block, skipping")
			continue
		}

		checkedBags, cabinBags := extractBaggage(entry)

		for _, itinerary := range itineraries {
			detail, ok := extractItinerary(itinerary)
			if !ok {
				continue
			}
			detail.Price = price
			detail.Currency = currency
			detail.CheckedBags = checkedBags
			detail.CabinBags = cabinBags
			details = append(details, detail)
		}
	}
	return details
}

// extractBaggage reads the allowance off the first fare segment of
// the first traveler pricing, the only place the provider repeats it
// consistently.
func extractBaggage(entry any) (checked, cabin string) {
	checked, cabin = noBaggageInfo, noBaggageInfo

	if w := jsonpath.ExtractInt(entry, "travelerPricings[0].fareDetailsBySegment[0].includedCheckedBags.weight"); w != jsonpath.NumericSentinel {
		if unit, ok := jsonpath.ExtractString(entry, "travelerPricings[0].fareDetailsBySegment[0].includedCheckedBags.weightUnit"); ok {
			checked = fmt.Sprintf("%d %s", w, unit)
		}
	}
	if w := jsonpath.ExtractInt(entry, "travelerPricings[0].fareDetailsBySegment[0].includedCabinBags.weight"); w != jsonpath.NumericSentinel {
		if unit, ok := jsonpath.ExtractString(entry, "travelerPricings[0].fareDetailsBySegment[0].includedCabinBags.weightUnit"); ok {
			cabin = fmt.Sprintf("%d %s", w, unit)
		}
	}
	return checked, cabin
}

func extractItinerary(itinerary any) (OfferDetail, bool) {
	segments, ok := jsonpath.ExtractArray(itinerary, "segments")
	if !ok || len(segments) == 0 {
		return OfferDetail{}, false
	}

	first, last := segments[0], segments[len(segments)-1]

	detail := OfferDetail{
		DepartureIataCode: stringOr(first, "departure.iataCode", ""),
		DepartureTerminal: stringOr(first, "departure.terminal", noBaggageInfo),
		DepartureTime:     stringOr(first, "departure.at", ""),
		ArrivalIataCode:   stringOr(last, "arrival.iataCode", ""),
		ArrivalTerminal:   stringOr(last, "arrival.terminal", noBaggageInfo),
		ArrivalTime:       stringOr(last, "arrival.at", ""),
		Duration:          stringOr(itinerary, "duration", ""),
		NumberOfStops:     len(segments) - 1,
		ConnectionCities:  []string{},
	}
	if detail.DepartureIataCode == "" || detail.ArrivalIataCode == "" {
		return OfferDetail{}, false
	}

	for _, segment := range segments[:len(segments)-1] {
		if city, ok := jsonpath.ExtractString(segment, "arrival.iataCode"); ok {
			detail.ConnectionCities = append(detail.ConnectionCities, city)
		}
	}
	return detail, true
}

func stringOr(root any, path, def string) string {
	if s, ok := jsonpath.ExtractString(root, path); ok && s != "" {
		return s
	}
	return def
}
