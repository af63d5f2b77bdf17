// Package hotel implements the offer aggregation pipeline: discover
// candidate hotels for a location, fetch batched offer details from
// the primary provider, enrich them with secondary-source ratings and
// amenities, and merge everything into the final offer list.
package hotel

// Candidate is a hotel discovered for a search: the provider-assigned
// ID plus the region scope batched offer requests must share.
// Immutable once produced by discovery.
type Candidate struct {
	ID          string
	RegionCode  string
	DisplayName string
}

// EnrichmentRecord is the secondary-source data merged into an offer
// by hotel ID. Absence of a record means "no enrichment available".
type EnrichmentRecord struct {
	Rating    float64  `json:"rating"`
	Amenities []string `json:"amenities"`
}

// Offer is the externally visible result unit: primary offer fields
// joined with the matching enrichment record.
type Offer struct {
	HotelID   string   `json:"hotel_id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Price     float64  `json:"price"`
	Currency  string   `json:"currency"`
	Available *bool    `json:"available,omitempty"`
	Rating    float64  `json:"rating"`
	Amenities []string `json:"amenities"`
}

// SearchRequest carries the caller's search criteria. Exactly one of
// the geocode triple (Latitude, Longitude, RadiusKM) or CityCode must
// be set.
type SearchRequest struct {
	Latitude  *float64
	Longitude *float64
	RadiusKM  int
	CityCode  string

	CheckInDate  string
	CheckOutDate string
	Rooms        int
	Adults       int
}

// Validate checks the request before any network call is made.
func (r SearchRequest) Validate() error {
	hasGeocode := r.Latitude != nil || r.Longitude != nil || r.RadiusKM != 0
	hasCity := r.CityCode != ""

	switch {
	case hasGeocode && hasCity:
		return &ValidationError{Field: "location", Reason: "provide either coordinates or a city code, not both"}
	case !hasGeocode && !hasCity:
		return &ValidationError{Field: "location", Reason: "coordinates or a city code are required"}
	}

	if hasGeocode {
		if r.Latitude == nil || r.Longitude == nil {
			return &ValidationError{Field: "location", Reason: "latitude and longitude must both be set"}
		}
		if *r.Latitude < -90 || *r.Latitude > 90 {
			return &ValidationError{Field: "latitude", Reason: "must be between -90 and 90"}
		}
		if *r.Longitude < -180 || *r.Longitude > 180 {
			return &ValidationError{Field: "longitude", Reason: "must be between -180 and 180"}
		}
		if r.RadiusKM <= 0 {
			return &ValidationError{Field: "radius", Reason: "must be a positive number of kilometers"}
		}
	}

	if r.CheckInDate == "" || r.CheckOutDate == "" {
		return &ValidationError{Field: "dates", Reason: "check-in and check-out dates are required"}
	}
	if r.Adults < 1 {
		return &ValidationError{Field: "adults", Reason: "at least one adult is required"}
	}
	if r.Rooms < 1 {
		return &ValidationError{Field: "rooms", Reason: "at least one room is required"}
	}
	return nil
}
