// Package amadeus is a thin client for the primary travel data
// provider: OAuth2 client-credentials tokens, geocode/city hotel
// discovery, batched hotel offers and flight offers.
//
// The client stays dumb on purpose. It classifies failures
// (ErrRateLimited, StatusError, AuthError) and hands back the raw
// `data` array from the response envelope; retry, chunking and
// parsing policy live with the callers in internal/hotel and
// internal/flight.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Stay carries the date and occupancy parameters of an offer search.
type Stay struct {
	CheckInDate  string
	CheckOutDate string
	Rooms        int
	Adults       int
}

// FlightQuery carries the parameters of a flight-offers search.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	Adults        int
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     *TokenManager
	limiter    *rate.Limiter
}

// NewClient builds a provider client. rps bounds outgoing request
// rate across all endpoints; the provider's own 429s are still
// surfaced as ErrRateLimited when the budget disagrees with ours.
func NewClient(baseURL, clientID, clientSecret string, rps int) *Client {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     NewTokenManager(httpClient, strings.TrimRight(baseURL, "/"), clientID, clientSecret),
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// HotelsByGeocode lists hotels around a coordinate. Returns the raw
// entries of the response's `data` array; an absent `data` key is an
// empty result, not an error.
func (c *Client) HotelsByGeocode(ctx context.Context, lat, lon float64, radiusKM int) ([]any, error) {
	q := url.Values{
		"latitude":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":  {strconv.FormatFloat(lon, 'f', -1, 64)},
		"radius":     {strconv.Itoa(radiusKM)},
		"radiusUnit": {"KM"},
	}
	return c.getData(ctx, "/v1/reference-data/locations/hotels/by-geocode", q)
}

// HotelsByCity lists hotels for an IATA city code.
func (c *Client) HotelsByCity(ctx context.Context, cityCode string) ([]any, error) {
	q := url.Values{"cityCode": {cityCode}}
	return c.getData(ctx, "/v1/reference-data/locations/hotels/by-city", q)
}

// HotelOffers fetches offer details for a batch of hotel IDs sharing
// one region scope. The IDs are comma-joined into a single request;
// callers are responsible for keeping batches under the provider's
// per-request cap.
func (c *Client) HotelOffers(ctx context.Context, hotelIDs []string, stay Stay) ([]any, error) {
	q := url.Values{
		"hotelIds":     {strings.Join(hotelIDs, ",")},
		"checkInDate":  {stay.CheckInDate},
		"checkOutDate": {stay.CheckOutDate},
		"roomQuantity": {strconv.Itoa(stay.Rooms)},
		"adults":       {strconv.Itoa(stay.Adults)},
	}
	return c.getData(ctx, "/v3/shopping/hotel-offers", q)
}

// FlightOffers searches flight offers between two locations.
func (c *Client) FlightOffers(ctx context.Context, fq FlightQuery) ([]any, error) {
	q := url.Values{
		"originLocationCode":      {fq.Origin},
		"destinationLocationCode": {fq.Destination},
		"departureDate":           {fq.DepartureDate},
		"adults":                  {strconv.Itoa(fq.Adults)},
	}
	return c.getData(ctx, "/v2/shopping/flight-offers", q)
}

func (c *Client) getData(ctx context.Context, path string, query url.Values) ([]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// The credential travels with each request instead of being
	// stamped onto shared client state, so concurrent calls never
	// race on headers.
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: %w", path, ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Status: resp.StatusCode, URL: path}
	}

	var envelope struct {
		Data []any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return envelope.Data, nil
}
