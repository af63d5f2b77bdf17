// Package places resolves hotel display names to secondary-source
// records carrying a rating and an amenity list. Lookup is two-step:
// a text search yields a place ID, then a details call fetches the
// rating and types for that place.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"hotelapi/internal/hotel"

	"golang.org/x/time/rate"
)

const (
	detailsMaxAttempts  = 3
	detailsFirstBackoff = time.Second
)

var errRateLimited = errors.New("places: rate limited")

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter

	// test seam; defaults to a ctx-aware sleep
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(baseURL, apiKey string, rps int) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		sleep:      sleepCtx,
	}
}

// FindPlaceID resolves a free-text query to a place ID. The first
// candidate wins; no candidates is ("", nil), not an error.
func (c *Client) FindPlaceID(ctx context.Context, query string) (string, error) {
	q := url.Values{
		"input":     {query},
		"inputtype": {"textquery"},
		"fields":    {"place_id"},
		"key":       {c.apiKey},
	}
	u := c.baseURL + "/maps/api/place/findplacefromtext/json?" + q.Encode()

	var payload struct {
		Candidates []struct {
			PlaceID string `json:"place_id"`
		} `json:"candidates"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return "", err
	}
	if len(payload.Candidates) == 0 {
		return "", nil
	}
	return payload.Candidates[0].PlaceID, nil
}

// PlaceDetails fetches the rating and types for a place ID. Rate
// limits are retried up to detailsMaxAttempts with exponential
// backoff; any other failure aborts this place immediately. A missing
// result block counts as a failure. Missing rating defaults to 0,
// missing types to an empty list.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (hotel.EnrichmentRecord, error) {
	q := url.Values{
		"place_id": {placeID},
		"fields":   {"rating,types"},
		"key":      {c.apiKey},
	}
	u := c.baseURL + "/maps/api/place/details/json?" + q.Encode()

	var payload struct {
		Result *struct {
			Rating float64  `json:"rating"`
			Types  []string `json:"types"`
		} `json:"result"`
	}

	backoff := detailsFirstBackoff
	for attempt := 1; ; attempt++ {
		err := c.getJSON(ctx, u, &payload)
		if err == nil {
			break
		}
		if !errors.Is(err, errRateLimited) || attempt == detailsMaxAttempts {
			return hotel.EnrichmentRecord{}, err
		}
		if err := c.sleep(ctx, backoff); err != nil {
			return hotel.EnrichmentRecord{}, err
		}
		backoff *= 2
	}

	if payload.Result == nil {
		return hotel.EnrichmentRecord{}, fmt.Errorf("places: details response missing result for %s", placeID)
	}

	record := hotel.EnrichmentRecord{Rating: payload.Result.Rating, Amenities: payload.Result.Types}
	if record.Amenities == nil {
		record.Amenities = []string{}
	}
	return record, nil
}

func (c *Client) getJSON(ctx context.Context, u string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return errRateLimited
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("places: unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
