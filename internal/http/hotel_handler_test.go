package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelapi/internal/amadeus"
	"hotelapi/internal/hotel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHotelService struct {
	gotReq hotel.SearchRequest
	offers []hotel.Offer
	err    error
}

func (s *stubHotelService) Search(ctx context.Context, req hotel.SearchRequest) ([]hotel.Offer, error) {
	s.gotReq = req
	return s.offers, s.err
}

func doSearch(t *testing.T, svc HotelSearcher, query string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hotels/search"+query, nil)
	NewHotelHandler(svc).Search(rec, req)
	return rec
}

func TestHotelSearch_OK(t *testing.T) {
	svc := &stubHotelService{offers: []hotel.Offer{
		{HotelID: "HA", Name: "Marina Bay", Price: 350, Currency: "SGD", Rating: 4.5, Amenities: []string{"pool"}},
	}}

	rec := doSearch(t, svc, "?latitude=1.3&longitude=103.8&radius=3&checkInDate=2026-09-01&checkOutDate=2026-09-03&adults=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool          `json:"success"`
		Data    []hotel.Offer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "HA", body.Data[0].HotelID)

	require.NotNil(t, svc.gotReq.Latitude)
	assert.Equal(t, 1.3, *svc.gotReq.Latitude)
	assert.Equal(t, 3, svc.gotReq.RadiusKM)
	assert.Equal(t, 2, svc.gotReq.Adults)
	assert.Equal(t, 1, svc.gotReq.Rooms, "rooms default applies")
}

func TestHotelSearch_DefaultRadiusWithCoordinates(t *testing.T) {
	svc := &stubHotelService{}
	doSearch(t, svc, "?latitude=1.3&longitude=103.8&checkInDate=2026-09-01&checkOutDate=2026-09-03")
	assert.Equal(t, 3, svc.gotReq.RadiusKM)
}

func TestHotelSearch_BadQueryParams(t *testing.T) {
	for _, query := range []string{
		"?latitude=north&longitude=103.8",
		"?latitude=1.3&longitude=103.8&radius=wide",
		"?cityCode=SIN&adults=family",
	} {
		rec := doSearch(t, &stubHotelService{}, query)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %s", query)
	}
}

func TestHotelSearch_ValidationErrorIs400(t *testing.T) {
	svc := &stubHotelService{err: &hotel.ValidationError{Field: "location", Reason: "coordinates or a city code are required"}}
	rec := doSearch(t, svc, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHotelSearch_AuthErrorIs502(t *testing.T) {
	svc := &stubHotelService{err: &amadeus.AuthError{Status: 401, Reason: "token exchange rejected"}}
	rec := doSearch(t, svc, "?cityCode=SIN&checkInDate=2026-09-01&checkOutDate=2026-09-03")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token exchange rejected", "provider detail stays internal")
}

func TestHotelSearch_RateLimitedIs503(t *testing.T) {
	svc := &stubHotelService{err: fmt.Errorf("discover: %w", amadeus.ErrRateLimited)}
	rec := doSearch(t, svc, "?cityCode=SIN&checkInDate=2026-09-01&checkOutDate=2026-09-03")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHotelSearch_ProviderErrorIs502(t *testing.T) {
	svc := &stubHotelService{err: &amadeus.StatusError{Status: 500, URL: "/x"}}
	rec := doSearch(t, svc, "?cityCode=SIN&checkInDate=2026-09-01&checkOutDate=2026-09-03")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHotelSearch_TimeoutIs504(t *testing.T) {
	svc := &stubHotelService{err: context.DeadlineExceeded}
	rec := doSearch(t, svc, "?cityCode=SIN&checkInDate=2026-09-01&checkOutDate=2026-09-03")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestHotelSearch_EmptyResultIsStill200(t *testing.T) {
	svc := &stubHotelService{offers: []hotel.Offer{}}
	rec := doSearch(t, svc, "?cityCode=SIN&checkInDate=2026-09-01&checkOutDate=2026-09-03")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []hotel.Offer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
}
