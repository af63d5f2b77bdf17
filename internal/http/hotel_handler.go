// Package http exposes the search pipeline over a thin handler layer.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hotelapi/internal/amadeus"
	"hotelapi/internal/flight"
	"hotelapi/internal/hotel"
	"hotelapi/internal/httpx"
)

const defaultRadiusKM = 3

// HotelSearcher is the pipeline surface this handler needs.
type HotelSearcher interface {
	Search(ctx context.Context, req hotel.SearchRequest) ([]hotel.Offer, error)
}

type HotelHandler struct {
	svc HotelSearcher
}

func NewHotelHandler(svc HotelSearcher) *HotelHandler {
	return &HotelHandler{svc: svc}
}

// @Summary Search hotel offers
// @Description Search hotels by coordinates or city code, with live prices, ratings and amenities
// @Tags hotels
// @Produce json
// @Param latitude query number false "Latitude (with longitude)"
// @Param longitude query number false "Longitude (with latitude)"
// @Param radius query int false "Search radius in km" default(3)
// @Param cityCode query string false "IATA city code (instead of coordinates)"
// @Param checkInDate query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOutDate query string true "Check-out date (YYYY-MM-DD)"
// @Param adults query int false "Number of adults" default(1)
// @Param rooms query int false "Number of rooms" default(1)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /hotels/search [get]
func (h *HotelHandler) Search(w http.ResponseWriter, r *http.Request) {
	req, err := parseHotelSearch(r)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	offers, err := h.svc.Search(r.Context(), req)
	if err != nil {
		writeSearchError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, offers)
}

func parseHotelSearch(r *http.Request) (hotel.SearchRequest, error) {
	q := r.URL.Query()
	req := hotel.SearchRequest{
		CityCode:     q.Get("cityCode"),
		CheckInDate:  q.Get("checkInDate"),
		CheckOutDate: q.Get("checkOutDate"),
		Adults:       1,
		Rooms:        1,
	}

	if raw := q.Get("latitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.New("latitude must be a number")
		}
		req.Latitude = &lat
	}
	if raw := q.Get("longitude"); raw != "" {
		lon, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.New("longitude must be a number")
		}
		req.Longitude = &lon
	}
	if req.Latitude != nil || req.Longitude != nil {
		req.RadiusKM = defaultRadiusKM
	}
	if raw := q.Get("radius"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.New("radius must be an integer")
		}
		req.RadiusKM = radius
	}
	if raw := q.Get("adults"); raw != "" {
		adults, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.New("adults must be an integer")
		}
		req.Adults = adults
	}
	if raw := q.Get("rooms"); raw != "" {
		rooms, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.New("rooms must be an integer")
		}
		req.Rooms = rooms
	}
	return req, nil
}

// writeSearchError maps pipeline failures onto client responses. Only
// bad input is the caller's fault; provider trouble is a gateway
// problem and raw transport errors never leak through.
func writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		hotelValidationErr  *hotel.ValidationError
		flightValidationErr *flight.ValidationError
		authErr             *amadeus.AuthError
		statusErr           *amadeus.StatusError
	)
	switch {
	case errors.As(err, &hotelValidationErr), errors.As(err, &flightValidationErr):
		httpx.JSONError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.As(err, &authErr):
		httpx.JSONError(w, r, http.StatusBadGateway, "upstream_auth_failed", "travel data provider rejected our credentials")
	case errors.Is(err, amadeus.ErrRateLimited):
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "upstream_rate_limited", "travel data provider is throttling requests, try again shortly")
	case errors.As(err, &statusErr):
		httpx.JSONError(w, r, http.StatusBadGateway, "upstream_error", "travel data provider request failed")
	case errors.Is(err, context.DeadlineExceeded):
		httpx.JSONError(w, r, http.StatusGatewayTimeout, "timeout", "search timed out")
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "an internal error occurred")
	}
}
