package http

import (
	"context"
	"net/http"
	"strconv"

	"hotelapi/internal/flight"
	"hotelapi/internal/httpx"
)

// FlightSearcher is the flight service surface this handler needs.
type FlightSearcher interface {
	Search(ctx context.Context, req flight.SearchRequest) ([]flight.OfferDetail, error)
}

type FlightHandler struct {
	svc FlightSearcher
}

func NewFlightHandler(svc FlightSearcher) *FlightHandler {
	return &FlightHandler{svc: svc}
}

// @Summary Search flight offers
// @Description Search flight offers between two locations on a date
// @Tags flights
// @Produce json
// @Param origin query string true "Origin IATA code"
// @Param destination query string true "Destination IATA code"
// @Param departureDate query string true "Departure date (YYYY-MM-DD)"
// @Param adults query int false "Number of adults" default(1)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /flights/search [get]
func (h *FlightHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := flight.SearchRequest{
		Origin:        q.Get("origin"),
		Destination:   q.Get("destination"),
		DepartureDate: q.Get("departureDate"),
		Adults:        1,
	}
	if raw := q.Get("adults"); raw != "" {
		adults, err := strconv.Atoi(raw)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "invalid_request", "adults must be an integer")
			return
		}
		req.Adults = adults
	}

	details, err := h.svc.Search(r.Context(), req)
	if err != nil {
		writeSearchError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, details)
}
