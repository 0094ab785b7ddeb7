package handler

import (
	"net/http"
)

// TripCurrency handles GET /trips/{tripID}/currency. It resolves the
// currency to display for a trip along with the current rate to the home
// currency.
func (s *Server) TripCurrency(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trip, err := s.trips.GetByID(r.Context(), tripID)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	local := s.currencies.DisplayCurrency(trip)
	rate, err := s.currencies.Rate(r.Context(), local.Code, "")
	if err != nil {
		respondError(w, r, err, "exchange rate")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"currency": local,
		"rate":     rate,
		"total":    s.currencies.FormatCost(trip.Itinerary.TotalCost(), local, rate),
	})
}

// ExchangeRate handles GET /exchange-rate?from=&to=. An empty to defaults
// to the home currency.
func (s *Server) ExchangeRate(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	rate, err := s.currencies.Rate(r.Context(), from, to)
	if err != nil {
		respondError(w, r, err, "exchange rate")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"from": from,
		"to":   to,
		"rate": rate,
	})
}
