package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DayDistances handles GET /trips/{tripID}/days/{date}/distances.
// The response has one leg per adjacent activity pair; legs that could not
// be computed carry a status instead of failing the request.
func (s *Server) DayDistances(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	date := chi.URLParam(r, "date")

	legs, err := s.distances.DayDistances(r.Context(), tripID, date)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": legs})
}
