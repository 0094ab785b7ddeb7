package handler

import (
	"net/http"

	"github.com/travelmaker/backend/internal/domain"
)

// Geocode handles GET /geocode?q=&hint=. A location that cannot be resolved
// yields found=false with a 200 — lookup failure is data, not an error.
func (s *Server) Geocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		badRequest(w, "q query parameter is required")
		return
	}
	hint := r.URL.Query().Get("hint")

	coords := s.geocoder.Resolve(r.Context(), q, hint)

	type geocodeResponse struct {
		Query       string              `json:"query"`
		Found       bool                `json:"found"`
		Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
	}
	writeJSON(w, http.StatusOK, geocodeResponse{
		Query:       q,
		Found:       coords != nil,
		Coordinates: coords,
	})
}
