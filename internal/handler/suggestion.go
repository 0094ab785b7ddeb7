package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/travelmaker/backend/internal/domain"
)

// GenerateSuggestions handles POST /trips/{tripID}/suggestions.
// ?refresh=true bypasses the response cache and forces a model call.
func (s *Server) GenerateSuggestions(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	refresh := r.URL.Query().Get("refresh") == "true"

	result, err := s.suggestions.Generate(r.Context(), tripID, refresh)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// acceptRequest carries the generated days the client chose to merge into
// the trip, plus the currency metadata the model reported, if any.
type acceptRequest struct {
	Days     []domain.NormalizedDay `json:"days"`
	Currency *domain.CurrencyInfo   `json:"currency,omitempty"`
}

// AcceptSuggestions handles POST /trips/{tripID}/suggestions/accept.
func (s *Server) AcceptSuggestions(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var body acceptRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "request body must be valid JSON")
		return
	}

	trip, added, err := s.trips.MergeSuggestions(r.Context(), tripID, body.Days, body.Currency)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"trip":  tripToResponse(trip),
		"added": added,
	})
}

// ListSuggestionCache handles GET /suggestions/cache.
func (s *Server) ListSuggestionCache(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.suggestions.CachedList(r.Context())
	if err != nil {
		respondError(w, r, err, "suggestion cache")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": summaries})
}

// DeleteSuggestionCacheEntry handles DELETE /suggestions/cache/{key}.
func (s *Server) DeleteSuggestionCacheEntry(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := s.suggestions.DeleteCached(r.Context(), key); err != nil {
		respondError(w, r, err, "cache entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearSuggestionCache handles DELETE /suggestions/cache.
func (s *Server) ClearSuggestionCache(w http.ResponseWriter, r *http.Request) {
	if err := s.suggestions.ClearCached(r.Context()); err != nil {
		respondError(w, r, err, "suggestion cache")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
