package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/travelmaker/backend/internal/domain"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := decodeTrip(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips. Trips come back in insertion order.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		respondError(w, r, err, "trips")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	trip, err := decodeTrip(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- request/response mapping ----------------------------------------------

// tripRequest is the wire shape of a trip create or update body. Dates are
// plain calendar dates, not timestamps.
type tripRequest struct {
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Participants []string `json:"participants"`
}

// tripResponse is the wire shape of a trip in responses. It differs from
// domain.Trip only in rendering the date range as calendar dates, matching
// the itinerary's date keys.
type tripResponse struct {
	ID           uuid.UUID            `json:"id"`
	Location     string               `json:"location"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Participants []string             `json:"participants"`
	Itinerary    domain.Itinerary     `json:"itinerary"`
	Currency     *domain.CurrencyInfo `json:"currency,omitempty"`
	Emoji        string               `json:"emoji,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:           t.ID,
		Location:     t.Location,
		StartDate:    t.StartDate.Format(domain.DateKey),
		EndDate:      t.EndDate.Format(domain.DateKey),
		Participants: t.Participants,
		Itinerary:    t.Itinerary,
		Currency:     t.Currency,
		Emoji:        t.Emoji,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// decodeTrip reads and converts a trip body. Malformed JSON and unparseable
// dates are request errors; business rules are checked by the service.
func decodeTrip(r *http.Request) (domain.Trip, error) {
	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return domain.Trip{}, errors.New("request body must be valid JSON")
	}

	start, err := time.Parse(domain.DateKey, body.StartDate)
	if err != nil {
		return domain.Trip{}, errors.New("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(domain.DateKey, body.EndDate)
	if err != nil {
		return domain.Trip{}, errors.New("end_date must be YYYY-MM-DD")
	}

	return domain.Trip{
		Location:     body.Location,
		StartDate:    start,
		EndDate:      end,
		Participants: body.Participants,
	}, nil
}

// tripIDParam parses the {tripID} path parameter.
func tripIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		return uuid.Nil, errors.New("trip ID must be a valid UUID")
	}
	return id, nil
}
