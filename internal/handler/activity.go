package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/travelmaker/backend/internal/domain"
)

// activityRequest is the wire shape of an activity create or update body.
// The date names the itinerary day the activity belongs to.
type activityRequest struct {
	Date     string          `json:"date"`
	Activity domain.Activity `json:"activity"`
}

// AddActivity handles POST /trips/{tripID}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var body activityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "request body must be valid JSON")
		return
	}

	updated, err := s.trips.AddActivity(r.Context(), tripID, body.Date, body.Activity)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(updated))
}

// UpdateActivity handles PUT /trips/{tripID}/activities/{activityID}.
// The day the activity lives on comes from the ?date= query parameter.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	activityID, err := activityIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var body activityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "request body must be valid JSON")
		return
	}
	date := body.Date
	if q := r.URL.Query().Get("date"); q != "" {
		date = q
	}
	body.Activity.ID = activityID

	updated, err := s.trips.UpdateActivity(r.Context(), tripID, date, body.Activity)
	if err != nil {
		respondError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteActivity handles DELETE /trips/{tripID}/activities/{activityID}?date=.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	activityID, err := activityIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		badRequest(w, "date query parameter is required")
		return
	}

	updated, err := s.trips.DeleteActivity(r.Context(), tripID, date, activityID)
	if err != nil {
		respondError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// reorderRequest names the day and the positions of a move.
type reorderRequest struct {
	Date string `json:"date"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

// ReorderActivities handles POST /trips/{tripID}/activities/reorder.
func (s *Server) ReorderActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var body reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "request body must be valid JSON")
		return
	}

	updated, err := s.trips.ReorderActivity(r.Context(), tripID, body.Date, body.From, body.To)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// activityIDParam parses the {activityID} path parameter.
func activityIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "activityID"))
	if err != nil {
		return uuid.Nil, errors.New("activity ID must be a valid UUID")
	}
	return id, nil
}
