// Package service contains the business logic for the TravelMaker API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No storage access lives here — services depend on repo interfaces,
// not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/repo"
)

// TripService implements business logic for Trip and itinerary operations.
type TripService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r, now: time.Now}
}

// Create validates and persists a new trip. The ID, emoji, and timestamps
// are assigned here; an empty itinerary map is always initialized so later
// operations never see nil.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Participants = trimAll(trip.Participants)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	trip.ID = uuid.New()
	trip.Emoji = domain.LocationEmoji(trip.Location)
	trip.CreatedAt = s.now().UTC()
	if trip.Itinerary == nil {
		trip.Itinerary = domain.Itinerary{}
	}

	created, err := s.repo.Upsert(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips. Always returns a non-nil slice so callers can
// safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and persists changes to an existing trip's own fields.
// The itinerary is carried over from the stored record; activity mutations
// go through the dedicated activity operations.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Participants = trimAll(trip.Participants)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	stored, err := s.repo.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	stored.Location = trip.Location
	stored.StartDate = trip.StartDate
	stored.EndDate = trip.EndDate
	stored.Participants = trip.Participants
	stored.Emoji = domain.LocationEmoji(trip.Location)

	updated, err := s.repo.Upsert(ctx, stored)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to Create and Update.
//   - Location must be non-empty (whitespace-only is rejected).
//   - At least one participant is required.
//   - EndDate must not be before StartDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if len(trip.Participants) == 0 {
		return fmt.Errorf("%w: at least one participant is required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}

// trimAll trims each participant name and drops entries that normalize to empty.
func trimAll(names []string) []string {
	var out []string
	for _, n := range names {
		if t := strings.TrimSpace(n); t != "" {
			out = append(out, t)
		}
	}
	return out
}
