package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/travelmaker/backend/internal/domain"
)

// AddActivity validates and appends an activity to the given date's list.
// A missing activity ID is assigned here. Returns the updated trip.
func (s *TripService) AddActivity(ctx context.Context, tripID uuid.UUID, date string, activity domain.Activity) (domain.Trip, error) {
	if err := validateDate(date); err != nil {
		return domain.Trip{}, err
	}
	if err := validateActivity(activity); err != nil {
		return domain.Trip{}, err
	}

	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddActivity: %w", err)
	}

	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	activity.Category = domain.ParseCategory(string(activity.Category))
	trip.Itinerary[date] = append(trip.Itinerary[date], activity)

	updated, err := s.repo.Upsert(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AddActivity: %w", err)
	}
	return updated, nil
}

// UpdateActivity validates and replaces the activity with the same ID on the
// given date, keeping its position in the list.
func (s *TripService) UpdateActivity(ctx context.Context, tripID uuid.UUID, date string, activity domain.Activity) (domain.Trip, error) {
	if err := validateDate(date); err != nil {
		return domain.Trip{}, err
	}
	if err := validateActivity(activity); err != nil {
		return domain.Trip{}, err
	}

	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateActivity: %w", err)
	}

	activities := trip.Itinerary[date]
	found := false
	for i, a := range activities {
		if a.ID == activity.ID {
			activity.Category = domain.ParseCategory(string(activity.Category))
			activities[i] = activity
			found = true
			break
		}
	}
	if !found {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateActivity: %w", domain.ErrNotFound)
	}
	trip.Itinerary[date] = activities

	updated, err := s.repo.Upsert(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateActivity: %w", err)
	}
	return updated, nil
}

// DeleteActivity removes the activity with the given ID from the date's list.
func (s *TripService) DeleteActivity(ctx context.Context, tripID uuid.UUID, date string, activityID uuid.UUID) (domain.Trip, error) {
	if err := validateDate(date); err != nil {
		return domain.Trip{}, err
	}

	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.DeleteActivity: %w", err)
	}

	activities := trip.Itinerary[date]
	kept := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if a.ID != activityID {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(activities) {
		return domain.Trip{}, fmt.Errorf("service.TripService.DeleteActivity: %w", domain.ErrNotFound)
	}
	trip.Itinerary[date] = kept

	updated, err := s.repo.Upsert(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.DeleteActivity: %w", err)
	}
	return updated, nil
}

// ReorderActivity moves the activity at position from to position to within
// the date's list. The move changes only position: every activity keeps its
// own time fields, and the list is deliberately not re-sorted by time.
func (s *TripService) ReorderActivity(ctx context.Context, tripID uuid.UUID, date string, from, to int) (domain.Trip, error) {
	if err := validateDate(date); err != nil {
		return domain.Trip{}, err
	}

	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.ReorderActivity: %w", err)
	}

	activities := trip.Itinerary[date]
	if from < 0 || from >= len(activities) || to < 0 || to >= len(activities) {
		return domain.Trip{}, fmt.Errorf("%w: reorder position out of range", domain.ErrValidation)
	}

	moved := activities[from]
	activities = append(activities[:from], activities[from+1:]...)
	activities = append(activities[:to], append([]domain.Activity{moved}, activities[to:]...)...)
	trip.Itinerary[date] = activities

	updated, err := s.repo.Upsert(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.ReorderActivity: %w", err)
	}
	return updated, nil
}

// MergeSuggestions appends normalized AI activities into their dates, each
// with a fresh ID. Days whose date is empty are skipped. When the trip has
// no cached currency yet and the suggestion metadata carries one, it is set
// here — the first accept wins, later merges never overwrite it.
// Returns the updated trip and the number of activities added.
func (s *TripService) MergeSuggestions(ctx context.Context, tripID uuid.UUID, days []domain.NormalizedDay, currency *domain.CurrencyInfo) (domain.Trip, int, error) {
	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, 0, fmt.Errorf("service.TripService.MergeSuggestions: %w", err)
	}

	added := 0
	for _, day := range days {
		if day.Date == "" {
			continue
		}
		for _, activity := range day.Activities {
			activity.ID = uuid.New()
			activity.Category = domain.ParseCategory(string(activity.Category))
			trip.Itinerary[day.Date] = append(trip.Itinerary[day.Date], activity)
			added++
		}
	}

	if trip.Currency == nil && currency != nil {
		trip.Currency = currency
	}

	if added == 0 && trip.Currency == nil {
		return trip, 0, nil
	}

	updated, err := s.repo.Upsert(ctx, trip)
	if err != nil {
		return domain.Trip{}, 0, fmt.Errorf("service.TripService.MergeSuggestions: %w", err)
	}
	return updated, added, nil
}

// validateDate rejects date keys that are not calendar dates.
func validateDate(date string) error {
	if _, err := time.Parse(domain.DateKey, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return nil
}

// validateActivity enforces the activity business rules.
//   - Content must be non-empty.
//   - Start and end times must be HH:MM.
//   - End time must be strictly after start time.
func validateActivity(a domain.Activity) error {
	if strings.TrimSpace(a.Content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	start, err := time.Parse("15:04", a.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start time must be HH:MM", domain.ErrValidation)
	}
	end, err := time.Parse("15:04", a.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end time must be HH:MM", domain.ErrValidation)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end time must be after start time", domain.ErrValidation)
	}
	return nil
}
