package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/repo"
)

// Geocoder resolves a free-text location to coordinates, or nil when it
// cannot. Implementations never return an error; failure is a nil result.
type Geocoder interface {
	Resolve(ctx context.Context, location, hint string) *domain.Coordinates
}

// DistanceService computes the distances between consecutive activities of
// one itinerary day. Results are cached per (trip, date) and keyed to the
// trip's UpdatedAt, so any itinerary mutation invalidates them: a result
// computed against a version that is no longer current is discarded, never
// served.
type DistanceService struct {
	trips    repo.TripRepo
	geocoder Geocoder

	mu    sync.Mutex
	cache map[string]distanceCacheEntry
}

type distanceCacheEntry struct {
	version string
	legs    []domain.DistanceLeg
}

// NewDistanceService constructs a DistanceService.
func NewDistanceService(trips repo.TripRepo, geocoder Geocoder) *DistanceService {
	return &DistanceService{
		trips:    trips,
		geocoder: geocoder,
		cache:    make(map[string]distanceCacheEntry),
	}
}

// DayDistances returns one leg per adjacent activity pair on the given date.
// Legs degrade independently: a failed lookup marks only its own pair as
// unavailable and never blocks the rest of the day.
func (s *DistanceService) DayDistances(ctx context.Context, tripID uuid.UUID, date string) ([]domain.DistanceLeg, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DistanceService.DayDistances: %w", err)
	}
	version := trip.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000000000")
	cacheKey := tripID.String() + "|" + date

	s.mu.Lock()
	if entry, ok := s.cache[cacheKey]; ok && entry.version == version {
		legs := entry.legs
		s.mu.Unlock()
		return legs, nil
	}
	s.mu.Unlock()

	legs := s.computeLegs(ctx, trip, trip.Itinerary[date])

	// Discard results computed against a stale itinerary: if the trip moved
	// on while lookups were in flight, the caller gets the fresh-version
	// recomputation instead of a mix.
	current, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DistanceService.DayDistances: %w", err)
	}
	if !current.UpdatedAt.Equal(trip.UpdatedAt) {
		legs = s.computeLegs(ctx, current, current.Itinerary[date])
		version = current.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000000000")
	}

	s.mu.Lock()
	s.cache[cacheKey] = distanceCacheEntry{version: version, legs: legs}
	s.mu.Unlock()

	return legs, nil
}

// computeLegs resolves all pairs concurrently and joins the results, so one
// slow or failing lookup delays only its own leg.
func (s *DistanceService) computeLegs(ctx context.Context, trip domain.Trip, activities []domain.Activity) []domain.DistanceLeg {
	if len(activities) < 2 {
		return []domain.DistanceLeg{}
	}

	legs := make([]domain.DistanceLeg, len(activities)-1)
	var wg sync.WaitGroup
	for i := 0; i < len(activities)-1; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			legs[i] = s.legBetween(ctx, trip, activities[i], activities[i+1], i)
		}(i)
	}
	wg.Wait()

	return legs
}

// legBetween classifies and, when possible, computes one pair's distance.
func (s *DistanceService) legBetween(ctx context.Context, trip domain.Trip, from, to domain.Activity, index int) domain.DistanceLeg {
	leg := domain.DistanceLeg{FromIndex: index}

	if strings.TrimSpace(from.Location) == "" || strings.TrimSpace(to.Location) == "" {
		leg.Status = domain.DistanceInsufficientData
		return leg
	}

	// Exact string match skips geocoding entirely. Deliberately not
	// normalized: matching the stored behavior, "Ginza" and "ginza " are
	// different locations for this check.
	if from.Location == to.Location {
		leg.Status = domain.DistanceSameLocation
		leg.Label = "0 km"
		return leg
	}

	fromCoord := s.geocoder.Resolve(ctx, from.Location, trip.Location)
	toCoord := s.geocoder.Resolve(ctx, to.Location, trip.Location)
	if fromCoord == nil || toCoord == nil {
		leg.Status = domain.DistanceUnavailable
		return leg
	}

	leg.Status = domain.DistanceComputed
	leg.Km = domain.HaversineKm(*fromCoord, *toCoord)
	leg.Label = domain.FormatDistance(leg.Km)
	return leg
}
