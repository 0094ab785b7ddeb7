// Package repo contains all persistence access for the TravelMaker backend.
// Each resource has its own file with an interface and a key-value
// implementation over storage.Store. No business logic lives here — only
// serialization and key management.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/storage"
)

// tripsKey holds the whole trip collection as one JSON array, mirroring the
// original single-record layout. Read-modify-write at collection granularity;
// a single writer is assumed and last write wins.
const tripsKey = "trips"

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// List returns all trips in stored (insertion) order.
	List(ctx context.Context) ([]domain.Trip, error)

	// GetByID retrieves a single trip.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// Upsert replaces the trip with the same ID, or appends it when new,
	// and returns the persisted record with UpdatedAt refreshed.
	Upsert(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// kvTripRepo stores the collection under a single key.
type kvTripRepo struct {
	store storage.Store
	now   func() time.Time

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// NewTripRepo constructs a TripRepo over the given store.
func NewTripRepo(store storage.Store) TripRepo {
	return &kvTripRepo{store: store, now: time.Now}
}

func (r *kvTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

func (r *kvTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trips, err := r.load(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	for _, t := range trips {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
}

func (r *kvTripRepo) Upsert(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trips, err := r.load(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Upsert: %w", err)
	}

	trip.UpdatedAt = r.now().UTC()
	replaced := false
	for i, t := range trips {
		if t.ID == trip.ID {
			trips[i] = trip
			replaced = true
			break
		}
	}
	if !replaced {
		trips = append(trips, trip)
	}

	if err := r.save(ctx, trips); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Upsert: %w", err)
	}
	return trip, nil
}

func (r *kvTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trips, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}

	kept := trips[:0]
	for _, t := range trips {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(trips) {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}

	if err := r.save(ctx, kept); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

// load reads and decodes the whole collection. Missing key means no trips
// yet. Activities persisted without an ID (old data) are backfilled with a
// fresh UUID; the backfill reaches storage on the next save.
func (r *kvTripRepo) load(ctx context.Context) ([]domain.Trip, error) {
	raw, ok, err := r.store.Get(ctx, tripsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Trip{}, nil
	}

	var trips []domain.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		return nil, fmt.Errorf("decode trips: %w", err)
	}

	for ti := range trips {
		if trips[ti].Itinerary == nil {
			trips[ti].Itinerary = domain.Itinerary{}
		}
		for date, activities := range trips[ti].Itinerary {
			for ai := range activities {
				if activities[ai].ID == uuid.Nil {
					activities[ai].ID = uuid.New()
				}
			}
			trips[ti].Itinerary[date] = activities
		}
	}

	return trips, nil
}

func (r *kvTripRepo) save(ctx context.Context, trips []domain.Trip) error {
	raw, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("encode trips: %w", err)
	}
	return r.store.Set(ctx, tripsKey, raw)
}
