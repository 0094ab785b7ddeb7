package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/repo"
	"github.com/travelmaker/backend/internal/service"
	"github.com/travelmaker/backend/internal/storage"
)

// newTripService wires a TripService over an in-memory store, returning the
// repo as well so tests can seed or inspect stored state directly.
func newTripService(t *testing.T) (*service.TripService, repo.TripRepo) {
	t.Helper()
	r := repo.NewTripRepo(storage.NewMemoryStore())
	return service.NewTripService(r), r
}

func tripInput() domain.Trip {
	return domain.Trip{
		Location:     "Tokyo, Japan",
		StartDate:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		Participants: []string{"Alex", "Sam"},
	}
}

func TestTripService_Create(t *testing.T) {
	svc, _ := newTripService(t)

	created, err := svc.Create(context.Background(), tripInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotEmpty(t, created.Emoji)
	assert.NotNil(t, created.Itinerary)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
}

func TestTripService_Create_TrimsParticipants(t *testing.T) {
	svc, _ := newTripService(t)

	input := tripInput()
	input.Participants = []string{"  Alex  ", "", "   ", "Sam"}

	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex", "Sam"}, created.Participants)
}

func TestTripService_Create_Validation(t *testing.T) {
	svc, _ := newTripService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.Trip)
	}{
		{"empty location", func(tr *domain.Trip) { tr.Location = "   " }},
		{"no participants", func(tr *domain.Trip) { tr.Participants = nil }},
		{"whitespace-only participants", func(tr *domain.Trip) { tr.Participants = []string{"  ", ""} }},
		{"end before start", func(tr *domain.Trip) { tr.EndDate = tr.StartDate.AddDate(0, 0, -1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tripInput()
			tt.mutate(&input)

			_, err := svc.Create(ctx, input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Update_CarriesItineraryOver(t *testing.T) {
	svc, _ := newTripService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, tripInput())
	require.NoError(t, err)

	date := "2025-04-01"
	_, err = svc.AddActivity(ctx, created.ID, date, domain.Activity{
		Content: "Tsukiji market", StartTime: "09:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	// An update carrying no itinerary must not wipe the stored one.
	patch := created
	patch.Location = "Kyoto, Japan"
	patch.Itinerary = nil

	updated, err := svc.Update(ctx, patch)
	require.NoError(t, err)
	assert.Equal(t, "Kyoto, Japan", updated.Location)
	require.Len(t, updated.Itinerary[date], 1)
	assert.Equal(t, "Tsukiji market", updated.Itinerary[date][0].Content)
}

func TestTripService_Update_RefreshesEmoji(t *testing.T) {
	svc, _ := newTripService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, tripInput())
	require.NoError(t, err)

	patch := created
	patch.Location = "Paris, France"

	updated, err := svc.Update(ctx, patch)
	require.NoError(t, err)
	assert.Equal(t, domain.LocationEmoji("Paris, France"), updated.Emoji)
}

func TestTripService_GetByID_NotFound(t *testing.T) {
	svc, _ := newTripService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_NeverNil(t *testing.T) {
	svc, _ := newTripService(t)

	trips, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Empty(t, trips)
}

func TestTripService_Delete(t *testing.T) {
	svc, _ := newTripService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, tripInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
