package repo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/repo"
	"github.com/travelmaker/backend/internal/storage"
)

func sampleDays() []domain.NormalizedDay {
	return []domain.NormalizedDay{{
		DayIndex: 1,
		Date:     "2025-01-15",
		Activities: []domain.Activity{{
			StartTime: "09:00",
			EndTime:   "11:00",
			Category:  domain.CategorySightseeing,
			Content:   "Senso-ji temple",
			Cost:      0,
		}},
	}}
}

func TestSuggestionCache_RoundTripBeforeTTL(t *testing.T) {
	cache := repo.NewSuggestionCache(storage.NewMemoryStore(), 0)
	ctx := context.Background()

	entry := repo.SuggestionEntry{
		Itinerary: sampleDays(),
		Location:  "Tokyo",
		StartDate: "2025-01-15",
		EndDate:   "2025-01-17",
	}
	require.NoError(t, cache.Put(ctx, entry))

	got, ok, err := cache.Get(ctx, "Tokyo", "2025-01-15", "2025-01-17")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.Itinerary, got.Itinerary)
	assert.False(t, got.Timestamp.IsZero(), "Put stamps the entry")
}

// TestSuggestionCache_KeyIsExactTriple documents the quirk that the cache key
// is not normalized: "Tokyo" and "tokyo " are distinct entries.
func TestSuggestionCache_KeyIsExactTriple(t *testing.T) {
	cache := repo.NewSuggestionCache(storage.NewMemoryStore(), 0)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, repo.SuggestionEntry{
		Itinerary: sampleDays(),
		Location:  "Tokyo",
		StartDate: "2025-01-15",
		EndDate:   "2025-01-17",
	}))

	_, ok, err := cache.Get(ctx, "tokyo ", "2025-01-15", "2025-01-17")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSuggestionCache_ExpiredEntryEvictedOnRead(t *testing.T) {
	store := storage.NewMemoryStore()
	cache := repo.NewSuggestionCache(store, 7*24*time.Hour)
	ctx := context.Background()

	// Write an already-stale entry straight into the store.
	stale := repo.SuggestionEntry{
		Itinerary: sampleDays(),
		Timestamp: time.Now().Add(-8 * 24 * time.Hour),
		Location:  "Tokyo",
		StartDate: "2025-01-15",
		EndDate:   "2025-01-17",
	}
	raw, err := json.Marshal(stale)
	require.NoError(t, err)
	key := repo.SuggestionCacheKey("Tokyo", "2025-01-15", "2025-01-17")
	require.NoError(t, store.Set(ctx, key, raw))

	_, ok, err := cache.Get(ctx, "Tokyo", "2025-01-15", "2025-01-17")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must read as a miss")

	_, present, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, present, "expired entry must be evicted from the store")
}

func TestSuggestionCache_ListAndClear(t *testing.T) {
	cache := repo.NewSuggestionCache(storage.NewMemoryStore(), 0)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, repo.SuggestionEntry{
		Itinerary: sampleDays(), Location: "Tokyo", StartDate: "2025-01-15", EndDate: "2025-01-17",
	}))
	require.NoError(t, cache.Put(ctx, repo.SuggestionEntry{
		Itinerary: sampleDays(), Location: "Osaka", StartDate: "2025-02-01", EndDate: "2025-02-03",
	}))

	summaries, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.NotEmpty(t, summaries[0].CacheKey)

	require.NoError(t, cache.DeleteKey(ctx, summaries[0].CacheKey))
	summaries, err = cache.List(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	require.NoError(t, cache.Clear(ctx))
	summaries, err = cache.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
