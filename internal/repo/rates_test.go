package repo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmaker/backend/internal/repo"
	"github.com/travelmaker/backend/internal/storage"
)

func TestRateCache_MergeAndRead(t *testing.T) {
	cache := repo.NewRateCache(storage.NewMemoryStore())
	ctx := context.Background()

	_, ok, err := cache.Rate(ctx, "JPY", "TWD")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Merge(ctx, "JPY", "TWD", 0.21))

	rate, ok, err := cache.Rate(ctx, "JPY", "TWD")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.21, rate)
}

func TestRateCache_MergeKeepsOtherPairs(t *testing.T) {
	cache := repo.NewRateCache(storage.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, cache.Merge(ctx, "JPY", "TWD", 0.21))
	require.NoError(t, cache.Merge(ctx, "USD", "TWD", 31.5))

	rate, ok, err := cache.Rate(ctx, "JPY", "TWD")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.21, rate)
}

// TestRateCache_WholeRecordExpires verifies the shared-timestamp policy:
// once the record is older than 24h every pair misses, not just stale ones.
func TestRateCache_WholeRecordExpires(t *testing.T) {
	store := storage.NewMemoryStore()
	cache := repo.NewRateCache(store)
	ctx := context.Background()

	record := map[string]any{
		"rates":     map[string]any{"JPY": map[string]any{"TWD": 0.21}},
		"timestamp": time.Now().Add(-25 * time.Hour),
	}
	raw, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "exchange_rates_cache", raw))

	_, ok, err := cache.Rate(ctx, "JPY", "TWD")
	require.NoError(t, err)
	assert.False(t, ok, "stale record must miss for every pair")
}
