package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/storage"
)

// suggestionKeyPrefix namespaces cached AI responses in the store.
const suggestionKeyPrefix = "ai_itinerary_cache_"

// DefaultSuggestionTTL is how long a cached AI response stays valid.
const DefaultSuggestionTTL = 30 * 24 * time.Hour

// SuggestionEntry is the persisted shape of one cached AI response.
// JSON field names match the stored record layout.
type SuggestionEntry struct {
	Itinerary []domain.NormalizedDay `json:"itinerary"`
	Timestamp time.Time              `json:"timestamp"`
	Location  string                 `json:"location"`
	StartDate string                 `json:"startDate"`
	EndDate   string                 `json:"endDate"`
	Currency  *domain.CurrencyInfo   `json:"currency,omitempty"`
}

// SuggestionCacheSummary describes one cache entry without its payload,
// for the cached-suggestions listing.
type SuggestionCacheSummary struct {
	CacheKey  string    `json:"cache_key"`
	Location  string    `json:"location"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Timestamp time.Time `json:"timestamp"`
}

// SuggestionCache caches normalized AI responses keyed by the exact
// (location, start date, end date) triple. The key is deliberately not
// normalized: "Tokyo" and "tokyo " are distinct entries.
type SuggestionCache interface {
	// Get returns the cached entry for the triple, or ok=false on a miss.
	// An entry past its TTL is evicted and reported as a miss.
	Get(ctx context.Context, location, startDate, endDate string) (SuggestionEntry, bool, error)

	// Put stores an entry for the triple, stamping it with the current time.
	// Callers only write after successful normalization.
	Put(ctx context.Context, entry SuggestionEntry) error

	// List returns summaries of every cached entry, including expired ones
	// (expiry is enforced lazily on Get).
	List(ctx context.Context) ([]SuggestionCacheSummary, error)

	// DeleteKey removes one entry by its cache key.
	DeleteKey(ctx context.Context, cacheKey string) error

	// Clear removes every cached entry.
	Clear(ctx context.Context) error
}

type kvSuggestionCache struct {
	store storage.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewSuggestionCache constructs a SuggestionCache with the given TTL.
// A non-positive ttl falls back to DefaultSuggestionTTL.
func NewSuggestionCache(store storage.Store, ttl time.Duration) SuggestionCache {
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	return &kvSuggestionCache{store: store, ttl: ttl, now: time.Now}
}

// SuggestionCacheKey builds the storage key for a triple. Exported so
// handlers can echo it in listings.
func SuggestionCacheKey(location, startDate, endDate string) string {
	return fmt.Sprintf("%s%s_%s_%s", suggestionKeyPrefix, location, startDate, endDate)
}

func (c *kvSuggestionCache) Get(ctx context.Context, location, startDate, endDate string) (SuggestionEntry, bool, error) {
	key := SuggestionCacheKey(location, startDate, endDate)

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return SuggestionEntry{}, false, fmt.Errorf("repo.SuggestionCache.Get: %w", err)
	}
	if !ok {
		return SuggestionEntry{}, false, nil
	}

	var entry SuggestionEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry behaves like a miss; drop it so the next write is clean.
		_ = c.store.Delete(ctx, key)
		return SuggestionEntry{}, false, nil
	}

	if c.now().Sub(entry.Timestamp) > c.ttl {
		if err := c.store.Delete(ctx, key); err != nil {
			return SuggestionEntry{}, false, fmt.Errorf("repo.SuggestionCache.Get: evict: %w", err)
		}
		return SuggestionEntry{}, false, nil
	}

	return entry, true, nil
}

func (c *kvSuggestionCache) Put(ctx context.Context, entry SuggestionEntry) error {
	entry.Timestamp = c.now().UTC()

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("repo.SuggestionCache.Put: encode: %w", err)
	}

	key := SuggestionCacheKey(entry.Location, entry.StartDate, entry.EndDate)
	if err := c.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("repo.SuggestionCache.Put: %w", err)
	}
	return nil
}

func (c *kvSuggestionCache) List(ctx context.Context) ([]SuggestionCacheSummary, error) {
	keys, err := c.store.List(ctx, suggestionKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("repo.SuggestionCache.List: %w", err)
	}

	summaries := make([]SuggestionCacheSummary, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := c.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("repo.SuggestionCache.List: %w", err)
		}
		if !ok {
			continue
		}
		var entry SuggestionEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		summaries = append(summaries, SuggestionCacheSummary{
			CacheKey:  key,
			Location:  entry.Location,
			StartDate: entry.StartDate,
			EndDate:   entry.EndDate,
			Timestamp: entry.Timestamp,
		})
	}
	return summaries, nil
}

func (c *kvSuggestionCache) DeleteKey(ctx context.Context, cacheKey string) error {
	if err := c.store.Delete(ctx, cacheKey); err != nil {
		return fmt.Errorf("repo.SuggestionCache.DeleteKey: %w", err)
	}
	return nil
}

func (c *kvSuggestionCache) Clear(ctx context.Context) error {
	keys, err := c.store.List(ctx, suggestionKeyPrefix)
	if err != nil {
		return fmt.Errorf("repo.SuggestionCache.Clear: %w", err)
	}
	for _, key := range keys {
		if err := c.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("repo.SuggestionCache.Clear: %w", err)
		}
	}
	return nil
}
