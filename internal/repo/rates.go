package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/travelmaker/backend/internal/storage"
)

// ratesKey holds the single exchange-rate cache record.
const ratesKey = "exchange_rates_cache"

// RateCacheTTL is how long the whole rate record stays fresh. One shared
// timestamp covers every pair; the record expires as a unit, not per pair.
const RateCacheTTL = 24 * time.Hour

// rateRecord is the persisted shape: rates[from][to] = rate.
type rateRecord struct {
	Rates     map[string]map[string]float64 `json:"rates"`
	Timestamp time.Time                     `json:"timestamp"`
}

// RateCache persists fetched exchange rates with a 24h shared expiry.
type RateCache interface {
	// Rate returns the cached rate for the pair, or ok=false when the
	// record is stale or the pair is absent. A stale record is not evicted;
	// the next Merge overwrites it.
	Rate(ctx context.Context, from, to string) (float64, bool, error)

	// Merge stores the rate for the pair into the shared record, refreshing
	// the record's timestamp.
	Merge(ctx context.Context, from, to string, rate float64) error
}

type kvRateCache struct {
	store storage.Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewRateCache constructs a RateCache over the given store.
func NewRateCache(store storage.Store) RateCache {
	return &kvRateCache{store: store, now: time.Now}
}

func (c *kvRateCache) Rate(ctx context.Context, from, to string) (float64, bool, error) {
	raw, ok, err := c.store.Get(ctx, ratesKey)
	if err != nil {
		return 0, false, fmt.Errorf("repo.RateCache.Rate: %w", err)
	}
	if !ok {
		return 0, false, nil
	}

	var record rateRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return 0, false, nil
	}
	if c.now().Sub(record.Timestamp) >= RateCacheTTL {
		return 0, false, nil
	}

	rate, ok := record.Rates[from][to]
	return rate, ok, nil
}

func (c *kvRateCache) Merge(ctx context.Context, from, to string, rate float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	record := rateRecord{Rates: map[string]map[string]float64{}}
	if raw, ok, err := c.store.Get(ctx, ratesKey); err != nil {
		return fmt.Errorf("repo.RateCache.Merge: %w", err)
	} else if ok {
		// Keep existing pairs; a corrupt record is replaced wholesale.
		_ = json.Unmarshal(raw, &record)
		if record.Rates == nil {
			record.Rates = map[string]map[string]float64{}
		}
	}

	if record.Rates[from] == nil {
		record.Rates[from] = map[string]float64{}
	}
	record.Rates[from][to] = rate
	record.Timestamp = c.now().UTC()

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("repo.RateCache.Merge: encode: %w", err)
	}
	if err := c.store.Set(ctx, ratesKey, raw); err != nil {
		return fmt.Errorf("repo.RateCache.Merge: %w", err)
	}
	return nil
}
