// Package geo resolves free-text location names to coordinates through a
// Nominatim-style place-search endpoint, with an in-memory cache that also
// remembers failed lookups so they are never retried.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/travelmaker/backend/internal/domain"
)

// Client looks up coordinates via GET <base>/search?format=json&limit=1&q=.
// A lookup never returns an error to the caller: any network or parse
// failure behaves as "no result", and negative results are cached so
// repeated failures stay free.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string]*cacheEntry
}

// cacheEntry distinguishes "cached as unresolvable" (coord == nil) from
// "not cached at all" (no entry).
type cacheEntry struct {
	coord *domain.Coordinates
}

// searchResult is the wire shape of one endpoint result. Lat/lon arrive as
// strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewClient constructs a Client for the given search endpoint base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: make(map[string]*cacheEntry),
	}
}

// Resolve looks up location, falling back to "<location> <hint>" when the
// primary query yields nothing and a hint is given. The fallback's result is
// cached under the original location's key so later lookups for the bare
// name stay free. Returns nil when the location cannot be resolved.
func (c *Client) Resolve(ctx context.Context, location, hint string) *domain.Coordinates {
	normalized := strings.ToLower(strings.TrimSpace(location))
	if normalized == "" {
		return nil
	}

	c.mu.Lock()
	if entry, ok := c.cache[normalized]; ok {
		c.mu.Unlock()
		return entry.coord
	}
	c.mu.Unlock()

	coord := c.search(ctx, location)

	if coord == nil && hint != "" {
		fallback := location + " " + hint
		normalizedFallback := strings.ToLower(fallback)

		c.mu.Lock()
		entry, ok := c.cache[normalizedFallback]
		c.mu.Unlock()
		if ok {
			return entry.coord
		}

		coord = c.search(ctx, fallback)
	}

	c.mu.Lock()
	c.cache[normalized] = &cacheEntry{coord: coord}
	c.mu.Unlock()

	return coord
}

// search performs one query against the endpoint. Every failure mode
// collapses to nil.
func (c *Client) search(ctx context.Context, query string) *domain.Coordinates {
	u := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.DebugContext(ctx, "geocoding lookup failed", "query", query, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil
	}

	return &domain.Coordinates{Lat: lat, Lng: lng}
}
