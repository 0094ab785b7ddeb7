package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmaker/backend/internal/geo"
)

// fakeSearch serves canned Nominatim-style responses and counts requests.
type fakeSearch struct {
	requests atomic.Int64
	// responses maps the q= parameter to a JSON body.
	responses map[string]string
}

func (f *fakeSearch) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		q := r.URL.Query().Get("q")
		body, ok := f.responses[q]
		if !ok {
			body = "[]"
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

const tokyoTowerJSON = `[{"lat":"35.6586","lon":"139.7454","display_name":"Tokyo Tower"}]`

func TestClient_Resolve_PrimaryHit(t *testing.T) {
	f := &fakeSearch{responses: map[string]string{"Tokyo Tower": tokyoTowerJSON}}
	srv := httptest.NewServer(f.handler())
	defer srv.Close()

	c := geo.NewClient(srv.URL)
	coord := c.Resolve(context.Background(), "Tokyo Tower", "")

	require.NotNil(t, coord)
	assert.InDelta(t, 35.6586, coord.Lat, 1e-6)
	assert.InDelta(t, 139.7454, coord.Lng, 1e-6)
	assert.Equal(t, int64(1), f.requests.Load())
}

func TestClient_Resolve_CachesPositiveResult(t *testing.T) {
	f := &fakeSearch{responses: map[string]string{"Tokyo Tower": tokyoTowerJSON}}
	srv := httptest.NewServer(f.handler())
	defer srv.Close()

	c := geo.NewClient(srv.URL)
	first := c.Resolve(context.Background(), "Tokyo Tower", "")
	second := c.Resolve(context.Background(), "  tokyo tower ", "")

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
	assert.Equal(t, int64(1), f.requests.Load(), "normalized key must hit the cache")
}

func TestClient_Resolve_CachesNegativeResult(t *testing.T) {
	f := &fakeSearch{responses: map[string]string{}}
	srv := httptest.NewServer(f.handler())
	defer srv.Close()

	c := geo.NewClient(srv.URL)
	assert.Nil(t, c.Resolve(context.Background(), "nowhere in particular", ""))
	assert.Nil(t, c.Resolve(context.Background(), "nowhere in particular", ""))

	assert.Equal(t, int64(1), f.requests.Load(), "failed lookups must not be retried")
}

func TestClient_Resolve_FallbackWithHint(t *testing.T) {
	f := &fakeSearch{responses: map[string]string{
		"Ichiran Tokyo": `[{"lat":"35.6595","lon":"139.7005"}]`,
	}}
	srv := httptest.NewServer(f.handler())
	defer srv.Close()

	c := geo.NewClient(srv.URL)
	coord := c.Resolve(context.Background(), "Ichiran", "Tokyo")

	require.NotNil(t, coord, "fallback query should resolve the bare shop name")
	assert.Equal(t, int64(2), f.requests.Load(), "primary miss then fallback hit")

	// The fallback result is cached under the original location's key.
	again := c.Resolve(context.Background(), "Ichiran", "Tokyo")
	require.NotNil(t, again)
	assert.Equal(t, int64(2), f.requests.Load())
}

func TestClient_Resolve_EmptyLocation(t *testing.T) {
	f := &fakeSearch{}
	srv := httptest.NewServer(f.handler())
	defer srv.Close()

	c := geo.NewClient(srv.URL)
	assert.Nil(t, c.Resolve(context.Background(), "   ", "Tokyo"))
	assert.Equal(t, int64(0), f.requests.Load())
}

func TestClient_Resolve_ServerErrorIsNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := geo.NewClient(srv.URL)
	assert.Nil(t, c.Resolve(context.Background(), "Tokyo Tower", ""))
}

func TestClient_Resolve_MalformedBodyIsNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	c := geo.NewClient(srv.URL)
	assert.Nil(t, c.Resolve(context.Background(), "Tokyo Tower", ""))
}
