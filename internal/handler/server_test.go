package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/travelmaker/backend/internal/currency"
	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/handler"
	"github.com/travelmaker/backend/internal/repo"
	"github.com/travelmaker/backend/internal/storage"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create         func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list           func(ctx context.Context) ([]domain.Trip, error)
	update         func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete         func(ctx context.Context, id uuid.UUID) error
	addActivity    func(ctx context.Context, tripID uuid.UUID, date string, a domain.Activity) (domain.Trip, error)
	updateActivity func(ctx context.Context, tripID uuid.UUID, date string, a domain.Activity) (domain.Trip, error)
	deleteActivity func(ctx context.Context, tripID uuid.UUID, date string, activityID uuid.UUID) (domain.Trip, error)
	reorder        func(ctx context.Context, tripID uuid.UUID, date string, from, to int) (domain.Trip, error)
	merge          func(ctx context.Context, tripID uuid.UUID, days []domain.NormalizedDay, c *domain.CurrencyInfo) (domain.Trip, int, error)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) AddActivity(ctx context.Context, tripID uuid.UUID, date string, a domain.Activity) (domain.Trip, error) {
	return m.addActivity(ctx, tripID, date, a)
}
func (m *mockTripServicer) UpdateActivity(ctx context.Context, tripID uuid.UUID, date string, a domain.Activity) (domain.Trip, error) {
	return m.updateActivity(ctx, tripID, date, a)
}
func (m *mockTripServicer) DeleteActivity(ctx context.Context, tripID uuid.UUID, date string, activityID uuid.UUID) (domain.Trip, error) {
	return m.deleteActivity(ctx, tripID, date, activityID)
}
func (m *mockTripServicer) ReorderActivity(ctx context.Context, tripID uuid.UUID, date string, from, to int) (domain.Trip, error) {
	return m.reorder(ctx, tripID, date, from, to)
}
func (m *mockTripServicer) MergeSuggestions(ctx context.Context, tripID uuid.UUID, days []domain.NormalizedDay, c *domain.CurrencyInfo) (domain.Trip, int, error) {
	return m.merge(ctx, tripID, days, c)
}

// mockSuggester is a test double for handler.Suggester.
type mockSuggester struct {
	generate     func(ctx context.Context, tripID uuid.UUID, refresh bool) (domain.SuggestionResult, error)
	cachedList   func(ctx context.Context) ([]repo.SuggestionCacheSummary, error)
	deleteCached func(ctx context.Context, cacheKey string) error
	clearCached  func(ctx context.Context) error
}

var _ handler.Suggester = (*mockSuggester)(nil)

func (m *mockSuggester) Generate(ctx context.Context, tripID uuid.UUID, refresh bool) (domain.SuggestionResult, error) {
	return m.generate(ctx, tripID, refresh)
}
func (m *mockSuggester) CachedList(ctx context.Context) ([]repo.SuggestionCacheSummary, error) {
	return m.cachedList(ctx)
}
func (m *mockSuggester) DeleteCached(ctx context.Context, cacheKey string) error {
	return m.deleteCached(ctx, cacheKey)
}
func (m *mockSuggester) ClearCached(ctx context.Context) error {
	return m.clearCached(ctx)
}

// mockDistanceServicer is a test double for handler.DistanceServicer.
type mockDistanceServicer struct {
	dayDistances func(ctx context.Context, tripID uuid.UUID, date string) ([]domain.DistanceLeg, error)
}

var _ handler.DistanceServicer = (*mockDistanceServicer)(nil)

func (m *mockDistanceServicer) DayDistances(ctx context.Context, tripID uuid.UUID, date string) ([]domain.DistanceLeg, error) {
	return m.dayDistances(ctx, tripID, date)
}

// mockCurrencyServicer is a test double for handler.CurrencyServicer.
type mockCurrencyServicer struct {
	display func(trip domain.Trip) domain.CurrencyInfo
	rate    func(ctx context.Context, from, to string) (float64, error)
}

var _ handler.CurrencyServicer = (*mockCurrencyServicer)(nil)

func (m *mockCurrencyServicer) DisplayCurrency(trip domain.Trip) domain.CurrencyInfo {
	return m.display(trip)
}
func (m *mockCurrencyServicer) Rate(ctx context.Context, from, to string) (float64, error) {
	return m.rate(ctx, from, to)
}
func (m *mockCurrencyServicer) FormatCost(cost float64, local domain.CurrencyInfo, rate float64) currency.CostBreakdown {
	return currency.CostBreakdown{LocalValue: cost, HomeValue: cost * rate, Rate: rate}
}

// mockExporter is a test double for handler.Exporter.
type mockExporter struct {
	export func(ctx context.Context, id uuid.UUID) ([]byte, error)
}

var _ handler.Exporter = (*mockExporter)(nil)

func (m *mockExporter) ExportPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return m.export(ctx, id)
}

// mockGeocoder is a test double for handler.GeocodeResolver.
type mockGeocoder struct {
	resolve func(ctx context.Context, location, hint string) *domain.Coordinates
}

var _ handler.GeocodeResolver = (*mockGeocoder)(nil)

func (m *mockGeocoder) Resolve(ctx context.Context, location, hint string) *domain.Coordinates {
	return m.resolve(ctx, location, hint)
}

// serverMocks bundles every dependency double so each test overrides only
// what it exercises.
type serverMocks struct {
	trips       *mockTripServicer
	suggestions *mockSuggester
	distances   *mockDistanceServicer
	currencies  *mockCurrencyServicer
	exporter    *mockExporter
	geocoder    *mockGeocoder
	images      repo.ImageRepo
}

// newTestServer wires a Server with fresh mocks into its router, mirroring
// how main.go wires it in production. The image repo is real, over an
// in-memory store.
func newTestServer(t *testing.T) (*serverMocks, http.Handler) {
	t.Helper()
	m := &serverMocks{
		trips:       &mockTripServicer{},
		suggestions: &mockSuggester{},
		distances:   &mockDistanceServicer{},
		currencies:  &mockCurrencyServicer{},
		exporter:    &mockExporter{},
		geocoder:    &mockGeocoder{},
		images:      repo.NewImageRepo(storage.NewMemoryStore()),
	}
	srv := handler.NewServer(m.trips, m.suggestions, m.distances, m.currencies, m.exporter, m.geocoder, m.images)
	return m, srv.Routes()
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:           uuid.New(),
		Location:     "Tokyo, Japan",
		StartDate:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		Participants: []string{"Alex", "Sam"},
		Itinerary:    domain.Itinerary{},
		Emoji:        "🇯🇵",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeError reads an ErrorResponse body.
func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}
