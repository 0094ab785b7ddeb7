// Package handler implements the HTTP handlers for the TravelMaker API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/travelmaker/backend/internal/currency"
	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/middleware"
	"github.com/travelmaker/backend/internal/repo"
)

// TripServicer defines the business operations the trip and activity
// handlers depend on. Defining the interface here (in the consumer package)
// follows the Go convention: "accept interfaces, return concrete types". It
// lets handler tests inject a mock without touching the service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddActivity(ctx context.Context, tripID uuid.UUID, date string, activity domain.Activity) (domain.Trip, error)
	UpdateActivity(ctx context.Context, tripID uuid.UUID, date string, activity domain.Activity) (domain.Trip, error)
	DeleteActivity(ctx context.Context, tripID uuid.UUID, date string, activityID uuid.UUID) (domain.Trip, error)
	ReorderActivity(ctx context.Context, tripID uuid.UUID, date string, from, to int) (domain.Trip, error)
	MergeSuggestions(ctx context.Context, tripID uuid.UUID, days []domain.NormalizedDay, currency *domain.CurrencyInfo) (domain.Trip, int, error)
}

// Suggester defines the AI suggestion operations the handler depends on.
type Suggester interface {
	Generate(ctx context.Context, tripID uuid.UUID, refresh bool) (domain.SuggestionResult, error)
	CachedList(ctx context.Context) ([]repo.SuggestionCacheSummary, error)
	DeleteCached(ctx context.Context, cacheKey string) error
	ClearCached(ctx context.Context) error
}

// DistanceServicer defines the day-distance operations the handler depends on.
type DistanceServicer interface {
	DayDistances(ctx context.Context, tripID uuid.UUID, date string) ([]domain.DistanceLeg, error)
}

// CurrencyServicer defines the currency operations the handler depends on.
type CurrencyServicer interface {
	DisplayCurrency(trip domain.Trip) domain.CurrencyInfo
	Rate(ctx context.Context, from, to string) (float64, error)
	FormatCost(cost float64, local domain.CurrencyInfo, rate float64) currency.CostBreakdown
}

// Exporter defines the PDF export operation the handler depends on.
type Exporter interface {
	ExportPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// GeocodeResolver resolves a free-text location to coordinates, or nil when
// it cannot. Lookup failure is a nil result, never an error.
type GeocodeResolver interface {
	Resolve(ctx context.Context, location, hint string) *domain.Coordinates
}

// Server holds the dependencies for all API endpoints. Methods are in
// domain-specific files but all operate on this struct.
type Server struct {
	trips       TripServicer
	suggestions Suggester
	distances   DistanceServicer
	currencies  CurrencyServicer
	exporter    Exporter
	geocoder    GeocodeResolver
	images      repo.ImageRepo
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	suggestions Suggester,
	distances DistanceServicer,
	currencies CurrencyServicer,
	exporter Exporter,
	geocoder GeocodeResolver,
	images repo.ImageRepo,
) *Server {
	return &Server{
		trips:       trips,
		suggestions: suggestions,
		distances:   distances,
		currencies:  currencies,
		exporter:    exporter,
		geocoder:    geocoder,
		images:      images,
	}
}

// Routes mounts every endpoint on a fresh chi router. Wire it in main.go
// under the globally applied middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Post("/activities", s.AddActivity)
			r.Put("/activities/{activityID}", s.UpdateActivity)
			r.Delete("/activities/{activityID}", s.DeleteActivity)
			r.Post("/activities/reorder", s.ReorderActivities)

			r.Get("/days/{date}/distances", s.DayDistances)
			r.Get("/currency", s.TripCurrency)
			r.Get("/export.pdf", s.ExportTripPDF)

			r.Post("/suggestions", s.GenerateSuggestions)
			r.Post("/suggestions/accept", s.AcceptSuggestions)
		})
	})

	r.Get("/suggestions/cache", s.ListSuggestionCache)
	r.Delete("/suggestions/cache", s.ClearSuggestionCache)
	r.Delete("/suggestions/cache/{key}", s.DeleteSuggestionCacheEntry)

	r.Get("/exchange-rate", s.ExchangeRate)
	r.Get("/geocode", s.Geocode)

	r.Route("/images/{location}", func(r chi.Router) {
		r.Get("/", s.GetImage)
		r.With(middleware.NewMaxBodySizeHandler(imageBodyLimit)).Put("/", s.PutImage)
		r.Delete("/", s.DeleteImage)
	})

	return r
}
