package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/llm"
	"github.com/travelmaker/backend/internal/repo"
)

// Generator is the language-model dependency of SuggestionService.
// Defining it here (in the consumer package) lets tests inject a canned
// model without touching the network.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// SuggestionService generates AI day plans for a trip, caching normalized
// responses keyed by the trip's (location, start, end) triple.
type SuggestionService struct {
	trips repo.TripRepo
	cache repo.SuggestionCache
	gen   Generator
}

// NewSuggestionService constructs a SuggestionService.
func NewSuggestionService(trips repo.TripRepo, cache repo.SuggestionCache, gen Generator) *SuggestionService {
	return &SuggestionService{trips: trips, cache: cache, gen: gen}
}

// Generate returns AI day plans for the trip. Unless refresh is set, a
// fresh cache entry short-circuits the model call entirely. The cache is
// written only after successful normalization; parse failures surface as
// *llm.ParseError and cache nothing.
func (s *SuggestionService) Generate(ctx context.Context, tripID uuid.UUID, refresh bool) (domain.SuggestionResult, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.SuggestionResult{}, fmt.Errorf("service.SuggestionService.Generate: %w", err)
	}

	startDate := trip.StartDate.Format(domain.DateKey)
	endDate := trip.EndDate.Format(domain.DateKey)

	if !refresh {
		entry, ok, err := s.cache.Get(ctx, trip.Location, startDate, endDate)
		if err != nil {
			return domain.SuggestionResult{}, fmt.Errorf("service.SuggestionService.Generate: %w", err)
		}
		if ok {
			return domain.SuggestionResult{Days: entry.Itinerary, FromCache: true, Currency: entry.Currency}, nil
		}
	}

	prompt := llm.BuildItineraryPrompt(trip.Location, startDate, endDate, trip.Days(), flattenActivities(trip.Itinerary))

	raw, err := s.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return domain.SuggestionResult{}, fmt.Errorf("service.SuggestionService.Generate: %w", err)
	}

	days, currency, err := llm.ParseItinerary(raw, startDate)
	if err != nil {
		// Deliberately unwrapped-friendly: handlers check for *llm.ParseError.
		return domain.SuggestionResult{}, fmt.Errorf("service.SuggestionService.Generate: %w", err)
	}

	entry := repo.SuggestionEntry{
		Itinerary: days,
		Location:  trip.Location,
		StartDate: startDate,
		EndDate:   endDate,
		Currency:  currency,
	}
	if err := s.cache.Put(ctx, entry); err != nil {
		// A cache write failure degrades the next call, not this one.
		slog.WarnContext(ctx, "failed to cache AI suggestions", "trip_id", tripID, "error", err)
	}

	return domain.SuggestionResult{Days: days, FromCache: false, Currency: currency}, nil
}

// CachedList returns summaries of every cached AI response.
func (s *SuggestionService) CachedList(ctx context.Context) ([]repo.SuggestionCacheSummary, error) {
	summaries, err := s.cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SuggestionService.CachedList: %w", err)
	}
	if summaries == nil {
		summaries = []repo.SuggestionCacheSummary{}
	}
	return summaries, nil
}

// DeleteCached removes one cached response by its cache key.
func (s *SuggestionService) DeleteCached(ctx context.Context, cacheKey string) error {
	if err := s.cache.DeleteKey(ctx, cacheKey); err != nil {
		return fmt.Errorf("service.SuggestionService.DeleteCached: %w", err)
	}
	return nil
}

// ClearCached removes every cached response.
func (s *SuggestionService) ClearCached(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("service.SuggestionService.ClearCached: %w", err)
	}
	return nil
}

// flattenActivities collects every activity across all dates for the
// existing-activity prompt summary.
func flattenActivities(it domain.Itinerary) []domain.Activity {
	var all []domain.Activity
	for _, activities := range it {
		all = append(all, activities...)
	}
	return all
}
