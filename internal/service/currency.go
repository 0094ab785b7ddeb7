package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/travelmaker/backend/internal/currency"
	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/repo"
)

// RateFetcher is the live exchange-rate dependency of CurrencyService.
type RateFetcher interface {
	Latest(ctx context.Context, from, to string) (float64, error)
}

// CurrencyService resolves display currencies and exchange rates. Rates are
// cached for 24 hours in one shared record; when the live endpoint fails,
// the static fallback table answers instead — a rate is always produced.
type CurrencyService struct {
	cache  repo.RateCache
	client RateFetcher
}

// NewCurrencyService constructs a CurrencyService.
func NewCurrencyService(cache repo.RateCache, client RateFetcher) *CurrencyService {
	return &CurrencyService{cache: cache, client: client}
}

// DisplayCurrency resolves the currency to show for a trip.
func (s *CurrencyService) DisplayCurrency(trip domain.Trip) domain.CurrencyInfo {
	return currency.ForTrip(trip)
}

// Rate returns the exchange rate from → to. An empty to defaults to the
// home currency. Same-code requests short-circuit to 1 with no I/O and no
// cache read.
func (s *CurrencyService) Rate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if to == "" {
		to = currency.HomeCode
	}
	if from == "" {
		return 0, fmt.Errorf("%w: source currency is required", domain.ErrValidation)
	}
	if from == to {
		return 1, nil
	}

	if rate, ok, err := s.cache.Rate(ctx, from, to); err != nil {
		return 0, fmt.Errorf("service.CurrencyService.Rate: %w", err)
	} else if ok {
		return rate, nil
	}

	rate, err := s.client.Latest(ctx, from, to)
	if err != nil {
		slog.WarnContext(ctx, "live exchange rate unavailable, using fallback table",
			"from", from, "to", to, "error", err)
		return currency.FallbackRate(from), nil
	}

	if err := s.cache.Merge(ctx, from, to, rate); err != nil {
		slog.WarnContext(ctx, "failed to cache exchange rate", "from", from, "to", to, "error", err)
	}
	return rate, nil
}

// FormatCost renders a cost in both the local and home currency using the
// given rate.
func (s *CurrencyService) FormatCost(cost float64, local domain.CurrencyInfo, rate float64) currency.CostBreakdown {
	homeValue := cost * rate
	return currency.CostBreakdown{
		Local:      fmt.Sprintf("%s%.0f", local.Symbol, cost),
		Home:       fmt.Sprintf("%s%.0f", currency.Home.Symbol, homeValue),
		LocalValue: cost,
		HomeValue:  homeValue,
		Rate:       rate,
	}
}
