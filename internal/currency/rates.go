package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"
)

// fallbackRates holds approximate X→TWD rates, manually maintained, used
// when the live endpoint is unreachable. An absent code degrades to rate 1
// (treat as the same currency) — an intentional policy, not a correctness
// claim.
var fallbackRates = map[string]float64{
	"JPY": 0.21,
	"KRW": 0.024,
	"THB": 0.89,
	"SGD": 23.5,
	"HKD": 4.0,
	"CNY": 4.3,
	"USD": 31.5,
	"EUR": 34.0,
	"GBP": 39.5,
	"AUD": 20.5,
	"CAD": 23.0,
	"NZD": 19.0,
	"CHF": 35.5,
	"MYR": 7.0,
	"IDR": 0.002,
	"VND": 0.0013,
	"PHP": 0.55,
	"TRY": 0.95,
	"AED": 8.6,
	"CZK": 1.4,
	"PLN": 7.8,
	"RUB": 0.33,
}

// FallbackRate returns the static rate for from→TWD. Unknown codes and TWD
// itself yield 1.
func FallbackRate(from string) float64 {
	if from == HomeCode {
		return 1
	}
	if rate, ok := fallbackRates[from]; ok {
		return rate
	}
	return 1
}

// RateClient fetches live exchange rates from a provider exposing
// GET <base>/latest/<FROM> with a "rates" mapping in the response.
type RateClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRateClient constructs a RateClient for the given provider base URL.
func NewRateClient(baseURL string) *RateClient {
	return &RateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// latestResponse is the provider's wire shape, trimmed to what we read.
type latestResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Latest fetches the rate from→to. Failures are errors here; the service
// layer decides the fallback.
func (c *RateClient) Latest(ctx context.Context, from, to string) (float64, error) {
	u := fmt.Sprintf("%s/latest/%s", c.baseURL, strings.ToUpper(from))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("currency.RateClient.Latest: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("currency.RateClient.Latest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("currency.RateClient.Latest: status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("currency.RateClient.Latest: decode: %w", err)
	}

	rate, ok := body.Rates[strings.ToUpper(to)]
	if !ok || rate <= 0 || math.IsNaN(rate) {
		return 0, fmt.Errorf("currency.RateClient.Latest: no rate for %s", to)
	}

	slog.DebugContext(ctx, "fetched exchange rate", "from", from, "to", to, "rate", rate)
	return rate, nil
}
