package domain

// NormalizedDay is one day of an AI-generated itinerary after the model's
// free-text response has been parsed and coerced into a known shape.
type NormalizedDay struct {
	DayIndex   int        `json:"day_index"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

// SuggestionResult is what a generation request returns: the normalized
// days plus whether they came from the response cache.
type SuggestionResult struct {
	Days      []NormalizedDay `json:"days"`
	FromCache bool            `json:"from_cache"`
	// Currency carries the destination currency when the model reported
	// one; it seeds Trip.Currency on first accept.
	Currency *CurrencyInfo `json:"currency,omitempty"`
}
