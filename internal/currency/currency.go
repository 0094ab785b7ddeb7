// Package currency resolves display currencies for trip destinations and
// fetches exchange rates with a cached, degrade-gracefully policy.
package currency

import (
	"strings"

	"github.com/travelmaker/backend/internal/domain"
)

// HomeCode is the currency everything converts to by default.
var HomeCode = "TWD"

// Home is the default display currency when nothing better is known.
var Home = domain.CurrencyInfo{Code: "TWD", Symbol: "NT$", Name: "New Taiwan Dollar"}

// SetHome changes the home currency. Call once at startup, before the
// server handles requests; it is not safe to change while serving.
func SetHome(code string) {
	info := Info(code)
	HomeCode = info.Code
	Home = info
}

// symbols is the static lookup table used when only a currency code is
// known. It is a fallback; AI suggestion metadata takes precedence.
var symbols = map[string]domain.CurrencyInfo{
	"TWD": Home,
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	"KRW": {Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
	"THB": {Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound"},
	"SGD": {Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	"HKD": {Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	"CNY": {Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	"NZD": {Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar"},
	"CHF": {Code: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
	"MYR": {Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit"},
	"IDR": {Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah"},
	"VND": {Code: "VND", Symbol: "₫", Name: "Vietnamese Dong"},
	"PHP": {Code: "PHP", Symbol: "₱", Name: "Philippine Peso"},
}

// Info resolves a currency code to its display info. Unknown codes fall back
// to using the code itself as both symbol and name; an empty code yields the
// home currency.
func Info(code string) domain.CurrencyInfo {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return Home
	}
	if info, ok := symbols[c]; ok {
		return info
	}
	return domain.CurrencyInfo{Code: c, Symbol: c, Name: c}
}

// eurozoneKeywords covers the common euro destinations the heuristic knows.
var eurozoneKeywords = []string{
	"france", "germany", "italy", "spain", "netherlands", "belgium",
	"portugal", "greece", "austria", "ireland", "finland",
	"paris", "berlin", "rome", "madrid", "amsterdam", "brussels",
}

// localGuesses maps destination keywords to a currency, checked in order.
var localGuesses = []struct {
	keywords []string
	code     string
}{
	{[]string{"japan", "tokyo", "osaka"}, "JPY"},
	{[]string{"korea", "seoul"}, "KRW"},
	{[]string{"thailand", "bangkok"}, "THB"},
	{[]string{"usa", "america", "new york", "los angeles"}, "USD"},
	{[]string{"uk", "britain", "london"}, "GBP"},
	{[]string{"singapore"}, "SGD"},
	{[]string{"hong kong"}, "HKD"},
}

// GuessLocal infers the destination currency from the trip location's free
// text by keyword matching. It is a last resort before the home default; AI
// metadata and cached codes on the trip always win.
func GuessLocal(location string) domain.CurrencyInfo {
	if location == "" {
		return Home
	}
	loc := strings.ToLower(location)

	for _, kw := range eurozoneKeywords {
		if strings.Contains(loc, kw) {
			return symbols["EUR"]
		}
	}
	for _, guess := range localGuesses {
		for _, kw := range guess.keywords {
			if strings.Contains(loc, kw) {
				return symbols[guess.code]
			}
		}
	}
	return Home
}

// ForTrip resolves the display currency for a trip, in precedence order:
// full cached currency fields, cached code via the table, location
// heuristic, home default.
func ForTrip(trip domain.Trip) domain.CurrencyInfo {
	if trip.Currency != nil {
		if trip.Currency.Symbol != "" && trip.Currency.Name != "" {
			return *trip.Currency
		}
		if trip.Currency.Code != "" {
			return Info(trip.Currency.Code)
		}
	}
	return GuessLocal(trip.Location)
}

// CostBreakdown is a cost expressed in both the local and home currency.
type CostBreakdown struct {
	Local      string  `json:"local"`
	Home       string  `json:"home"`
	LocalValue float64 `json:"local_value"`
	HomeValue  float64 `json:"home_value"`
	Rate       float64 `json:"rate"`
}
