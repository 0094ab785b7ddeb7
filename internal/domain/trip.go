// Package domain contains the core data types for the TravelMaker backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a travel plan with a destination, a date
// range, participants, and a day-by-day itinerary. Activities belong to a
// trip through the itinerary map.
type Trip struct {
	ID           uuid.UUID `json:"id"`
	Location     string    `json:"location"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Participants []string  `json:"participants"`
	Itinerary    Itinerary `json:"itinerary"`

	// Currency is set once, from AI suggestion metadata, the first time
	// suggestions carrying it are accepted. Nil until then.
	Currency *CurrencyInfo `json:"currency,omitempty"`

	// Emoji is a display hint derived from the location. Optional.
	Emoji string `json:"emoji,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrencyInfo describes the display currency of a trip's destination.
type CurrencyInfo struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// DateKey is the canonical form of an itinerary map key.
const DateKey = "2006-01-02"

// Dates returns every calendar date of the trip in order, formatted as
// itinerary keys. A trip from 2025-01-15 to 2025-01-17 yields three dates.
func (t Trip) Dates() []string {
	var dates []string
	for d := t.StartDate; !d.After(t.EndDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateKey))
	}
	return dates
}

// Days returns the trip length in calendar days, inclusive of both ends.
func (t Trip) Days() int {
	return int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
}
