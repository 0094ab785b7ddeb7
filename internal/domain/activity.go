package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Category classifies an activity. The set is fixed; anything else is
// bucketed under CategoryOther.
type Category string

const (
	CategoryTransport   Category = "transport"
	CategoryLodging     Category = "lodging"
	CategoryDining      Category = "dining"
	CategorySightseeing Category = "sightseeing"
	CategoryShopping    Category = "shopping"
	CategoryOther       Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryTransport,
	CategoryLodging,
	CategoryDining,
	CategorySightseeing,
	CategoryShopping,
	CategoryOther,
}

// ParseCategory maps free text onto a Category. Unknown or empty input maps
// to CategoryOther rather than failing — AI output and old stored data both
// contain labels outside the fixed set.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return known
		}
	}
	return CategoryOther
}

// Activity is a single scheduled item on one date of a trip's itinerary.
// Position within the date's list is the display order and is independently
// editable; it is not required to be time-sorted.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	StartTime string    `json:"start_time"` // "HH:MM"
	EndTime   string    `json:"end_time"`   // "HH:MM", strictly after StartTime
	Category  Category  `json:"category"`
	Content   string    `json:"content"`
	Location  string    `json:"location,omitempty"`
	Cost      Cost      `json:"cost"`
	Notes     string    `json:"notes,omitempty"`
}

// Cost is a non-negative amount in the trip's local currency.
// It unmarshals tolerantly: numbers, numeric strings, null, and garbage all
// decode without error; anything unparseable becomes 0. Stored data and AI
// output both contain costs in every one of those shapes.
type Cost float64

// UnmarshalJSON implements tolerant cost decoding.
func (c *Cost) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		*c = 0
		return nil
	}
	*c = Cost(v)
	return nil
}

// MarshalJSON emits the cost as a plain JSON number.
func (c Cost) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c))
}
