package llm

import (
	"fmt"
	"strings"

	"github.com/travelmaker/backend/internal/domain"
)

// BuildItineraryPrompt assembles the generation prompt for a trip. Existing
// activities are summarized so the model plans around them instead of
// duplicating them.
func BuildItineraryPrompt(location, startDate, endDate string, days int, existing []domain.Activity) string {
	existingSummary := "No activities have been added yet."
	if len(existing) > 0 {
		parts := make([]string, len(existing))
		for i, a := range existing {
			parts[i] = fmt.Sprintf("%s-%s %s %s", a.StartTime, a.EndTime, a.Category, a.Content)
		}
		existingSummary = "Existing activities: " + strings.Join(parts, "; ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a professional travel planner. Generate a detailed daily itinerary for the following trip:

Destination: %s
Dates: %s to %s (%d days)
%s

Generate 3-4 activity suggestions per day. Each activity needs a start time, end time, category, name and description, and estimated cost.

Return a JSON array where each element has this shape:
{
  "dayIndex": 1,
  "date": "%s",
  "activities": [
    {
      "startTime": "09:00",
      "endTime": "11:00",
      "category": "sightseeing",
      "content": "activity name and description",
      "cost": 1000,
      "location": "specific place",
      "notes": "other remarks"
    }
  ]
}

Requirements:
1. Activity times must be sensible and must not overlap.
2. Mix activity types (sightseeing, dining, transport, and so on).
3. Plan 8-10 hours of activities per day.
4. Cost estimates must match local price levels, in the local currency.
5. Account for travel time between locations.
6. Return ONLY the JSON array, with no explanatory text.`,
		location, startDate, endDate, days, existingSummary, startDate)

	return b.String()
}
