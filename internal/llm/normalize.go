package llm

import (
	"strconv"
	"strings"
	"time"

	"github.com/travelmaker/backend/internal/domain"
)

// dayArrayKeys are the object properties searched, in priority order, when
// the parsed value is an object instead of a bare array.
var dayArrayKeys = []string{"itinerary", "data", "days"}

// Normalize coerces a parsed JSON value into the canonical day/activity
// shape. startDate anchors synthetic dates when the model omitted them.
// It also extracts destination-currency metadata when the response carries
// it at the top level.
func Normalize(parsed any, startDate string) ([]domain.NormalizedDay, *domain.CurrencyInfo) {
	var currency *domain.CurrencyInfo

	days, ok := parsed.([]any)
	if !ok {
		obj, isObj := parsed.(map[string]any)
		if !isObj {
			return nil, nil
		}
		currency = extractCurrency(obj)
		for _, key := range dayArrayKeys {
			if arr, isArr := obj[key].([]any); isArr {
				days = arr
				break
			}
		}
		if days == nil {
			return nil, currency
		}
	}

	// A bare array of activities (every element has times and a category)
	// becomes a single synthetic day at the requested start date.
	if len(days) > 0 && allLookLikeActivities(days) {
		activities := make([]domain.Activity, 0, len(days))
		for _, elem := range days {
			if m, isMap := elem.(map[string]any); isMap {
				activities = append(activities, coerceActivity(m))
			}
		}
		return []domain.NormalizedDay{{DayIndex: 1, Date: startDate, Activities: activities}}, currency
	}

	normalized := make([]domain.NormalizedDay, 0, len(days))
	for i, elem := range days {
		m, isMap := elem.(map[string]any)
		if !isMap {
			continue
		}
		normalized = append(normalized, normalizeDay(m, i, startDate))
	}
	return normalized, currency
}

// normalizeDay coerces one day entry. i is the entry's position, used for
// positional defaults.
func normalizeDay(m map[string]any, i int, startDate string) domain.NormalizedDay {
	day := domain.NormalizedDay{
		DayIndex:   coerceInt(firstOf(m, "dayIndex", "day_index", "day"), i+1),
		Activities: []domain.Activity{},
	}

	day.Date = coerceString(m["date"])
	if day.Date == "" {
		day.Date = offsetDate(startDate, day.DayIndex-1)
	}

	switch {
	case hasArray(m, "activities"):
		day.Activities = coerceActivities(m["activities"].([]any))
	case hasArray(m, "items"):
		// Some responses call the list "items"; same shape, different name.
		day.Activities = coerceActivities(m["items"].([]any))
	case looksLikeActivity(m):
		day.Activities = []domain.Activity{coerceActivity(m)}
	}

	return day
}

func coerceActivities(arr []any) []domain.Activity {
	activities := make([]domain.Activity, 0, len(arr))
	for _, elem := range arr {
		if m, isMap := elem.(map[string]any); isMap {
			activities = append(activities, coerceActivity(m))
		}
	}
	return activities
}

// coerceActivity maps one activity object onto the domain type, tolerating
// both camelCase (the prompt's shape) and snake_case field names, and cost
// as number or numeric string.
func coerceActivity(m map[string]any) domain.Activity {
	return domain.Activity{
		StartTime: coerceString(firstOf(m, "startTime", "start_time", "start")),
		EndTime:   coerceString(firstOf(m, "endTime", "end_time", "end")),
		Category:  domain.ParseCategory(coerceString(firstOf(m, "category", "type"))),
		Content:   coerceString(firstOf(m, "content", "title", "name", "description")),
		Location:  coerceString(firstOf(m, "location", "place")),
		Cost:      domain.Cost(coerceFloat(firstOf(m, "cost", "price"))),
		Notes:     coerceString(m["notes"]),
	}
}

// looksLikeActivity reports whether m has start/end times and a
// category-like field — the fingerprint of a bare activity object.
func looksLikeActivity(m map[string]any) bool {
	return firstOf(m, "startTime", "start_time", "start") != nil &&
		firstOf(m, "endTime", "end_time", "end") != nil &&
		firstOf(m, "category", "type") != nil
}

func allLookLikeActivities(arr []any) bool {
	for _, elem := range arr {
		m, isMap := elem.(map[string]any)
		if !isMap || !looksLikeActivity(m) {
			return false
		}
	}
	return true
}

// extractCurrency reads optional top-level currency metadata.
func extractCurrency(obj map[string]any) *domain.CurrencyInfo {
	m, ok := obj["currency"].(map[string]any)
	if !ok {
		return nil
	}
	info := domain.CurrencyInfo{
		Code:   strings.ToUpper(coerceString(m["code"])),
		Symbol: coerceString(m["symbol"]),
		Name:   coerceString(m["name"]),
	}
	if info.Code == "" {
		return nil
	}
	return &info
}

// offsetDate returns startDate plus days, or "" when startDate is not a
// calendar date.
func offsetDate(startDate string, days int) string {
	t, err := time.Parse(domain.DateKey, startDate)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, days).Format(domain.DateKey)
}

// firstOf returns the first present key's value.
func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func hasArray(m map[string]any, key string) bool {
	_, ok := m[key].([]any)
	return ok
}

func coerceString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func coerceInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return fallback
}

func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return n
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil && f > 0 {
			return f
		}
	}
	return 0
}
