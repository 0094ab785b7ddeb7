package domain

// Itinerary maps a calendar date ("2006-01-02") to that day's ordered
// activity list. Order within a list is display order, not time order.
type Itinerary map[string][]Activity

// TotalCost sums every activity's cost across every date.
// Malformed costs decoded as 0 contribute 0; nothing errors.
func (it Itinerary) TotalCost() float64 {
	var total float64
	for _, activities := range it {
		for _, a := range activities {
			total += float64(a.Cost)
		}
	}
	return total
}

// CostForDate sums costs for the activity list at date.
// An absent key yields 0.
func (it Itinerary) CostForDate(date string) float64 {
	var total float64
	for _, a := range it[date] {
		total += float64(a.Cost)
	}
	return total
}

// CategoryBreakdown sums costs per category across all dates. Activities
// whose category is outside the fixed set land under CategoryOther.
// Callers wanting a display order sort the result themselves.
func (it Itinerary) CategoryBreakdown() map[Category]float64 {
	breakdown := make(map[Category]float64)
	for _, activities := range it {
		for _, a := range activities {
			breakdown[ParseCategory(string(a.Category))] += float64(a.Cost)
		}
	}
	return breakdown
}
