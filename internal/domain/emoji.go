package domain

import "strings"

// countryEmoji maps location keywords to a flag, checked before cityEmoji.
// Keyword order matters for overlapping names, so these are slices.
var countryEmoji = []struct {
	keyword string
	emoji   string
}{
	{"japan", "🇯🇵"},
	{"korea", "🇰🇷"},
	{"thailand", "🇹🇭"},
	{"taiwan", "🇹🇼"},
	{"hong kong", "🇭🇰"},
	{"singapore", "🇸🇬"},
	{"usa", "🇺🇸"},
	{"america", "🇺🇸"},
	{"france", "🇫🇷"},
	{"germany", "🇩🇪"},
	{"italy", "🇮🇹"},
	{"spain", "🇪🇸"},
	{"uk", "🇬🇧"},
	{"britain", "🇬🇧"},
	{"netherlands", "🇳🇱"},
	{"switzerland", "🇨🇭"},
	{"australia", "🇦🇺"},
	{"canada", "🇨🇦"},
}

var cityEmoji = []struct {
	keyword string
	emoji   string
}{
	{"tokyo", "🗼"},
	{"paris", "🗼"},
	{"london", "🏰"},
	{"new york", "🗽"},
	{"amsterdam", "🌷"},
	{"rome", "🏛️"},
	{"venice", "🚤"},
	{"sydney", "🌉"},
	{"dubai", "🏗️"},
	{"seoul", "🌆"},
	{"bangkok", "🕌"},
}

// LocationEmoji picks a display emoji for a location by keyword match,
// countries before cities, defaulting to a pin.
func LocationEmoji(location string) string {
	if location == "" {
		return "📍"
	}
	loc := strings.ToLower(location)
	for _, e := range countryEmoji {
		if strings.Contains(loc, e.keyword) {
			return e.emoji
		}
	}
	for _, e := range cityEmoji {
		if strings.Contains(loc, e.keyword) {
			return e.emoji
		}
	}
	return "📍"
}
