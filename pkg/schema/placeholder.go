package schema

import "strings"

// placeholderMarkers appear in values copied from the example env file.
var placeholderMarkers = []string{"your_", "YOUR_"}

// placeholderSentinels are whole values that usually mean a key was filled
// with a development default rather than a credential.
var placeholderSentinels = map[string]struct{}{
	"development": {},
	"true":        {},
	"debug":       {},
}

// placeholderExempt keys legitimately hold sentinel values.
var placeholderExempt = map[string]struct{}{
	NodeEnv:  {},
	Debug:    {},
	LogLevel: {},
}

// IsPlaceholder reports whether value looks like it was never replaced with
// a real setting.
func IsPlaceholder(value string) bool {
	for _, m := range placeholderMarkers {
		if strings.Contains(value, m) {
			return true
		}
	}
	_, ok := placeholderSentinels[value]
	return ok
}

// PlaceholderExempt reports whether key is allowed to hold a sentinel value.
func PlaceholderExempt(key string) bool {
	_, ok := placeholderExempt[key]
	return ok
}

// Publishable reports whether a value should reach the secret store or the
// functions env file: it must be non-empty and free of the lowercase marker.
func Publishable(value string) bool {
	return value != "" && !strings.Contains(value, "your_")
}
