package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeLocation(location string) string {
	return TrimAndNormalize(location)
}

// NormalizeDescription trims the ends only; inner line breaks are kept.
func NormalizeDescription(description string) string {
	return strings.TrimSpace(description)
}

func NormalizeAmenity(amenity string) string {
	return TrimAndNormalize(amenity)
}
