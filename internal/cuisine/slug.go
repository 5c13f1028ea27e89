// Package cuisine provides cuisine and city name canonicalization plus the
// static cuisine similarity and dining-vibe tables used by the recommender.
package cuisine

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts a name to a lookup key.
// "Middle Eastern" -> "middle-eastern".
// "Café Français" -> "cafe-francais".
func Slugify(s string) string {
	// Decompose accented characters so the base letter survives.
	s = norm.NFKD.String(s)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Canonical returns the display form of a cuisine name.
// Known aliases resolve to their canonical cuisine ("sushi" -> "Japanese");
// anything else is whitespace-collapsed and title-cased ("  thai  " -> "Thai").
// Empty input returns "".
func Canonical(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	if canonical, ok := Aliases[Slugify(name)]; ok {
		return canonical
	}
	return titleCase(name)
}

// CanonicalCity returns the display form of a city name.
// Cities have no alias table; only spacing and case are normalized.
func CanonicalCity(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return titleCase(name)
}

// titleCase builds a fresh Caser each call; a Caser holds state and cannot be
// shared across goroutines.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}
