package catalog

import (
	"regexp"
	"strings"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	nonKeyChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// BeerKey derives the catalog key of a beer: lowercased label and category
// with whitespace runs turned into dashes, joined by an underscore.
func BeerKey(label, category string) string {
	return slugify(label) + "_" + slugify(category)
}

func slugify(input string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(input)), "-")
}

// BottleKey derives the catalog key of a bottle from its name.
func BottleKey(name string) string {
	key := nonKeyChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return strings.Trim(key, "_")
}
