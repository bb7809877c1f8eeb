// Package search holds the text rules used when matching and ordering items:
// folding for case- and diacritic-insensitive matching, and locale collation.
package search

import (
	"slices"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s with combining marks stripped and case folded, so that
// "Café" and "CAFE" both fold to "cafe".
func Fold(s string) string {
	// Transformers carry state, build a fresh chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// ParseLocale parses a BCP 47 tag, returning language.Und for an empty string
func ParseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.Und, nil
	}
	return language.Parse(s)
}

// SortByKey stably sorts s ascending by key using the collation rules of tag
func SortByKey[T any](tag language.Tag, s []T, key func(T) string) {
	c := collate.New(tag)
	slices.SortStableFunc(s, func(a, b T) int {
		return c.CompareString(key(a), key(b))
	})
}
