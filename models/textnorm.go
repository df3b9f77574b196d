package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// searchFolder decomposes characters and strips combining marks, turning
// "García" into "Garcia" before lowercasing.
var searchFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearchTerm lowercases and accent-folds a string for substring
// matching. Both the stored search columns and incoming query terms go
// through the same fold so comparisons stay symmetric.
func NormalizeSearchTerm(s string) string {
	folded, _, err := transform.String(searchFolder, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
