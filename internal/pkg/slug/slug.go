// Package slug normalizes names into URL slugs. Accents are folded so
// "Trottinette Électrique" and "trottinette electrique" slugify the same,
// which the CSV importer's category fallback relies on.
package slug

import (
	"strings"
	"unicode"
)

var accentFold = map[rune]rune{
	'à': 'a', 'â': 'a', 'ä': 'a', 'á': 'a', 'ã': 'a',
	'ç': 'c',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'î': 'i', 'ï': 'i', 'í': 'i',
	'ô': 'o', 'ö': 'o', 'ó': 'o', 'õ': 'o',
	'ù': 'u', 'û': 'u', 'ü': 'u', 'ú': 'u',
	'ÿ': 'y',
}

// Make lowercases, folds accents and collapses every non-alphanumeric run
// into a single hyphen.
func Make(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(name) {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}

		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}

		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
