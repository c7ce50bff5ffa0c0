package util

import (
	"strings"
	"unicode"
)

// turkishFold maps Turkish-specific letters to their ASCII lookalikes so that
// "akü" and "aku" compare equal. Both the search query and the stored
// normalized columns go through the same fold.
var turkishFold = map[rune]rune{
	'ü': 'u', 'Ü': 'u',
	'ğ': 'g', 'Ğ': 'g',
	'ş': 's', 'Ş': 's',
	'ı': 'i', 'İ': 'i',
	'ö': 'o', 'Ö': 'o',
	'ç': 'c', 'Ç': 'c',
}

// NormalizeTurkish lowercases s and folds Turkish characters to ASCII.
func NormalizeTurkish(s string) string {
	return strings.Map(func(r rune) rune {
		if folded, ok := turkishFold[r]; ok {
			return folded
		}
		return unicode.ToLower(r)
	}, s)
}

// SearchText builds the normalized haystack stored next to a product for
// case- and accent-insensitive matching.
func SearchText(parts ...string) string {
	normalized := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		normalized = append(normalized, NormalizeTurkish(p))
	}
	return strings.Join(normalized, " ")
}
