package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const nbsp = "\u00a0"

// NormalizeLabel prepares a free-text label for table lookup:
// NFC composition, lowercase, non-breaking spaces as plain spaces, trimmed.
func NormalizeLabel(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, nbsp, " ")
	return strings.TrimSpace(s)
}

// RemoveDiacritics strips combining marks, so "días" becomes "dias".
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// FoldLabel is NormalizeLabel followed by RemoveDiacritics
func FoldLabel(s string) string {
	return RemoveDiacritics(NormalizeLabel(s))
}

// EqualFold compares two labels ignoring case and surrounding whitespace
func EqualFold(a, b string) bool {
	return NormalizeLabel(a) == NormalizeLabel(b)
}
