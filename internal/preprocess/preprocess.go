// Package preprocess provides raw-text cleanup passes that run before the
// normalization pipeline: punctuation and special-character removal, space
// collapsing, and accent-to-ASCII folding for input typed with diacritics.
package preprocess

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	punctuationPattern  = regexp.MustCompile(`[^\w\s]`)
	specialCharsPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	multipleSpaces      = regexp.MustCompile(`\s+`)
)

// foldAccents decomposes accented letters and drops the combining marks.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RemovePunctuation strips punctuation runes from text.
func RemovePunctuation(text string) string {
	return punctuationPattern.ReplaceAllString(text, "")
}

// RemoveSpecialCharacters strips everything outside ASCII letters, digits
// and whitespace.
func RemoveSpecialCharacters(text string) string {
	return specialCharsPattern.ReplaceAllString(text, "")
}

// NormalizeSpaces collapses whitespace runs to single spaces and trims.
func NormalizeSpaces(text string) string {
	return strings.TrimSpace(multipleSpaces.ReplaceAllString(text, " "))
}

// FoldASCII converts accented input to its unaccented ASCII form
// (e.g. "kumustá" -> "kumusta"). Characters that do not decompose are
// left alone.
func FoldASCII(text string) string {
	result, _, err := transform.String(foldAccents, text)
	if err != nil {
		return text
	}
	return result
}

// Clean runs the full cleanup: punctuation removal, special-character
// removal, space normalization, lower-casing. Meant for callers that want
// aggressively sanitized input; the normalization pipeline itself applies
// gentler, meaning-aware stripping.
func Clean(text string) string {
	text = RemovePunctuation(text)
	text = RemoveSpecialCharacters(text)
	text = NormalizeSpaces(text)
	return strings.ToLower(text)
}
