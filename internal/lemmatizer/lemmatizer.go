// Package lemmatizer guesses a base form by stripping known Filipino affixes.
package lemmatizer

import "strings"

// prefixRule pairs a strippable prefix with the alternative spellings it
// covers. Only the prefix itself decides what gets stripped; the
// alternatives are informational.
type prefixRule struct {
	prefix       string
	alternatives []string
}

// Rule order is significant: the first matching prefix/suffix wins.
// The source rule table defined naka, nai and na twice; the later
// definition replaces the earlier one, which is the behavior preserved
// here. TODO: confirm with the rule table maintainer whether the two
// naka/nai alternative lists were meant to coexist.
var prefixRules = []prefixRule{
	{"nag", []string{"nag", "mag"}},
	{"naka", []string{"naka", "ka"}},
	{"nai", []string{"nai", "i"}},
	{"napa", []string{"napa", "mapa"}},
	{"naging", []string{"naging", "maging"}},
	{"naki", []string{"naki", "maki"}},
	{"nang", []string{"nang", "mang"}},
	{"na", []string{"na", "ma"}},
}

var suffixRules = []string{"ing", "an", "in", "ng", "han", "hin", "on", "un"}

// Lemmatize strips at most one known prefix and one known suffix.
// Candidates shorter than 2 characters are discarded and the original
// word is returned unchanged. Single pass, no backtracking.
func Lemmatize(word string) string {
	original := word

	for _, rule := range prefixRules {
		if strings.HasPrefix(word, rule.prefix) {
			word = word[len(rule.prefix):]
			break
		}
	}

	for _, suffix := range suffixRules {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix) {
			word = word[:len(word)-len(suffix)]
			break
		}
	}

	if len([]rune(word)) < 2 {
		return original
	}

	return word
}

// Prefixes returns the strippable prefixes in rule order.
func Prefixes() []string {
	out := make([]string, len(prefixRules))
	for i, r := range prefixRules {
		out[i] = r.prefix
	}
	return out
}

// Suffixes returns the strippable suffixes in rule order.
func Suffixes() []string {
	out := make([]string, len(suffixRules))
	copy(out, suffixRules)
	return out
}
