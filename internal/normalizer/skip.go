package normalizer

import (
	"regexp"
	"unicode"
)

// Structured numeric forms that must never be rewritten: years, dates,
// times, decimals, thousand-separated numbers, percentages, ordinal
// references and prices.
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d{4}$`),
	regexp.MustCompile(`(?i)^\d{1,2}[-/]\d{1,2}[-/]\d{2,4}$`),
	regexp.MustCompile(`(?i)^\d{1,2}:\d{2}(:\d{2})?([ap]m)?$`),
	regexp.MustCompile(`(?i)^\d+\.\d+$`),
	regexp.MustCompile(`(?i)^\d+,\d+$`),
	regexp.MustCompile(`(?i)^\d+%$`),
	regexp.MustCompile(`(?i)^#\d+$`),
	regexp.MustCompile(`(?i)^\$\d+(\.\d{2})?$`),
}

// Identifier-like alphanumerics: model numbers, serials, product codes.
var codePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^[A-Z]{2,}\d{2,}$`),
	regexp.MustCompile(`(?i)^\d{3,}[A-Z]{2,}$`),
	regexp.MustCompile(`(?i)^[A-Z0-9]{5,}-[A-Z0-9]{3,}$`),
	regexp.MustCompile(`(?i)^[A-Z]{3,}\d{3,}[A-Z]{2,}$`),
}

// EligibleForCharacterReplacement reports whether a word may be rewritten
// by character replacement. Canonical words, directly mapped slang and
// structured numeric or code-like tokens are exempt; short digit-bearing
// words like "b4" or "e2" stay eligible.
func (n *Normalizer) EligibleForCharacterReplacement(word string) bool {
	if n.lex.IsCanonical(word) {
		n.tracef("skip", "%q is canonical, exempt", word)
		return false
	}
	if _, ok := n.lex.Lookup(word); ok {
		n.tracef("skip", "%q has a direct mapping, exempt", word)
		return false
	}

	if isLongDigitRun(word) {
		n.tracef("skip", "%q is a pure number, exempt", word)
		return false
	}
	for _, re := range numberPatterns {
		if re.MatchString(word) {
			n.tracef("skip", "%q matches numeric form %s, exempt", word, re)
			return false
		}
	}
	for _, re := range codePatterns {
		if re.MatchString(word) {
			n.tracef("skip", "%q matches code form %s, exempt", word, re)
			return false
		}
	}

	return true
}

// isLongDigitRun reports whether the word is three or more digits and
// nothing else.
func isLongDigitRun(word string) bool {
	count := 0
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
		count++
	}
	return count >= 3
}
