// Package tokenizer splits text into word-like units for normalization.
package tokenizer

import (
	"regexp"
	"strings"
)

// runPattern matches runs of word characters (Unicode letters, digits,
// underscore) plus the inline symbols that can carry meaning in jejemon
// text (@ # $ + ! ').
var runPattern = regexp.MustCompile(`[\p{L}\p{N}_@#$+!']+`)

// symbolEdges are the inline symbols trimmed from token edges: a token
// must start and end with a word character.
const symbolEdges = `@#$+!'`

// Tokenize extracts lower-cased tokens from text. Tokens keep inline
// symbols but never start or end with one. Spacing and surrounding
// punctuation are not recoverable from the token stream.
func Tokenize(text string) []string {
	runs := runPattern.FindAllString(strings.ToLower(text), -1)

	var tokens []string
	for _, run := range runs {
		token := strings.Trim(run, symbolEdges)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// Detokenize joins tokens with a single space.
func Detokenize(tokens []string) string {
	return strings.Join(tokens, " ")
}
