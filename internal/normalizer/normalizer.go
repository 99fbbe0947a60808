// Package normalizer composes the jejemon normalization pipeline:
// punctuation evaluation, context-aware character replacement,
// tokenization, per-token resolution and confidence scoring.
package normalizer

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"jejemonly/internal/editdist"
	"jejemonly/internal/fuzzy"
	"jejemonly/internal/lemmatizer"
	"jejemonly/internal/lexicon"
	"jejemonly/internal/tokenizer"
)

// TraceFunc receives step-by-step pipeline narration. It is a side
// channel only and never influences control flow.
type TraceFunc func(stage, detail string)

// Result holds the five staged strings produced by one NormalizeText run.
type Result struct {
	Original             string `json:"original"`
	PunctuationEvaluated string `json:"punctuation_evaluated"`
	CharacterReplaced    string `json:"character_replaced"`
	Tokenized            string `json:"tokenized"`
	Normalized           string `json:"normalized"`
}

// marker is one contraction marker and its replacement.
type marker struct {
	old string
	new string
}

// Contraction markers stripped during text-level punctuation evaluation,
// applied in order.
var textMarkers = []marker{
	{"'s", "s"}, {"'t", "t"}, {"'re", "re"}, {"'ve", "ve"},
	{"'ll", "ll"}, {"'d", "d"}, {"'m", "m"}, {"'", ""}, {"`", ""},
}

// Word-level evaluation additionally folds the typographic apostrophe.
var wordMarkers = []marker{
	{"'s", "s"}, {"'t", "t"}, {"'re", "re"}, {"'ve", "ve"},
	{"'ll", "ll"}, {"'d", "d"}, {"'m", "m"}, {"'", ""}, {"`", ""}, {"’", ""},
}

// meaningfulPunctuation are the punctuation runes that can carry meaning
// in jejemon text and therefore gate punctuation evaluation.
const meaningfulPunctuation = `'"-_.!?,;:+()[]{}/\|@#$%`

// stripCutset is meaningfulPunctuation minus the symbols that commonly
// appear inside jejemon words (+ and @), used for edge cleanup.
const stripCutset = `'"-_.!?,;:()[]{}/\|#$%`

// contextRule is one compiled pattern-gated replacement.
type contextRule struct {
	re          *regexp.Regexp
	replacement string
}

// characterContext is the ordered rule list plus default for one character.
type characterContext struct {
	char  string
	rules []contextRule
	def   string
}

// Normalizer orchestrates the pipeline. Safe for concurrent reads; see
// lexicon.Manager for the mutation caveats.
type Normalizer struct {
	lex       *lexicon.Manager
	matcher   *fuzzy.Matcher
	threshold float64
	contexts  []characterContext
	trace     TraceFunc
}

// New builds a normalizer over a loaded lexicon and context rule set.
// Context rules with unparsable patterns are dropped with a warning; rule
// order is preserved exactly as declared in the store.
func New(lex *lexicon.Manager, rules []lexicon.CharacterRules, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}

	n := &Normalizer{
		lex:       lex,
		matcher:   fuzzy.NewMatcher(fuzzy.DefaultThreshold),
		threshold: fuzzy.DefaultThreshold,
	}

	for _, cr := range rules {
		cc := characterContext{char: cr.Char, def: cr.Default}
		for _, r := range cr.Rules {
			re, err := regexp.Compile(`(?i)` + r.Pattern)
			if err != nil {
				logger.Warn("dropping unparsable context rule",
					"char", cr.Char, "pattern", r.Pattern, "error", err)
				continue
			}
			cc.rules = append(cc.rules, contextRule{re: re, replacement: r.Replacement})
		}
		n.contexts = append(n.contexts, cc)
	}

	return n
}

// SetThreshold overrides the fuzzy acceptance threshold (default 0.6).
func (n *Normalizer) SetThreshold(threshold float64) {
	n.threshold = threshold
	n.matcher = fuzzy.NewMatcher(threshold)
}

// SetTrace installs a trace hook; nil disables tracing.
func (n *Normalizer) SetTrace(fn TraceFunc) {
	n.trace = fn
}

func (n *Normalizer) tracef(stage, format string, args ...interface{}) {
	if n.trace != nil {
		n.trace(stage, fmt.Sprintf(format, args...))
	}
}

// NormalizeWord resolves a single word to its normal form. Resolution
// steps run in order, first hit wins: canonical membership, direct
// lookup, character replacement with relookup, fuzzy match against the
// slang keys, lemmatization with lookup or fuzzy retry, identity.
func (n *Normalizer) NormalizeWord(word string) string {
	if n.lex.IsCanonical(word) {
		n.tracef("word", "%q already canonical", word)
		return word
	}

	if normal, ok := n.lex.Lookup(word); ok {
		n.tracef("word", "direct mapping %q -> %q", word, normal)
		return normal
	}

	if n.EligibleForCharacterReplacement(word) {
		modified := n.lex.ApplyCharacterReplacements(word)
		if modified != word {
			n.tracef("word", "character replacement %q -> %q", word, modified)
			if normal, ok := n.lex.Lookup(modified); ok {
				n.tracef("word", "rewritten form maps %q -> %q", modified, normal)
				return normal
			}
		}
	}

	slang := n.lex.SlangWords()
	if len(slang) > 0 {
		best, score := n.matcher.FindBestMatch(word, slang)
		n.tracef("word", "best fuzzy match for %q: %q (%.3f)", word, best, score)
		if score > n.threshold {
			if normal, ok := n.lex.Lookup(best); ok {
				return normal
			}
		}
	}

	lemma := lemmatizer.Lemmatize(word)
	if lemma != word {
		n.tracef("word", "lemmatized %q -> %q", word, lemma)
		if normal, ok := n.lex.Lookup(lemma); ok {
			return normal
		}
		if len(slang) > 0 {
			best, score := n.matcher.FindBestMatch(lemma, slang)
			n.tracef("word", "best fuzzy match for lemma %q: %q (%.3f)", lemma, best, score)
			if score > n.threshold {
				if normal, ok := n.lex.Lookup(best); ok {
					return normal
				}
			}
		}
	}

	n.tracef("word", "%q left unchanged", word)
	return word
}

// NormalizeText runs the staged pipeline over arbitrary text and returns
// every intermediate stage for inspection.
func (n *Normalizer) NormalizeText(text string) Result {
	result := Result{Original: text}

	result.PunctuationEvaluated = n.evaluateTextPunctuation(text)
	n.tracef("text", "after punctuation evaluation: %q", result.PunctuationEvaluated)

	result.CharacterReplaced = n.replaceTextCharacters(result.PunctuationEvaluated)
	n.tracef("text", "after character replacement: %q", result.CharacterReplaced)

	tokens := tokenizer.Tokenize(result.CharacterReplaced)
	result.Tokenized = strings.Join(tokens, " ")
	n.tracef("text", "tokens: %v", tokens)

	normalized := make([]string, len(tokens))
	for i, token := range tokens {
		normalized[i] = n.NormalizeWord(token)
	}
	result.Normalized = tokenizer.Detokenize(normalized)
	n.tracef("text", "normalized: %q", result.Normalized)

	return result
}

// EvaluatePunctuation decides whether a word's contraction markers carry
// meaning. Both the original and the marker-stripped form are looked up;
// a hit on the stripped form wins and flags the word as modified.
func (n *Normalizer) EvaluatePunctuation(word string) (string, bool) {
	if !strings.ContainsAny(word, meaningfulPunctuation) {
		return word, false
	}

	modified := word
	for _, m := range wordMarkers {
		modified = strings.ReplaceAll(modified, m.old, m.new)
	}

	originalNormal, originalOK := n.lex.Lookup(word)
	modifiedNormal, modifiedOK := n.lex.Lookup(modified)

	switch {
	case originalOK && !modifiedOK:
		n.tracef("punctuation", "original form maps %q -> %q", word, originalNormal)
		return originalNormal, false
	case modifiedOK && !originalOK:
		n.tracef("punctuation", "stripped form maps %q -> %q", modified, modifiedNormal)
		return modifiedNormal, true
	case originalOK && modifiedOK:
		n.tracef("punctuation", "both forms map, preferring stripped %q -> %q", modified, modifiedNormal)
		return modifiedNormal, true
	}

	return word, false
}

// evaluateTextPunctuation strips contraction markers across the whole
// text, then removes leading and trailing meaningful punctuation per
// word. Words with a direct lexicon mapping keep their punctuation.
func (n *Normalizer) evaluateTextPunctuation(text string) string {
	for _, m := range textMarkers {
		text = strings.ReplaceAll(text, m.old, m.new)
	}

	words := strings.Fields(text)
	cleaned := make([]string, 0, len(words))
	for _, word := range words {
		if _, ok := n.lex.Lookup(word); ok {
			n.tracef("punctuation", "%q has a mapping, keeping as-is", word)
			cleaned = append(cleaned, word)
			continue
		}
		trimmed := strings.TrimRight(strings.TrimLeft(word, stripCutset), stripCutset)
		if trimmed != word {
			n.tracef("punctuation", "trimmed %q -> %q", word, trimmed)
		}
		cleaned = append(cleaned, trimmed)
	}
	return strings.Join(cleaned, " ")
}

// replaceTextCharacters applies context-aware character replacement word
// by word, so patterns only ever see a single token's context.
func (n *Normalizer) replaceTextCharacters(text string) string {
	words := strings.Fields(text)
	processed := make([]string, 0, len(words))
	for _, word := range words {
		processed = append(processed, n.ApplyContextReplacements(word))
	}
	return strings.Join(processed, " ")
}

// ApplyContextReplacements rewrites a word through the context rule set
// and then the lexicon's character replacements. Words exempt under the
// skip policy pass through untouched.
//
// Characters are processed in rule-set order and each replacement mutates
// the working word, so later characters see earlier rewrites. The first
// pattern matching the current state wins; when none match, the
// character's default replacement applies to every occurrence.
func (n *Normalizer) ApplyContextReplacements(word string) string {
	if !n.EligibleForCharacterReplacement(word) {
		return word
	}

	result := word
	for _, cc := range n.contexts {
		if !strings.Contains(result, cc.char) {
			continue
		}
		applied := false
		for _, rule := range cc.rules {
			if rule.re.MatchString(result) {
				result = strings.ReplaceAll(result, cc.char, rule.replacement)
				n.tracef("context", "rule for %q gives %q", cc.char, result)
				applied = true
				break
			}
		}
		if !applied {
			result = strings.ReplaceAll(result, cc.char, cc.def)
			n.tracef("context", "default for %q gives %q", cc.char, result)
		}
	}

	return n.lex.ApplyCharacterReplacements(result)
}

// Confidence scores how far a normalization diverged from its input: 0
// for identical strings or empty input, 0.5 when the token counts no
// longer line up, otherwise the mean per-token similarity.
func (n *Normalizer) Confidence(original, normalized string) float64 {
	if original == normalized {
		return 0.0
	}

	originalTokens := tokenizer.Tokenize(original)
	normalizedTokens := tokenizer.Tokenize(normalized)

	if len(originalTokens) != len(normalizedTokens) {
		return 0.5
	}
	if len(originalTokens) == 0 {
		return 0.0
	}

	total := 0.0
	for i, orig := range originalTokens {
		norm := normalizedTokens[i]
		if orig == norm {
			total += 1.0
		} else {
			total += editdist.Similarity(orig, norm)
		}
	}
	return total / float64(len(originalTokens))
}

// AddVariant registers a new letter variant and persists the
// character-variant store through the lexicon.
func (n *Normalizer) AddVariant(letter, variant string) {
	n.tracef("lexicon", "adding variant %q -> %q", variant, letter)
	n.lex.AddVariant(letter, variant)
}

// Lexicon exposes the underlying manager for collaborators such as the
// suggestion command.
func (n *Normalizer) Lexicon() *lexicon.Manager {
	return n.lex
}
