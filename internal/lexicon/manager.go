package lexicon

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// Manager holds the loaded rule tables in memory. Tables are read-mostly:
// the only mutation paths are AddVariant and AddMapping, and neither is
// synchronized against concurrent readers. Embedders running concurrent
// normalization must treat a warmed-up Manager as immutable or serialize
// writers themselves.
type Manager struct {
	store  Store
	logger *slog.Logger

	mappings     map[string]string
	slangOrder   []string
	replacements []compiledReplacement
	variants     []LetterVariants
	index        []variantEntry
	canonical    map[string]struct{}
}

type compiledReplacement struct {
	Replacement
	re *regexp.Regexp
}

// variantEntry is one reverse-index entry: a lower-cased variant and the
// canonical letter it stands for.
type variantEntry struct {
	variant string
	letter  string
	re      *regexp.Regexp // compiled for single-character variants only
}

// NewManager loads every rule table from the store. A missing or
// malformed resource degrades to an empty table with a warning; it never
// fails construction.
func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		store:     store,
		logger:    logger,
		mappings:  make(map[string]string),
		canonical: make(map[string]struct{}),
	}

	mappings, replacements, err := store.LoadWordMappings()
	if err != nil {
		logger.Warn("word mapping store unavailable, using empty lexicon", "error", err)
	}
	for _, mp := range mappings {
		m.insertMapping(mp.Slang, mp.Normal)
	}
	for _, r := range replacements {
		m.replacements = append(m.replacements, compiledReplacement{
			Replacement: r,
			re:          regexp.MustCompile(`(?i)` + regexp.QuoteMeta(r.Old)),
		})
	}

	variants, err := store.LoadCharacterVariants()
	if err != nil {
		logger.Warn("character variant store unavailable, using empty table", "error", err)
	}
	m.variants = variants
	m.rebuildVariantIndex()

	words, err := store.LoadCanonicalWords()
	if err != nil {
		logger.Warn("canonical word store unavailable, using empty set", "error", err)
	}
	for _, w := range words {
		m.canonical[w] = struct{}{}
	}

	return m
}

// IsCanonical reports case-insensitive membership in the canonical word set.
func (m *Manager) IsCanonical(word string) bool {
	_, ok := m.canonical[strings.ToLower(word)]
	return ok
}

// Lookup returns the normal form mapped to a slang word, case-insensitively.
func (m *Manager) Lookup(word string) (string, bool) {
	normal, ok := m.mappings[strings.ToLower(word)]
	return normal, ok
}

// SlangWords returns every known slang word in word-mapping store order.
// The order is fixed so fuzzy-match tie-breaking stays reproducible.
func (m *Manager) SlangWords() []string {
	out := make([]string, len(m.slangOrder))
	copy(out, m.slangOrder)
	return out
}

// NormalWords returns the mapped normal forms in store order.
func (m *Manager) NormalWords() []string {
	out := make([]string, 0, len(m.slangOrder))
	for _, slang := range m.slangOrder {
		out = append(out, m.mappings[slang])
	}
	return out
}

// CanonicalWords returns the canonical set as an unordered slice.
func (m *Manager) CanonicalWords() []string {
	out := make([]string, 0, len(m.canonical))
	for w := range m.canonical {
		out = append(out, w)
	}
	return out
}

// Variants returns the variant list for a canonical letter.
func (m *Manager) Variants(letter string) []string {
	letter = strings.ToLower(letter)
	for _, lv := range m.variants {
		if lv.Letter == letter {
			return append([]string(nil), lv.Variants...)
		}
	}
	return nil
}

// VariantCount returns the total number of variant spellings across all
// letters.
func (m *Manager) VariantCount() int {
	return len(m.index)
}

// BaseLetter returns the canonical letter a variant stands for.
func (m *Manager) BaseLetter(variant string) (string, bool) {
	variant = strings.ToLower(variant)
	for _, e := range m.index {
		if e.variant == variant {
			return e.letter, true
		}
	}
	return "", false
}

// ApplyCharacterReplacements rewrites a word through the variant index and
// the literal replacement table.
//
// Variants are tried longest first so a short variant never corrupts a
// longer one containing it. Single-character variants replace every
// case-insensitive occurrence; multi-character variants replace only when
// they equal the whole word, never as a substring. A variant identical to
// its canonical letter is skipped.
func (m *Manager) ApplyCharacterReplacements(word string) string {
	result := word
	for _, e := range m.index {
		if e.variant == e.letter {
			continue
		}
		if e.re != nil {
			result = e.re.ReplaceAllString(result, e.letter)
		} else if strings.ToLower(result) == e.variant {
			result = e.letter
		}
	}
	for _, r := range m.replacements {
		result = r.re.ReplaceAllString(result, r.New)
	}
	return result
}

// AddVariant records a new variant spelling for a letter and persists the
// character-variant store. The insert is idempotent and case-folded. A
// persistence failure is logged; the in-memory table stays authoritative.
func (m *Manager) AddVariant(letter, variant string) {
	letter = strings.ToLower(letter)
	variant = strings.ToLower(variant)

	idx := -1
	for i, lv := range m.variants {
		if lv.Letter == letter {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.variants = append(m.variants, LetterVariants{Letter: letter})
		idx = len(m.variants) - 1
	}

	exists := false
	for _, v := range m.variants[idx].Variants {
		if v == variant {
			exists = true
			break
		}
	}
	if !exists {
		m.variants[idx].Variants = append(m.variants[idx].Variants, variant)
		m.rebuildVariantIndex()
	}

	if err := m.store.SaveCharacterVariants(m.variants); err != nil {
		m.logger.Warn("persisting character variants failed, in-memory table kept", "error", err)
	}
}

// AddMapping records a new slang-to-normal pair in memory. Part of the
// lexicon contract but not persisted; the current flow never calls it.
func (m *Manager) AddMapping(slang, normal string) {
	m.insertMapping(strings.ToLower(slang), strings.ToLower(normal))
}

func (m *Manager) insertMapping(slang, normal string) {
	slang = strings.ToLower(slang)
	if _, ok := m.mappings[slang]; !ok {
		m.slangOrder = append(m.slangOrder, slang)
	}
	m.mappings[slang] = normal
}

// rebuildVariantIndex derives the reverse variant index from the forward
// table. Must run after every table mutation. Entries keep table order
// among equal lengths (stable sort), longest variants first. A variant
// listed under more than one letter resolves to the last letter declaring
// it, at the position of its first declaration.
func (m *Manager) rebuildVariantIndex() {
	seen := make(map[string]int)
	index := make([]variantEntry, 0, len(m.index))
	for _, lv := range m.variants {
		letter := strings.ToLower(lv.Letter)
		for _, v := range lv.Variants {
			variant := strings.ToLower(v)
			if i, ok := seen[variant]; ok {
				index[i].letter = letter
				continue
			}
			e := variantEntry{variant: variant, letter: letter}
			if len([]rune(variant)) == 1 {
				e.re = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(variant))
			}
			seen[variant] = len(index)
			index = append(index, e)
		}
	}
	sort.SliceStable(index, func(i, j int) bool {
		return len([]rune(index[i].variant)) > len([]rune(index[j].variant))
	})
	m.index = index
}
