// Package lexicon owns the rule tables driving jejemon normalization:
// the slang-to-normal word mapping, literal replacement table, letter
// variant table with its reverse index, and the canonical word set.
package lexicon

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mapping is one slang-to-normal word pair.
type Mapping struct {
	Slang  string
	Normal string
}

// Replacement is one literal substring rewrite, applied after letter
// variants have been resolved (e.g. a digit standing in for a syllable).
type Replacement struct {
	Old string
	New string
}

// LetterVariants lists the variant spellings of one canonical letter.
type LetterVariants struct {
	Letter   string
	Variants []string
}

// ContextRule is a pattern-gated replacement for a single character.
type ContextRule struct {
	Pattern     string
	Replacement string
}

// CharacterRules holds the ordered context rules for one character plus
// its unconditional default replacement.
type CharacterRules struct {
	Char    string
	Rules   []ContextRule
	Default string
}

// Store is the persistence contract for the rule tables. Declaration
// order inside each resource is semantically significant and every Load
// method must preserve it.
type Store interface {
	LoadWordMappings() ([]Mapping, []Replacement, error)
	LoadCharacterVariants() ([]LetterVariants, error)
	SaveCharacterVariants([]LetterVariants) error
	LoadCanonicalWords() ([]string, error)
	LoadContextRules() ([]CharacterRules, error)
}

// Default file names inside a lexicon directory.
const (
	DictionaryFile   = "dictionary.json"
	CharactersFile   = "characters.json"
	ContextRulesFile = "context_rules.json"
	WordsFile        = "words.txt"
)

// DirStore reads and writes the rule tables as files in one directory.
// The JSON mapping files are decoded through yaml.v3 nodes because
// encoding/json maps discard key order, and rule precedence here is
// declaration order.
type DirStore struct {
	dir string
}

// NewDirStore returns a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Dir returns the store's directory.
func (s *DirStore) Dir() string {
	return s.dir
}

// LoadWordMappings reads dictionary.json: the jejemon_to_normal mapping
// and the common_replacements table, both in file order.
func (s *DirStore) LoadWordMappings() ([]Mapping, []Replacement, error) {
	root, err := loadMappingNode(filepath.Join(s.dir, DictionaryFile))
	if err != nil {
		return nil, nil, err
	}

	var mappings []Mapping
	if node := childNode(root, "jejemon_to_normal"); node != nil {
		pairs, err := orderedStringPairs(node)
		if err != nil {
			return nil, nil, fmt.Errorf("jejemon_to_normal: %w", err)
		}
		for _, p := range pairs {
			mappings = append(mappings, Mapping{Slang: p[0], Normal: p[1]})
		}
	}

	var replacements []Replacement
	if node := childNode(root, "common_replacements"); node != nil {
		pairs, err := orderedStringPairs(node)
		if err != nil {
			return nil, nil, fmt.Errorf("common_replacements: %w", err)
		}
		for _, p := range pairs {
			replacements = append(replacements, Replacement{Old: p[0], New: p[1]})
		}
	}

	return mappings, replacements, nil
}

// LoadCharacterVariants reads characters.json: letter_variants in file order.
func (s *DirStore) LoadCharacterVariants() ([]LetterVariants, error) {
	root, err := loadMappingNode(filepath.Join(s.dir, CharactersFile))
	if err != nil {
		return nil, err
	}

	node := childNode(root, "letter_variants")
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("letter_variants: expected mapping, got %v", node.Kind)
	}

	var out []LetterVariants
	for i := 0; i+1 < len(node.Content); i += 2 {
		letter := node.Content[i].Value
		var variants []string
		if err := node.Content[i+1].Decode(&variants); err != nil {
			return nil, fmt.Errorf("letter_variants[%s]: %w", letter, err)
		}
		out = append(out, LetterVariants{Letter: letter, Variants: variants})
	}
	return out, nil
}

// SaveCharacterVariants rewrites characters.json, keeping table order.
func (s *DirStore) SaveCharacterVariants(variants []LetterVariants) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create lexicon dir: %w", err)
	}

	file, err := os.Create(filepath.Join(s.dir, CharactersFile))
	if err != nil {
		return fmt.Errorf("create characters file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(characterFile(variants))
}

// LoadCanonicalWords reads words.txt: one word per line, blank lines and
// # comments skipped, lower-cased.
func (s *DirStore) LoadCanonicalWords() ([]string, error) {
	file, err := os.Open(filepath.Join(s.dir, WordsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read words file: %w", err)
	}
	return words, nil
}

// LoadContextRules reads context_rules.json: per-character ordered rule
// lists plus the mandatory default, in file order.
func (s *DirStore) LoadContextRules() ([]CharacterRules, error) {
	root, err := loadMappingNode(filepath.Join(s.dir, ContextRulesFile))
	if err != nil {
		return nil, err
	}

	node := childNode(root, "context_aware_rules")
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("context_aware_rules: expected mapping, got %v", node.Kind)
	}

	var out []CharacterRules
	for i := 0; i+1 < len(node.Content); i += 2 {
		char := node.Content[i].Value
		var record struct {
			ContextRules []struct {
				Pattern     string `yaml:"pattern"`
				Replacement string `yaml:"replacement"`
			} `yaml:"context_rules"`
			Default string `yaml:"default"`
		}
		if err := node.Content[i+1].Decode(&record); err != nil {
			return nil, fmt.Errorf("context_aware_rules[%s]: %w", char, err)
		}

		cr := CharacterRules{Char: char, Default: record.Default}
		for _, r := range record.ContextRules {
			cr.Rules = append(cr.Rules, ContextRule{Pattern: r.Pattern, Replacement: r.Replacement})
		}
		out = append(out, cr)
	}
	return out, nil
}

// loadMappingNode parses a JSON file into a yaml mapping node so key
// order survives decoding.
func loadMappingNode(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse %s: empty document", filepath.Base(path))
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse %s: expected top-level object", filepath.Base(path))
	}
	return root, nil
}

// childNode returns the value node for key, or nil if absent.
func childNode(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// orderedStringPairs flattens a mapping node into (key, value) pairs.
func orderedStringPairs(mapping *yaml.Node) ([][2]string, error) {
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping, got %v", mapping.Kind)
	}
	pairs := make([][2]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		var value string
		if err := mapping.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("key %q: %w", mapping.Content[i].Value, err)
		}
		pairs = append(pairs, [2]string{mapping.Content[i].Value, value})
	}
	return pairs, nil
}

// characterFile marshals the variant table as {"letter_variants": {...}}
// without losing letter order.
type characterFile []LetterVariants

func (f characterFile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"letter_variants":{`)
	for i, lv := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lv.Letter)
		if err != nil {
			return nil, err
		}
		variants := lv.Variants
		if variants == nil {
			variants = []string{}
		}
		val, err := json.Marshal(variants)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}
