package lexicon

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeLexiconDir(t *testing.T, dictionary, characters, contextRules, words string) *DirStore {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		DictionaryFile:   dictionary,
		CharactersFile:   characters,
		ContextRulesFile: contextRules,
		WordsFile:        words,
	}
	for name, content := range files {
		if content == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return NewDirStore(dir)
}

func testManager(t *testing.T) *Manager {
	t.Helper()
	store := writeLexiconDir(t,
		`{
  "jejemon_to_normal": {"juz": "just", "jusz": "just", "p0wz": "po", "aq": "ako"},
  "common_replacements": {"2": "to", "4": "for"}
}`,
		`{"letter_variants": {"e": ["3", "eh"], "a": ["4", "@"], "o": ["0"], "s": ["z", "sz"]}}`,
		`{"context_aware_rules": {}}`,
		"hello\nworld\npo\n",
	)
	return NewManager(store, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestLookupCaseInsensitive(t *testing.T) {
	m := testManager(t)

	normal, ok := m.Lookup("JuZ")
	if !ok || normal != "just" {
		t.Errorf("Lookup(JuZ) = %q, %v, want just, true", normal, ok)
	}

	if _, ok := m.Lookup("missing"); ok {
		t.Error("Lookup(missing) = true, want false")
	}
}

func TestIsCanonical(t *testing.T) {
	m := testManager(t)

	if !m.IsCanonical("HELLO") {
		t.Error("IsCanonical(HELLO) = false, want true")
	}
	if m.IsCanonical("juz") {
		t.Error("IsCanonical(juz) = true, want false")
	}
}

func TestSlangWordsKeepStoreOrder(t *testing.T) {
	m := testManager(t)

	want := []string{"juz", "jusz", "p0wz", "aq"}
	if got := m.SlangWords(); !reflect.DeepEqual(got, want) {
		t.Errorf("SlangWords() = %v, want %v", got, want)
	}
}

func TestApplyCharacterReplacements(t *testing.T) {
	m := testManager(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single char variant everywhere", "h3llo", "hello"},
		{"single char repeated", "3gg3d", "egged"},
		{"case insensitive occurrence", "h3LLo", "heLLo"},
		{"multi char whole word", "eh", "e"},
		{"multi char not substring", "ehlo", "ehlo"},
		{"at variant", "g@nd@", "ganda"},
		// "2" resolves via common replacements after variants.
		{"common replacement", "2day", "today"},
		{"no variant", "plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.ApplyCharacterReplacements(tt.input)
			if result != tt.expected {
				t.Errorf("ApplyCharacterReplacements(%q) = %q, want %q",
					tt.input, result, tt.expected)
			}
		})
	}
}

func TestApplyCharacterReplacementsLongestFirst(t *testing.T) {
	m := testManager(t)

	// "sz" is a whole-word variant of "s"; the shorter "z" variant must not
	// fire first and break it apart.
	if got := m.ApplyCharacterReplacements("sz"); got != "s" {
		t.Errorf("ApplyCharacterReplacements(sz) = %q, want s", got)
	}
}

func TestBaseLetter(t *testing.T) {
	m := testManager(t)

	base, ok := m.BaseLetter("3")
	if !ok || base != "e" {
		t.Errorf("BaseLetter(3) = %q, %v, want e, true", base, ok)
	}
	if _, ok := m.BaseLetter("9"); ok {
		t.Error("BaseLetter(9) = true, want false")
	}
}

func TestDuplicateVariantLastLetterWins(t *testing.T) {
	store := writeLexiconDir(t,
		"",
		`{"letter_variants": {"e": ["3", "eh"], "b": ["3"]}}`,
		"",
		"",
	)
	m := NewManager(store, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// "3" is declared under both "e" and "b"; the later declaration owns it.
	if base, ok := m.BaseLetter("3"); !ok || base != "b" {
		t.Errorf("BaseLetter(3) = %q, %v, want b, true", base, ok)
	}
	if got := m.ApplyCharacterReplacements("h3llo"); got != "hbllo" {
		t.Errorf("ApplyCharacterReplacements(h3llo) = %q, want hbllo", got)
	}
	if m.VariantCount() != 2 {
		t.Errorf("VariantCount() = %d, want 2", m.VariantCount())
	}
}

func TestAddVariantPersists(t *testing.T) {
	store := writeLexiconDir(t,
		`{"jejemon_to_normal": {}, "common_replacements": {}}`,
		`{"letter_variants": {"e": ["3"]}}`,
		"", "")
	m := NewManager(store, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	m.AddVariant("I", "!")

	if base, ok := m.BaseLetter("!"); !ok || base != "i" {
		t.Fatalf("BaseLetter(!) = %q, %v after AddVariant", base, ok)
	}
	if got := m.ApplyCharacterReplacements("h!"); got != "hi" {
		t.Errorf("ApplyCharacterReplacements(h!) = %q, want hi", got)
	}

	// The store file must reflect the mutation, letters in table order.
	data, err := os.ReadFile(filepath.Join(store.Dir(), CharactersFile))
	if err != nil {
		t.Fatalf("read characters file: %v", err)
	}
	var parsed struct {
		LetterVariants map[string][]string `json:"letter_variants"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("parse persisted characters: %v", err)
	}
	if got := parsed.LetterVariants["i"]; len(got) != 1 || got[0] != "!" {
		t.Errorf("persisted variants for i = %v, want [!]", got)
	}
}

func TestAddVariantIdempotent(t *testing.T) {
	m := testManager(t)

	m.AddVariant("e", "3")
	if got := m.Variants("e"); len(got) != 2 {
		t.Errorf("Variants(e) = %v after duplicate insert, want 2 entries", got)
	}
}

func TestIdentityVariantIsNoOp(t *testing.T) {
	store := writeLexiconDir(t,
		`{"jejemon_to_normal": {}, "common_replacements": {}}`,
		`{"letter_variants": {"a": ["a", "4"]}}`,
		"", "")
	m := NewManager(store, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if got := m.ApplyCharacterReplacements("b4nana"); got != "banana" {
		t.Errorf("ApplyCharacterReplacements(b4nana) = %q, want banana", got)
	}
}

func TestMissingStoresDegradeToEmpty(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "nowhere"))
	m := NewManager(store, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if m.IsCanonical("hello") {
		t.Error("IsCanonical on empty set = true")
	}
	if _, ok := m.Lookup("juz"); ok {
		t.Error("Lookup on empty lexicon = true")
	}
	if got := m.ApplyCharacterReplacements("h3llo"); got != "h3llo" {
		t.Errorf("ApplyCharacterReplacements with empty table = %q, want input", got)
	}
}

func TestMalformedStoreDegrades(t *testing.T) {
	store := writeLexiconDir(t, `{"jejemon_to_normal": [1,2`, "", "", "po\n")
	m := NewManager(store, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if _, ok := m.Lookup("juz"); ok {
		t.Error("Lookup after malformed dictionary = true, want false")
	}
	// Other resources load independently of the broken one.
	if !m.IsCanonical("po") {
		t.Error("IsCanonical(po) = false, want true")
	}
}

func TestLoadContextRulesOrder(t *testing.T) {
	store := writeLexiconDir(t, "", "",
		`{"context_aware_rules": {
  "4": {"context_rules": [{"pattern": "^4", "replacement": "a"}], "default": "a"},
  "3": {"context_rules": [], "default": "e"},
  "z": {"context_rules": [{"pattern": "z$", "replacement": "s"}], "default": "s"}
}}`, "")

	rules, err := store.LoadContextRules()
	if err != nil {
		t.Fatalf("LoadContextRules: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("LoadContextRules returned %d records, want 3", len(rules))
	}
	order := []string{rules[0].Char, rules[1].Char, rules[2].Char}
	want := []string{"4", "3", "z"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("context rule order = %v, want %v", order, want)
	}
	if rules[0].Rules[0].Pattern != "^4" || rules[0].Default != "a" {
		t.Errorf("record for 4 decoded wrong: %+v", rules[0])
	}
}
