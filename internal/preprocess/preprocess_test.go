package preprocess

import "testing"

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"acute", "kumustá", "kumusta"},
		{"tilde", "niño", "nino"},
		{"plain ascii untouched", "musta po", "musta po"},
		{"mixed", "Güten ábá", "Guten aba"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FoldASCII(tt.input)
			if result != tt.expected {
				t.Errorf("FoldASCII(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips punctuation", "musta, po!!", "musta po"},
		{"collapses spaces", "musta   na\tpo", "musta na po"},
		{"lowercases", "MUSTA Po", "musta po"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clean(tt.input)
			if result != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeSpaces(t *testing.T) {
	if got := NormalizeSpaces("  a  b  "); got != "a b" {
		t.Errorf("NormalizeSpaces = %q, want %q", got, "a b")
	}
}
