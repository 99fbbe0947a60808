package fuzzy

import (
	"sort"
	"testing"
)

func TestBKTreeInsert(t *testing.T) {
	tree := NewBKTree()
	tree.InsertAll([]string{"juz", "jusz", "p0wz", "aq", "lng"})

	if tree.Size() != 5 {
		t.Errorf("Size() = %d, want 5", tree.Size())
	}

	tree.Insert("juz")
	if tree.Size() != 5 {
		t.Errorf("Size() after duplicate = %d, want 5", tree.Size())
	}

	tree.Insert("")
	if tree.Size() != 5 {
		t.Errorf("Size() after empty insert = %d, want 5", tree.Size())
	}
}

func TestBKTreeContains(t *testing.T) {
	tree := NewBKTree()
	tree.InsertAll([]string{"juz", "aq", "lng"})

	if !tree.Contains("juz") {
		t.Error("Contains(juz) = false, want true")
	}
	if tree.Contains("xyz") {
		t.Error("Contains(xyz) = true, want false")
	}
}

func TestBKTreeSearch(t *testing.T) {
	tree := NewBKTree()
	words := []string{"juz", "jus", "jusz", "just", "aq", "po"}
	tree.InsertAll(words)

	tests := []struct {
		query    string
		maxDist  int
		expected []string
	}{
		{"juz", 0, []string{"juz"}},
		{"juz", 1, []string{"juz", "jus", "jusz"}},
		{"juz", 2, []string{"juz", "jus", "jusz", "just"}},
		{"zzzzzzzz", 10, words},
	}

	for _, tt := range tests {
		results := tree.Search(tt.query, tt.maxDist)
		got := make([]string, len(results))
		for i, r := range results {
			got[i] = r.Word
		}

		sort.Strings(got)
		want := append([]string(nil), tt.expected...)
		sort.Strings(want)

		if len(got) != len(want) {
			t.Errorf("Search(%q, %d) returned %v, want %v", tt.query, tt.maxDist, got, want)
			continue
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("Search(%q, %d) mismatch at %d: got %q, want %q",
					tt.query, tt.maxDist, i, got[i], want[i])
			}
		}
	}
}

func TestBKTreeSearchEmpty(t *testing.T) {
	tree := NewBKTree()

	if results := tree.Search("juz", 1); len(results) > 0 {
		t.Errorf("Search on empty tree returned %v, want nil", results)
	}

	tree.Insert("juz")
	if results := tree.Search("", 1); len(results) > 0 {
		t.Errorf("Search with empty query returned %v, want nil", results)
	}
}

func BenchmarkBKTreeSearch(b *testing.B) {
	tree := NewBKTree()
	base := []string{"juz", "jusz", "p0wz", "aq", "lng", "ganda", "kaayo"}
	for i := 0; i < 5000; i++ {
		tree.Insert(base[i%len(base)] + string(rune('a'+i%26)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search("jusz", 2)
	}
}
