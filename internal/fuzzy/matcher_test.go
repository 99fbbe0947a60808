package fuzzy

import (
	"math"
	"testing"
)

func TestFindBestMatch(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	best, score := m.FindBestMatch("helo", []string{"hello", "world"})
	if best != "hello" {
		t.Errorf("FindBestMatch(helo) = %q, want hello", best)
	}
	if score <= 0.6 {
		t.Errorf("FindBestMatch(helo) score = %v, want > 0.6", score)
	}
}

func TestFindBestMatchNoCandidates(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	best, score := m.FindBestMatch("helo", nil)
	if best != "" || score != 0.0 {
		t.Errorf("FindBestMatch with no candidates = %q, %v, want empty, 0", best, score)
	}
}

func TestFindBestMatchTieKeepsFirst(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	// "helo" is distance 1 from both; the first candidate must win the tie.
	best, _ := m.FindBestMatch("helo", []string{"helot", "heloc"})
	if best != "helot" {
		t.Errorf("tie broke to %q, want first-seen helot", best)
	}

	best, _ = m.FindBestMatch("helo", []string{"heloc", "helot"})
	if best != "heloc" {
		t.Errorf("tie broke to %q, want first-seen heloc", best)
	}
}

func TestMatchesAboveThreshold(t *testing.T) {
	m := NewMatcher(0.6)

	matches := m.MatchesAboveThreshold("hello", []string{"hello", "hallo", "xyzzy", "hell"})
	if len(matches) != 3 {
		t.Fatalf("MatchesAboveThreshold returned %d matches, want 3: %v", len(matches), matches)
	}
	if matches[0].Word != "hello" || math.Abs(matches[0].Score-1.0) > 1e-9 {
		t.Errorf("first match = %+v, want hello at 1.0", matches[0])
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not sorted descending: %v", matches)
		}
	}
}

func TestMatchesAboveThresholdStableTies(t *testing.T) {
	m := NewMatcher(0.5)

	// Both candidates score identically against the query.
	matches := m.MatchesAboveThreshold("abc", []string{"abd", "abe"})
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Word != "abd" || matches[1].Word != "abe" {
		t.Errorf("tied matches reordered: %v", matches)
	}
}
