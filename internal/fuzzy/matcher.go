// Package fuzzy provides similarity search over candidate word lists.
package fuzzy

import (
	"sort"

	"jejemonly/internal/editdist"
)

// DefaultThreshold is the similarity cutoff used when none is configured.
const DefaultThreshold = 0.6

// Match pairs a candidate with its similarity score.
type Match struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Matcher scans candidate lists for words similar to a query.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with the given similarity threshold.
func NewMatcher(threshold float64) *Matcher {
	return &Matcher{threshold: threshold}
}

// Threshold returns the configured similarity cutoff.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// FindBestMatch returns the candidate with the highest similarity to word.
// A candidate replaces the current best only on a strictly greater score,
// so ties keep whichever candidate appeared first in the supplied order.
// With no candidates the result is an empty word and score 0.
func (m *Matcher) FindBestMatch(word string, candidates []string) (string, float64) {
	bestMatch := ""
	bestScore := 0.0

	for _, candidate := range candidates {
		score := editdist.Similarity(word, candidate)
		if score > bestScore {
			bestScore = score
			bestMatch = candidate
		}
	}

	return bestMatch, bestScore
}

// MatchesAboveThreshold returns every candidate scoring at or above the
// threshold, sorted by score descending. The sort is stable, so equal
// scores keep the supplied candidate order.
func (m *Matcher) MatchesAboveThreshold(word string, candidates []string) []Match {
	var matches []Match
	for _, candidate := range candidates {
		score := editdist.Similarity(word, candidate)
		if score >= m.threshold {
			matches = append(matches, Match{Word: candidate, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
