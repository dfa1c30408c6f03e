// ABOUTME: Thin wrapper over sahilm/fuzzy for ranking command names
// ABOUTME: Find returns scored matches; Suggest returns the best few names for "did you mean" hints

package fuzzy

import "github.com/sahilm/fuzzy"

// Match represents a single fuzzy match result.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
}

// Find performs fuzzy matching of pattern against the given items.
// Returns matches sorted by score (best first).
func Find(pattern string, items []string) []Match {
	results := fuzzy.Find(pattern, items)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return matches
}

// Suggest returns up to limit item names matching pattern, best first.
// An empty pattern suggests nothing.
func Suggest(pattern string, items []string, limit int) []string {
	if pattern == "" || limit <= 0 {
		return nil
	}
	results := fuzzy.Find(pattern, items)
	if len(results) > limit {
		results = results[:limit]
	}
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Str
	}
	return names
}
