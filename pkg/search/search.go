// Package search implements the search engine (C6): a ranked, fuzzy
// substring filter over the whole key index, independent of the current
// browse prefix (spec.md §4.6).
package search

import (
	"sort"
	"strings"
)

// MatchTier orders match quality from best to worst (spec.md §4.6): a
// substring of the basename, then a subsequence of the basename, then a
// substring of the full key. A key whose only match is a subsequence of the
// full key still matches, so TierSubsequenceFull is a fourth tier below
// the other three.
type MatchTier int

const (
	TierSubstringBasename MatchTier = iota
	TierSubsequenceBasename
	TierSubstringFull
	TierSubsequenceFull
)

// Result is one ranked candidate.
type Result struct {
	Key  string
	Tier MatchTier
	Pos  int
}

// Rank filters keys by query and returns them ordered best-match-first. An
// empty query matches every key (spec.md §4.6). Ties within a tier break on
// earlier match position, then lexicographically on the key itself.
func Rank(keys []string, query string) []Result {
	q := strings.ToLower(query)
	results := make([]Result, 0, len(keys))

	for _, key := range keys {
		lower := strings.ToLower(key)
		base := basename(lower)

		if q == "" {
			results = append(results, Result{Key: key, Tier: TierSubstringBasename, Pos: 0})
			continue
		}
		if pos := strings.Index(base, q); pos >= 0 {
			results = append(results, Result{Key: key, Tier: TierSubstringBasename, Pos: pos})
			continue
		}
		if ok, pos := subsequenceMatch(base, q); ok {
			results = append(results, Result{Key: key, Tier: TierSubsequenceBasename, Pos: pos})
			continue
		}
		if pos := strings.Index(lower, q); pos >= 0 {
			results = append(results, Result{Key: key, Tier: TierSubstringFull, Pos: pos})
			continue
		}
		if ok, pos := subsequenceMatch(lower, q); ok {
			results = append(results, Result{Key: key, Tier: TierSubsequenceFull, Pos: pos})
			continue
		}
		// No match at any tier: excluded from the result list.
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.Pos != b.Pos {
			return a.Pos < b.Pos
		}
		return a.Key < b.Key
	})
	return results
}

// StickCursor finds prevKey in the new result list so the selection survives
// a recomputation; otherwise it clamps to the new list's bounds (spec.md
// §4.6 "cursor sticks to the same key across recomputations when possible").
func StickCursor(results []Result, prevKey string, prevCursor int) int {
	for i, r := range results {
		if r.Key == prevKey {
			return i
		}
	}
	if len(results) == 0 {
		return 0
	}
	if prevCursor < 0 {
		return 0
	}
	if prevCursor >= len(results) {
		return len(results) - 1
	}
	return prevCursor
}

func basename(lowerKey string) string {
	if i := strings.LastIndexByte(lowerKey, '/'); i >= 0 {
		return lowerKey[i+1:]
	}
	return lowerKey
}

// subsequenceMatch reports whether q occurs as a (not necessarily
// contiguous) subsequence of s, and the index of the first character
// consumed by the match — the "match position" spec.md's tie-break rule
// compares within a tier.
func subsequenceMatch(s, q string) (ok bool, start int) {
	if q == "" {
		return true, 0
	}
	start = -1
	sRunes := []rune(s)
	qRunes := []rune(q)
	qi := 0
	for si := 0; si < len(sRunes) && qi < len(qRunes); si++ {
		if sRunes[si] == qRunes[qi] {
			if start < 0 {
				start = si
			}
			qi++
		}
	}
	return qi == len(qRunes), start
}
