package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Key
	}
	return out
}

func TestRankEmptyQueryMatchesEverything(t *testing.T) {
	keys := []string{"a/x", "z"}
	results := Rank(keys, "")
	assert.Len(t, results, 2)
}

func TestRankSingleKeyBucket(t *testing.T) {
	results := Rank([]string{"only"}, "")
	require.Len(t, results, 1)
	assert.Equal(t, "only", results[0].Key)
}

func TestRankBasenameSubstringBeatsSubsequence(t *testing.T) {
	keys := []string{
		"logs/2024/fo-o-report.log", // "foo" as subsequence only (f,o,o present but not contiguous "foo")
		"logs/2024/foo.log",         // exact substring "foo" in basename
	}
	results := Rank(keys, "foo")
	require.Len(t, results, 2)
	assert.Equal(t, "logs/2024/foo.log", results[0].Key)
	assert.Equal(t, TierSubstringBasename, results[0].Tier)
}

func TestRankBasenameBeatsFullKeySubstring(t *testing.T) {
	keys := []string{
		"foo/readme.md", // "foo" is a substring of the full key, not the basename
		"dir/myfoo.txt", // "foo" substring of basename
	}
	results := Rank(keys, "foo")
	require.Len(t, results, 2)
	assert.Equal(t, "dir/myfoo.txt", results[0].Key)
	assert.Equal(t, "foo/readme.md", results[1].Key)
}

func TestRankCaseInsensitive(t *testing.T) {
	results := Rank([]string{"FOO.txt"}, "foo")
	require.Len(t, results, 1)
}

func TestRankExcludesNonMatches(t *testing.T) {
	results := Rank([]string{"abc", "xyz"}, "abc")
	require.Len(t, results, 1)
	assert.Equal(t, "abc", results[0].Key)
}

func TestRankTieBreaksLexicographically(t *testing.T) {
	keys := []string{"b/ab", "a/ab"}
	results := Rank(keys, "ab")
	assert.Equal(t, []string{"a/ab", "b/ab"}, keysOf(results))
}

func TestStickCursorFindsSameKey(t *testing.T) {
	results := []Result{{Key: "a"}, {Key: "b"}, {Key: "c"}}
	assert.Equal(t, 1, StickCursor(results, "b", 99))
}

func TestStickCursorClampsWhenKeyGone(t *testing.T) {
	results := []Result{{Key: "a"}, {Key: "b"}}
	assert.Equal(t, 1, StickCursor(results, "zzz", 5))
	assert.Equal(t, 0, StickCursor(nil, "zzz", 5))
}
