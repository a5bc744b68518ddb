package finder

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// fuzzyScore rates how well name matches query, smart-case style: the
// match is case-insensitive unless the query itself contains an
// uppercase rune, in which case the query must also appear as a
// case-sensitive subsequence of the name. Returns false when the query
// characters do not appear in order.
func fuzzyScore(name, query string) (int64, bool) {
	matches := fuzzy.Find(query, []string{name})
	if len(matches) == 0 {
		return 0, false
	}
	if hasUpper(query) && !isSubsequence(query, name) {
		return 0, false
	}
	return int64(matches[0].Score), true
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// isSubsequence reports whether needle's runes appear in haystack in
// order, case sensitively.
func isSubsequence(needle, haystack string) bool {
	if needle == "" {
		return true
	}
	runes := []rune(needle)
	i := 0
	for _, r := range haystack {
		if r == runes[i] {
			i++
			if i == len(runes) {
				return true
			}
		}
	}
	return false
}

// isBlank reports whether a query is empty or whitespace-only.
func isBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}
