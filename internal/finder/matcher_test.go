package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzyScoreSubsequence(t *testing.T) {
	_, ok := fuzzyScore("report.pdf", "rpt")
	assert.True(t, ok, "rpt is a subsequence of report.pdf")

	_, ok = fuzzyScore("airport.txt", "rpt")
	assert.True(t, ok, "rpt is a subsequence of airport.txt")

	_, ok = fuzzyScore("report.pdf", "xyz")
	assert.False(t, ok)

	_, ok = fuzzyScore("notes.txt", "ston")
	assert.False(t, ok, "characters present but out of order")
}

func TestFuzzyScoreSmartCase(t *testing.T) {
	// Lowercase queries match regardless of name casing.
	_, ok := fuzzyScore("Report.PDF", "rpt")
	assert.True(t, ok)

	// An uppercase query demands a case-sensitive subsequence.
	_, ok = fuzzyScore("report.pdf", "RPT")
	assert.False(t, ok)

	_, ok = fuzzyScore("Report.pdf", "Rep")
	assert.True(t, ok)
}

func TestFuzzyScorePrefersTighterMatch(t *testing.T) {
	tight, ok := fuzzyScore("rpt.txt", "rpt")
	assert.True(t, ok)
	loose, ok := fuzzyScore("r-e-p-o-r-t.txt", "rpt")
	assert.True(t, ok)
	assert.Greater(t, tight, loose, "contiguous match should outscore a scattered one")
}

func TestIsBlank(t *testing.T) {
	assert.True(t, isBlank(""))
	assert.True(t, isBlank("   \t\n"))
	assert.False(t, isBlank(" a "))
}

func TestIsSubsequence(t *testing.T) {
	assert.True(t, isSubsequence("", "anything"))
	assert.True(t, isSubsequence("act", "abstract"))
	assert.False(t, isSubsequence("cat", "act"))
}
