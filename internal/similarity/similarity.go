// Package similarity provides the string heuristics shared by abbreviation
// expansion and attribute scoring: sequence similarity, consonant skeletons
// and accent-insensitive folding.
package similarity

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
var multiSpace = regexp.MustCompile(`\s+`)

// Fold lowercases s, transliterates accents to ASCII and strips everything
// except letters, digits and single spaces. Two brand names that fold to the
// same string are considered identical.
func Fold(s string) string {
	folded := unidecode.Unidecode(strings.ToLower(s))
	folded = nonAlnum.ReplaceAllString(folded, " ")
	folded = multiSpace.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// ConsonantSkeleton removes all vowels from s, uppercased. "WHITENING"
// becomes "WHTNNG"; vowel-dropping abbreviations share a skeleton prefix
// with their expansion.
func ConsonantSkeleton(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch r {
		case 'A', 'E', 'I', 'O', 'U':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SequenceRatio returns a similarity ratio in [0,1] between a and b:
// 2*M / (len(a)+len(b)) where M is the length of the longest common
// subsequence of runes. Identical strings score 1, disjoint strings 0.
func SequenceRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	m := lcs(ra, rb)
	return 2 * float64(m) / float64(len(ra)+len(rb))
}

// lcs computes the longest common subsequence length with a two-row DP.
func lcs(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
