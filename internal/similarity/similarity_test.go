package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold_CaseAndPunctuation(t *testing.T) {
	assert.Equal(t, "lay s", Fold("Lay's!"))
	assert.Equal(t, "head shoulders", Fold("Head & Shoulders"))
	assert.Equal(t, "crest", Fold("  CREST  "))
}

func TestFold_Accents(t *testing.T) {
	// Accented characters transliterate to plain ASCII before comparison.
	assert.Equal(t, "creme", Fold("Crème"))
	assert.Equal(t, "nestle", Fold("Nestlé"))
	assert.Equal(t, Fold("Danone"), Fold("Danoné"))
}

func TestConsonantSkeleton(t *testing.T) {
	assert.Equal(t, "WHTNNG", ConsonantSkeleton("whitening"))
	assert.Equal(t, "WHTN", ConsonantSkeleton("WHTN"))
	assert.Equal(t, "", ConsonantSkeleton("aeiou"))
	assert.Equal(t, "", ConsonantSkeleton(""))
}

func TestSequenceRatio_Identical(t *testing.T) {
	assert.Equal(t, 1.0, SequenceRatio("crest", "crest"))
}

func TestSequenceRatio_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, SequenceRatio("abc", "xyz"))
}

func TestSequenceRatio_Subsequence(t *testing.T) {
	// "WHTN" is a length-4 subsequence of "WHITENING" (length 9):
	// 2*4 / (4+9) = 8/13 ≈ 0.6154
	assert.InDelta(t, 8.0/13.0, SequenceRatio("WHTN", "WHITENING"), 1e-9)
}

func TestSequenceRatio_Empty(t *testing.T) {
	assert.Equal(t, 1.0, SequenceRatio("", ""))
	assert.Equal(t, 0.0, SequenceRatio("", "crest"))
	assert.Equal(t, 0.0, SequenceRatio("crest", ""))
}

func TestSequenceRatio_Symmetric(t *testing.T) {
	assert.Equal(t, SequenceRatio("colgate", "crest"), SequenceRatio("crest", "colgate"))
}
