package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestScorer_AttributeScore_IdenticalBrandAndSize(t *testing.T) {
	s := NewScorer(DefaultWeights())

	// Identical brand, identical size, no category on either side: the
	// category term drops out and the remaining weights renormalize, so
	// the attribute score is exactly 1.0.
	score := s.Score(Input{
		SemanticScore: 1.0,
		MasterBrand:   "Crest",
		RawBrand:      "Crest",
		MasterSize:    ptr(124.21),
		RawSize:       ptr(124.21),
	}, DefaultThresholds())

	assert.InDelta(t, 1.0, score.AttributeScore, 1e-9)
	assert.InDelta(t, 1.0, score.FinalConfidence, 1e-9)
	assert.Equal(t, StatusAutoConfirm, score.RecommendedStatus)
}

func TestScorer_AttributeScore_BrandMismatchMatchingSize(t *testing.T) {
	s := NewScorer(DefaultWeights())

	score := s.Score(Input{
		SemanticScore: 0.5,
		MasterBrand:   "Crest",
		RawBrand:      "Colgate",
		MasterSize:    ptr(124.21),
		RawSize:       ptr(124.21),
	}, DefaultThresholds())

	// No categories: brand/size weights renormalize from 0.5/0.35 to
	// 0.5/0.85 and 0.35/0.85. Fold("Crest") vs Fold("Colgate") share an
	// LCS of 2 ("c","t"): ratio = 2*2/(5+7) = 1/3.
	// attribute = (0.5/0.85)*(1/3) + (0.35/0.85)*1.0 ≈ 0.6078
	assert.InDelta(t, 0.6078, score.AttributeScore, 0.001)
}

func TestScorer_AttributeScore_CategoryTerm(t *testing.T) {
	s := NewScorer(DefaultWeights())

	// With categories present on both sides the full 0.5/0.35/0.15 split
	// applies: 0.5*1 + 0.35*1 + 0.15*1 = 1.0
	score := s.Score(Input{
		SemanticScore:  1.0,
		MasterBrand:    "Crest",
		RawBrand:       "Crest",
		MasterSize:     ptr(124.21),
		RawSize:        ptr(124.21),
		MasterCategory: "Oral Care",
		RawCategory:    "oral care",
	}, DefaultThresholds())
	assert.InDelta(t, 1.0, score.AttributeScore, 1e-9)

	// Category mismatch costs exactly the category weight.
	score = s.Score(Input{
		SemanticScore:  1.0,
		MasterBrand:    "Crest",
		RawBrand:       "Crest",
		MasterSize:     ptr(124.21),
		RawSize:        ptr(124.21),
		MasterCategory: "Oral Care",
		RawCategory:    "Household",
	}, DefaultThresholds())
	assert.InDelta(t, 0.85, score.AttributeScore, 1e-9)
}

func TestScorer_AttributeScore_MissingSides(t *testing.T) {
	s := NewScorer(DefaultWeights())

	// Both brands and both sizes unknown: neutral half credit each.
	// attribute = (0.5/0.85)*0.5 + (0.35/0.85)*0.5 = 0.5
	score := s.Score(Input{SemanticScore: 0.8}, DefaultThresholds())
	assert.InDelta(t, 0.5, score.AttributeScore, 1e-9)

	// One side known, the other not: that term contributes zero.
	// attribute = (0.5/0.85)*0 + (0.35/0.85)*0.5 ≈ 0.2059
	score = s.Score(Input{
		SemanticScore: 0.8,
		MasterBrand:   "Crest",
	}, DefaultThresholds())
	assert.InDelta(t, 0.5*0.35/0.85, score.AttributeScore, 1e-9)
}

func TestScorer_SizeCloseness(t *testing.T) {
	assert.Equal(t, 1.0, sizeCloseness(ptr(100), ptr(100)))
	// |100-80|/100 = 0.2 → closeness 0.8
	assert.InDelta(t, 0.8, sizeCloseness(ptr(100), ptr(80)), 1e-9)
	assert.Equal(t, 0.5, sizeCloseness(nil, nil))
	assert.Equal(t, 0.0, sizeCloseness(ptr(100), nil))
	// Guard: both zero must not divide by zero.
	assert.Equal(t, 1.0, sizeCloseness(ptr(0), ptr(0)))
	assert.Equal(t, 0.0, sizeCloseness(ptr(0), ptr(-1)))
}

func TestScorer_Score_NormalizationBonus(t *testing.T) {
	s := NewScorer(DefaultWeights())

	in := Input{
		SemanticScore: 0.8,
		MasterBrand:   "Crest",
		RawBrand:      "Crest",
		MasterSize:    ptr(124.21),
		RawSize:       ptr(124.21),
		Expansions:    3,
		Normalized:    true,
	}

	// final = 0.7*0.8 + 0.3*1.0 + min(0.05, 3*0.01) = 0.56 + 0.30 + 0.03
	score := s.Score(in, DefaultThresholds())
	assert.InDelta(t, 0.03, score.NormalizationBonus, 1e-9)
	assert.InDelta(t, 0.89, score.FinalConfidence, 1e-9)

	// The bonus caps at 0.05 regardless of expansion count.
	in.Expansions = 12
	score = s.Score(in, DefaultThresholds())
	assert.InDelta(t, 0.05, score.NormalizationBonus, 1e-9)

	// Without normalization there is no bonus.
	in.Normalized = false
	score = s.Score(in, DefaultThresholds())
	assert.Equal(t, 0.0, score.NormalizationBonus)
}

func TestScorer_Score_ClampedToOne(t *testing.T) {
	s := NewScorer(DefaultWeights())

	score := s.Score(Input{
		SemanticScore: 1.0,
		MasterBrand:   "Crest",
		RawBrand:      "Crest",
		MasterSize:    ptr(124.21),
		RawSize:       ptr(124.21),
		Expansions:    5,
		Normalized:    true,
	}, DefaultThresholds())

	// 0.7 + 0.3 + 0.05 would be 1.05 before clamping.
	assert.Equal(t, 1.0, score.FinalConfidence)
}

func TestClassify(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, StatusAutoConfirm, Classify(0.95, th))
	assert.Equal(t, StatusAutoConfirm, Classify(0.90, th))
	assert.Equal(t, StatusPendingReview, Classify(0.89, th))
	assert.Equal(t, StatusPendingReview, Classify(0.60, th))
	assert.Equal(t, StatusLowConfidence, Classify(0.59, th))
}

func TestNewScorer_ZeroWeightsFallBackToDefaults(t *testing.T) {
	s := NewScorer(Weights{})

	score := s.Score(Input{
		SemanticScore: 1.0,
		MasterBrand:   "Crest",
		RawBrand:      "Crest",
		MasterSize:    ptr(100),
		RawSize:       ptr(100),
	}, DefaultThresholds())
	assert.InDelta(t, 1.0, score.FinalConfidence, 1e-9)
}

func TestScorer_BaselineTwoTermWeights(t *testing.T) {
	// Category weight zero with a 0.6/0.4 brand/size split reproduces the
	// two-term attribute scorer.
	s := NewScorer(Weights{Semantic: 0.7, Attribute: 0.3, Brand: 0.6, Size: 0.4})

	score := s.Score(Input{
		SemanticScore: 0.0,
		MasterBrand:   "Crest",
		RawBrand:      "Crest",
		MasterSize:    ptr(100),
		RawSize:       ptr(50),
	}, DefaultThresholds())

	// attribute = 0.6*1.0 + 0.4*(1 - 50/100) = 0.6 + 0.2 = 0.8
	assert.InDelta(t, 0.8, score.AttributeScore, 1e-9)
}
