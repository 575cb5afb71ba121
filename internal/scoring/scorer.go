// Package scoring combines an externally computed semantic similarity with a
// locally computed attribute similarity and a normalization bonus into one
// confidence value and a categorical match decision.
package scoring

import (
	"math"

	"github.com/harmonizeiq/matching-engine/internal/similarity"
)

// Status is the recommended disposition of a proposed match.
type Status string

const (
	StatusAutoConfirm   Status = "auto_confirm"
	StatusPendingReview Status = "pending_review"
	StatusLowConfidence Status = "low_confidence"
)

// Thresholds classify a final confidence into a Status. They are supplied by
// the feedback learner and adapt over time.
type Thresholds struct {
	AutoConfirm float64 `json:"auto_confirm_threshold"`
	Review      float64 `json:"review_threshold"`
}

// DefaultThresholds returns the thresholds used before any feedback exists.
func DefaultThresholds() Thresholds {
	return Thresholds{AutoConfirm: 0.90, Review: 0.60}
}

// Weights holds the scoring weights. Semantic and Attribute split the final
// confidence; Brand, Size and Category split the attribute score. Setting
// Category to 0 with Brand/Size at 0.6/0.4 reproduces the baseline two-term
// attribute scorer.
type Weights struct {
	Semantic  float64
	Attribute float64
	Brand     float64
	Size      float64
	Category  float64
}

// DefaultWeights returns the standard 0.70/0.30 semantic/attribute split
// with the 0.5/0.35/0.15 brand/size/category attribute split.
func DefaultWeights() Weights {
	return Weights{
		Semantic:  0.70,
		Attribute: 0.30,
		Brand:     0.50,
		Size:      0.35,
		Category:  0.15,
	}
}

// Input carries everything the scorer needs for one master/raw pair. Sizes
// are canonical values (ml/g); nil means unknown. Empty brand or category
// strings mean absent.
type Input struct {
	SemanticScore  float64
	MasterBrand    string
	RawBrand       string
	MasterSize     *float64
	RawSize        *float64
	MasterCategory string
	RawCategory    string

	// Expansions is the number of distinct successful token expansions made
	// while normalizing the raw description; only counted when Normalized.
	Expansions int
	Normalized bool
}

// Score is the combined match score.
type Score struct {
	SemanticScore      float64 `json:"semantic_score"`
	AttributeScore     float64 `json:"attribute_score"`
	NormalizationBonus float64 `json:"normalization_bonus"`
	FinalConfidence    float64 `json:"final_confidence"`
	RecommendedStatus  Status  `json:"recommended_status"`
}

// Scorer computes match scores with a fixed set of weights.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer. Zero-valued weights fall back to the defaults.
func NewScorer(weights Weights) *Scorer {
	if weights.Semantic == 0 && weights.Attribute == 0 {
		weights = DefaultWeights()
	}
	return &Scorer{weights: weights}
}

// Score combines the semantic score, the attribute score and the
// normalization bonus, clamps to [0,1] and classifies against thresholds.
func (s *Scorer) Score(in Input, thresholds Thresholds) Score {
	attribute := s.attributeScore(in)

	bonus := 0.0
	if in.Normalized {
		bonus = math.Min(0.05, 0.01*float64(in.Expansions))
	}

	final := s.weights.Semantic*in.SemanticScore + s.weights.Attribute*attribute + bonus
	final = math.Max(0, math.Min(1, final))

	return Score{
		SemanticScore:      in.SemanticScore,
		AttributeScore:     attribute,
		NormalizationBonus: bonus,
		FinalConfidence:    final,
		RecommendedStatus:  Classify(final, thresholds),
	}
}

// Classify maps a final confidence to a recommended status.
func Classify(confidence float64, thresholds Thresholds) Status {
	switch {
	case confidence >= thresholds.AutoConfirm:
		return StatusAutoConfirm
	case confidence >= thresholds.Review:
		return StatusPendingReview
	default:
		return StatusLowConfidence
	}
}

// attributeScore blends brand similarity, size closeness and category match.
// When both category hints are absent the category term drops out and the
// brand/size weights are renormalized over the remaining weight, so two
// fully known, identical records score exactly 1.0.
func (s *Scorer) attributeScore(in Input) float64 {
	brandWeight := s.weights.Brand
	sizeWeight := s.weights.Size
	categoryWeight := s.weights.Category

	haveCategory := in.MasterCategory != "" || in.RawCategory != ""
	if !haveCategory && categoryWeight > 0 {
		remaining := brandWeight + sizeWeight
		if remaining > 0 {
			brandWeight /= remaining
			sizeWeight /= remaining
		}
		categoryWeight = 0
	}

	score := brandWeight * brandSimilarity(in.MasterBrand, in.RawBrand)
	score += sizeWeight * sizeCloseness(in.MasterSize, in.RawSize)
	if categoryWeight > 0 {
		score += categoryWeight * categoryMatch(in.MasterCategory, in.RawCategory)
	}
	return score
}

// brandSimilarity is a string-similarity ratio between the two brand names
// after case and accent folding. Both absent contributes neutral half
// credit; only one side known contributes zero.
func brandSimilarity(master, raw string) float64 {
	switch {
	case master == "" && raw == "":
		return 0.5
	case master == "" || raw == "":
		return 0
	}
	return similarity.SequenceRatio(similarity.Fold(master), similarity.Fold(raw))
}

// sizeCloseness compares canonical sizes: 1 when equal, decreasing with the
// relative difference, neutral half credit when both absent, zero when only
// one side is known. The division is guarded against zero sizes.
func sizeCloseness(master, raw *float64) float64 {
	switch {
	case master == nil && raw == nil:
		return 0.5
	case master == nil || raw == nil:
		return 0
	}

	a, b := *master, *raw
	if a == b {
		return 1
	}
	maxSize := math.Max(a, b)
	if maxSize <= 0 {
		return 0
	}
	return math.Max(0, 1-math.Abs(a-b)/maxSize)
}

// categoryMatch is 1 when both category hints are present and equal.
func categoryMatch(master, raw string) float64 {
	if master != "" && raw != "" && similarity.Fold(master) == similarity.Fold(raw) {
		return 1
	}
	return 0
}
