package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonizeiq/matching-engine/internal/config"
	"github.com/harmonizeiq/matching-engine/internal/learning"
	"github.com/harmonizeiq/matching-engine/internal/scoring"
	"github.com/harmonizeiq/matching-engine/internal/storage"
)

func newTestEngine(t *testing.T, cfg *config.Config) *Engine {
	t.Helper()
	e, err := NewWithStores(cfg, nil,
		storage.NewMemoryStore(), storage.NewMemoryStore(), storage.NewMemoryStore())
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestEngine_Normalize(t *testing.T) {
	e := newTestEngine(t, nil)

	res := e.Normalize("CRST PRHLTH WHTN 4.2OZ")
	assert.Equal(t, "Crest", res.Brand)
	assert.Equal(t, "Crest Pro-Health Whitening 4.2oz", res.Normalized)
	assert.Len(t, res.Expansions, 3)
}

func TestEngine_NormalizeBatch(t *testing.T) {
	e := newTestEngine(t, nil)

	results := e.NormalizeBatch([]string{"CRST WHTN", "PEPSI 2L"})
	require.Len(t, results, 2)
	assert.Equal(t, "Crest", results[0].Brand)
	assert.Equal(t, "Pepsi", results[1].Brand)
}

func TestEngine_ExpandText(t *testing.T) {
	e := newTestEngine(t, nil)

	expanded, results := e.ExpandText("ORIG WHTN")
	assert.Equal(t, "Original Whitening", expanded)
	assert.Len(t, results, 2)
}

func TestEngine_ParseAndClean(t *testing.T) {
	e := newTestEngine(t, nil)

	attrs := e.Parse("Crest Whitening Toothpaste 4.2oz")
	assert.Equal(t, "Crest", attrs.Brand)
	require.NotNil(t, attrs.Size)
	assert.Equal(t, 4.2, attrs.Size.Value)

	assert.Equal(t, "Crest toothpaste", e.Clean("NEW! Crest TP SALE"))
}

func TestEngine_Brands(t *testing.T) {
	e := newTestEngine(t, nil)

	brands := e.Brands()
	assert.Contains(t, brands, "Crest")
	assert.Contains(t, brands, "Pepsi")
}

func TestEngine_BrandInfo(t *testing.T) {
	e := newTestEngine(t, nil)

	info, ok := e.BrandInfo("Crest")
	require.True(t, ok)
	assert.Equal(t, "Crest", info.Name)
	assert.Equal(t, "Oral Care", info.Category)
	assert.Equal(t, "P&G", info.Manufacturer)

	_, ok = e.BrandInfo("Nonexistent")
	assert.False(t, ok)
}

func TestEngine_Match_WithNormalization(t *testing.T) {
	e := newTestEngine(t, nil)

	score := e.Match(MatchRequest{
		MasterText:    "Crest Pro-Health Whitening 4.2oz",
		RawText:       "CRST PRHLTH WHTN 4.2OZ",
		SemanticScore: 0.9,
		Normalize:     true,
	})

	// Brand and size agree; the raw side carries a category hint the
	// master lacks, so the category term scores zero:
	// attribute = 0.5*1.0 + 0.35*1.0 + 0.15*0 = 0.85
	assert.InDelta(t, 0.85, score.AttributeScore, 1e-9)

	// Three distinct expansions (CRST, PRHLTH, WHTN) earn a 0.03 bonus:
	// final = 0.7*0.9 + 0.3*0.85 + 0.03 = 0.915
	assert.InDelta(t, 0.03, score.NormalizationBonus, 1e-9)
	assert.InDelta(t, 0.915, score.FinalConfidence, 1e-9)
	assert.Equal(t, scoring.StatusAutoConfirm, score.RecommendedStatus)
}

func TestEngine_Match_ExplicitAttributes(t *testing.T) {
	e := newTestEngine(t, nil)

	size := 124.21
	score := e.Match(MatchRequest{
		MasterText:    "irrelevant",
		MasterBrand:   "Crest",
		MasterSize:    &size,
		RawText:       "irrelevant",
		RawBrand:      "Crest",
		RawSize:       &size,
		SemanticScore: 1.0,
	})

	// Supplied attributes skip extraction entirely. Identical brand and
	// size with no categories renormalize to attribute = 1.0:
	// final = 0.7*1.0 + 0.3*1.0 = 1.0
	assert.InDelta(t, 1.0, score.FinalConfidence, 1e-9)
	assert.Equal(t, 0.0, score.NormalizationBonus)
}

func TestEngine_Match_LowConfidence(t *testing.T) {
	e := newTestEngine(t, nil)

	score := e.Match(MatchRequest{
		MasterText:    "Tide Liquid Detergent 100oz",
		RawText:       "PEPSI 2L",
		SemanticScore: 0.1,
		Normalize:     true,
	})
	assert.Equal(t, scoring.StatusLowConfidence, score.RecommendedStatus)
}

func TestEngine_SemanticScore_CachesVectors(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		var req struct {
			Texts []string `json:"texts"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		vectors := map[string][]float32{
			"crest whitening":   {1, 0, 0},
			"colgate whitening": {0.5, 0.5, 0},
		}
		embeddings := make([][]float32, len(req.Texts))
		for i, text := range req.Texts {
			embeddings[i] = vectors[text]
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count":      len(embeddings),
			"embeddings": embeddings,
			"dimension":  3,
		})
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Embedding.BaseURL = srv.URL
	cfg.Embedding.Dimension = 3
	e := newTestEngine(t, cfg)

	ctx := context.Background()
	score, err := e.SemanticScore(ctx, "crest whitening", "colgate whitening")
	require.NoError(t, err)
	// cos([1,0,0], [0.5,0.5,0]) = 0.5/(1*0.7071) ≈ 0.7071
	assert.InDelta(t, 0.7071, score, 0.001)
	assert.Equal(t, int32(2), requests.Load())

	// Repeating the comparison hits the vector cache, not the provider.
	again, err := e.SemanticScore(ctx, "crest whitening", "colgate whitening")
	require.NoError(t, err)
	assert.Equal(t, score, again)
	assert.Equal(t, int32(2), requests.Load())
}

func TestEngine_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Texts []string `json:"texts"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		vectors := map[string][]float32{
			"whitening toothpaste": {1, 0, 0},
			"crest whitening":      {1, 0, 0},
			"colgate whitening":    {0.5, 0.5, 0},
			"pepsi cola":           {0, 1, 0},
		}
		embeddings := make([][]float32, len(req.Texts))
		for i, text := range req.Texts {
			embeddings[i] = vectors[text]
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count":      len(embeddings),
			"embeddings": embeddings,
			"dimension":  3,
		})
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Embedding.BaseURL = srv.URL
	cfg.Embedding.Dimension = 3
	e := newTestEngine(t, cfg)

	ctx := context.Background()
	corpus := []string{"pepsi cola", "crest whitening", "colgate whitening"}

	results, err := e.Search(ctx, "whitening toothpaste", corpus, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	// cos([1,0,0], [1,0,0]) = 1.0; cos([1,0,0], [0.5,0.5,0]) ≈ 0.7071
	assert.Equal(t, 1, results[0].Index)
	assert.Equal(t, "crest whitening", results[0].Text)
	assert.InDelta(t, 1.0, results[0].Score, 0.001)
	assert.Equal(t, 2, results[1].Index)
	assert.InDelta(t, 0.7071, results[1].Score, 0.001)

	// topK <= 0 returns the full ranking; the orthogonal entry comes last.
	all, err := e.Search(ctx, "whitening toothpaste", corpus, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 0, all[2].Index)
	assert.Equal(t, 0.0, all[2].Score)

	none, err := e.Search(ctx, "whitening toothpaste", nil, 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEngine_RecordDecision_GeneratesMappingID(t *testing.T) {
	e := newTestEngine(t, nil)

	d, err := e.RecordDecision("", "CRST WHTN", "Crest Whitening", learning.DecisionApproved, 0.92, "retailer-a", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, d.MappingID)

	d2, err := e.RecordDecision("mapping-7", "TDE PODS", "Tide Pods", learning.DecisionApproved, 0.88, "retailer-a", nil)
	require.NoError(t, err)
	assert.Equal(t, "mapping-7", d2.MappingID)
}

func TestEngine_FeedbackAdjustsThresholds(t *testing.T) {
	e := newTestEngine(t, nil)

	// Before any feedback the defaults classify 0.915 as auto-confirm.
	score := e.Match(MatchRequest{
		MasterText:    "Crest Pro-Health Whitening 4.2oz",
		RawText:       "CRST PRHLTH WHTN 4.2OZ",
		SemanticScore: 0.9,
		Normalize:     true,
	})
	assert.Equal(t, scoring.StatusAutoConfirm, score.RecommendedStatus)

	// Twenty approvals all at 0.97 move the auto-confirm threshold up to
	// their 5th percentile (0.97), demoting a 0.915 match to review.
	for i := 0; i < 20; i++ {
		_, err := e.RecordDecision("", "RAW", "Canonical", learning.DecisionApproved, 0.97, "retailer-a", nil)
		require.NoError(t, err)
	}

	score = e.Match(MatchRequest{
		MasterText:    "Crest Pro-Health Whitening 4.2oz",
		RawText:       "CRST PRHLTH WHTN 4.2OZ",
		SemanticScore: 0.9,
		Normalize:     true,
	})
	assert.Equal(t, scoring.StatusPendingReview, score.RecommendedStatus)
}

func TestEngine_PatternsAndStats(t *testing.T) {
	e := newTestEngine(t, nil)

	for i := 0; i < 3; i++ {
		_, err := e.RecordDecision("", "GLCR", "Glacier", learning.DecisionApproved, 0.9, "retailer-a", nil)
		require.NoError(t, err)
	}

	patterns := e.Patterns(1)
	require.Len(t, patterns, 1)
	assert.Equal(t, "GLCR", patterns[0].Abbreviation)

	stats := e.SourceStats("retailer-a")
	require.Contains(t, stats, "retailer-a")
	assert.Equal(t, 3, stats["retailer-a"].Total)

	assert.Empty(t, e.SourceStats("retailer-z"))

	all := e.SourceStats("")
	assert.Len(t, all, 1)

	rec := e.Recommendations()
	assert.Equal(t, 3, rec.TotalDecisions)

	summary := e.LearningSummary()
	assert.Equal(t, 3, summary.TotalDecisions)
	assert.Equal(t, 1, summary.PatternsLearned)
}

func TestEngine_PromotedPatternFeedsNormalization(t *testing.T) {
	e := newTestEngine(t, nil)

	// GLCR is unknown before promotion.
	before := e.Normalize("PEPSI GLCR 2L")
	assert.NotContains(t, before.Normalized, "Glacier")

	for i := 0; i < 3; i++ {
		_, err := e.RecordDecision("", "GLCR", "Glacier", learning.DecisionApproved, 0.9, "retailer-a", nil)
		require.NoError(t, err)
	}

	after := e.Normalize("PEPSI GLCR 2L")
	assert.Equal(t, "Pepsi Glacier 2L", after.Normalized)
}
