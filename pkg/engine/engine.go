// Package engine wires the matching-engine core together and exposes its
// public operations: normalization, expansion, match scoring, feedback
// recording and learning introspection.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/harmonizeiq/matching-engine/internal/cache"
	"github.com/harmonizeiq/matching-engine/internal/config"
	"github.com/harmonizeiq/matching-engine/internal/embedding"
	"github.com/harmonizeiq/matching-engine/internal/expansion"
	"github.com/harmonizeiq/matching-engine/internal/knowledge"
	"github.com/harmonizeiq/matching-engine/internal/learning"
	"github.com/harmonizeiq/matching-engine/internal/normalize"
	"github.com/harmonizeiq/matching-engine/internal/observability"
	"github.com/harmonizeiq/matching-engine/internal/scoring"
	"github.com/harmonizeiq/matching-engine/internal/storage"
)

// Engine is the shared matching engine instance. Read operations are safe
// for concurrent use; mutating operations are serialized internally.
type Engine struct {
	cfg *config.Config
	log *observability.Logger

	kb         *knowledge.KnowledgeBase
	expander   *expansion.Expander
	normalizer *normalize.Normalizer
	scorer     *scoring.Scorer
	learner    *learning.Learner

	embedder *embedding.Client
	vectors  cache.Client
}

// New creates an engine with file-backed stores under the configured data
// directory.
func New(cfg *config.Config, log *observability.Logger) (*Engine, error) {
	stores := cfg.Stores
	return NewWithStores(cfg, log,
		storage.NewFileStore(filepath.Join(stores.DataDir, stores.LearnedMappings)),
		storage.NewFileStore(filepath.Join(stores.DataDir, stores.Decisions)),
		storage.NewFileStore(filepath.Join(stores.DataDir, stores.Patterns)),
	)
}

// NewWithStores creates an engine with injected persistence stores. Tests
// substitute in-memory stores here.
func NewWithStores(cfg *config.Config, log *observability.Logger,
	mappingStore, decisionStore, patternStore storage.Store) (*Engine, error) {

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = observability.Nop()
	}

	kb := knowledge.New(mappingStore, log)
	expander := expansion.NewExpander(kb)
	normalizer := normalize.NewNormalizer(kb, expander)

	scorer := scoring.NewScorer(scoring.Weights{
		Semantic:  cfg.Scoring.SemanticWeight,
		Attribute: cfg.Scoring.AttributeWeight,
		Brand:     cfg.Scoring.BrandWeight,
		Size:      cfg.Scoring.SizeWeight,
		Category:  cfg.Scoring.CategoryWeight,
	})

	defaults := scoring.Thresholds{
		AutoConfirm: cfg.Scoring.AutoConfirmThreshold,
		Review:      cfg.Scoring.ReviewThreshold,
	}
	learner := learning.NewLearner(kb, decisionStore, patternStore, defaults, log)

	embedder, err := embedding.NewClient(embedding.Config{
		APIKey:    cfg.Embedding.APIKey,
		Model:     cfg.Embedding.Model,
		BaseURL:   cfg.Embedding.BaseURL,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding client: %w", err)
	}

	var vectors cache.Client
	switch cfg.Cache.Driver {
	case "redis":
		vectors, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
	default:
		vectors = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}

	return &Engine{
		cfg:        cfg,
		log:        log,
		kb:         kb,
		expander:   expander,
		normalizer: normalizer,
		scorer:     scorer,
		learner:    learner,
		embedder:   embedder,
		vectors:    vectors,
	}, nil
}

// Close releases the engine's cache resources.
func (e *Engine) Close() error {
	return e.vectors.Close()
}

// Normalize runs the full normalization pipeline on one description.
func (e *Engine) Normalize(text string) normalize.Result {
	return e.normalizer.Normalize(text)
}

// NormalizeBatch normalizes multiple descriptions.
func (e *Engine) NormalizeBatch(texts []string) []normalize.Result {
	return e.normalizer.NormalizeBatch(texts)
}

// ExpandText expands every token of text and returns the reassembled text
// plus the expansions that changed something.
func (e *Engine) ExpandText(text string) (string, []expansion.Result) {
	return e.expander.ExpandText(text)
}

// Parse extracts brand, size and variant attributes from a description.
func (e *Engine) Parse(description string) normalize.Attributes {
	return e.normalizer.Parse(description)
}

// Clean strips promotional noise and expands inline category abbreviations.
func (e *Engine) Clean(description string) string {
	return normalize.Clean(description)
}

// Brands returns all known canonical brand names.
func (e *Engine) Brands() []string {
	return e.kb.Brands()
}

// BrandInfo returns the identity record behind a canonical brand name.
func (e *Engine) BrandInfo(name string) (knowledge.BrandInfo, bool) {
	return e.kb.BrandInfoByName(name)
}

// MatchRequest carries one master/raw candidate pair. Attributes left empty
// or nil are extracted from the texts. SemanticScore must already be
// resolved by the caller (see SemanticScore).
type MatchRequest struct {
	MasterText     string
	MasterBrand    string
	MasterSize     *float64 // canonical ml/g
	MasterCategory string

	RawText     string
	RawBrand    string
	RawSize     *float64
	RawCategory string

	SemanticScore float64
	Normalize     bool
}

// Match scores a master/raw pair against the current adaptive thresholds.
func (e *Engine) Match(req MatchRequest) scoring.Score {
	in := scoring.Input{
		SemanticScore:  req.SemanticScore,
		MasterBrand:    req.MasterBrand,
		RawBrand:       req.RawBrand,
		MasterSize:     req.MasterSize,
		RawSize:        req.RawSize,
		MasterCategory: req.MasterCategory,
		RawCategory:    req.RawCategory,
		Normalized:     req.Normalize,
	}

	if in.MasterBrand == "" || in.MasterSize == nil {
		attrs := e.normalizer.Parse(req.MasterText)
		if in.MasterBrand == "" {
			in.MasterBrand = attrs.Brand
		}
		if in.MasterSize == nil && attrs.Size != nil {
			in.MasterSize = &attrs.Size.Canonical
		}
	}

	if req.Normalize {
		res := e.normalizer.Normalize(req.RawText)
		in.Expansions = distinctExpansions(res.Expansions)
		if in.RawBrand == "" {
			in.RawBrand = res.Brand
		}
		if in.RawSize == nil && res.Size != nil {
			in.RawSize = &res.Size.Canonical
		}
		if in.RawCategory == "" {
			in.RawCategory = res.CategoryHint
		}
	} else if in.RawBrand == "" || in.RawSize == nil {
		attrs := e.normalizer.Parse(req.RawText)
		if in.RawBrand == "" {
			in.RawBrand = attrs.Brand
		}
		if in.RawSize == nil && attrs.Size != nil {
			in.RawSize = &attrs.Size.Canonical
		}
	}

	return e.scorer.Score(in, e.learner.Thresholds())
}

// SemanticScore embeds both texts through the external provider and returns
// their cosine similarity. Vectors are cached, so repeated comparisons of
// catalog records avoid round trips. This is the only operation that blocks
// on network I/O.
func (e *Engine) SemanticScore(ctx context.Context, master, raw string) (float64, error) {
	masterVec, err := e.vector(ctx, master)
	if err != nil {
		return 0, err
	}
	rawVec, err := e.vector(ctx, raw)
	if err != nil {
		return 0, err
	}
	return embedding.Cosine(masterVec, rawVec), nil
}

// vector fetches one embedding, preferring the cache.
func (e *Engine) vector(ctx context.Context, text string) ([]float32, error) {
	key := vectorKey(e.cfg.Embedding.Model, text)

	if data, err := e.vectors.Get(ctx, key); err == nil {
		var vec []float32
		if err := json.Unmarshal(data, &vec); err == nil {
			return vec, nil
		}
		// Undecodable entry: drop it and re-embed.
		_ = e.vectors.Delete(ctx, key)
	}

	vecs, err := e.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed text: %w", err)
	}

	if data, err := json.Marshal(vecs[0]); err == nil {
		if err := e.vectors.Set(ctx, key, data, e.cfg.Cache.TTL); err != nil {
			e.log.Warn().Err(err).Msg("could not cache embedding vector")
		}
	}
	return vecs[0], nil
}

func vectorKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return "vec:" + hex.EncodeToString(sum[:])
}

// SearchResult is one ranked corpus entry returned by Search.
type SearchResult struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Search ranks the corpus texts by cosine similarity against the query and
// returns the topK best matches, highest first. Ties keep corpus order.
// Vectors go through the same cache as SemanticScore. A topK of zero or
// less returns the full ranking.
func (e *Engine) Search(ctx context.Context, query string, corpus []string, topK int) ([]SearchResult, error) {
	if len(corpus) == 0 {
		return nil, nil
	}

	queryVec, err := e.vector(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(corpus))
	for i, text := range corpus {
		vec, err := e.vector(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed corpus entry %d: %w", i, err)
		}
		results = append(results, SearchResult{
			Index: i,
			Text:  text,
			Score: embedding.Cosine(queryVec, vec),
		})
	}

	sort.SliceStable(results, func(a, b int) bool { return results[a].Score > results[b].Score })
	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// RecordDecision appends a human verdict and learns from it. An empty
// mappingID is replaced by a fresh UUID.
func (e *Engine) RecordDecision(mappingID, rawDescription, canonicalProduct, decision string,
	originalConfidence float64, sourceID string, corrections map[string]string) (learning.Decision, error) {

	if mappingID == "" {
		mappingID = uuid.NewString()
	}
	return e.learner.RecordDecision(mappingID, rawDescription, canonicalProduct, decision,
		originalConfidence, sourceID, corrections)
}

// Patterns returns learned patterns with at least minOccurrences sightings.
func (e *Engine) Patterns(minOccurrences int) []learning.Pattern {
	return e.learner.Patterns(minOccurrences)
}

// SourceStats returns statistics for one source, or for every source when
// sourceID is empty.
func (e *Engine) SourceStats(sourceID string) map[string]learning.SourceStats {
	if sourceID == "" {
		return e.learner.AllStats()
	}

	stats, ok := e.learner.StatsForSource(sourceID)
	if !ok {
		return map[string]learning.SourceStats{}
	}
	return map[string]learning.SourceStats{sourceID: stats}
}

// Recommendations returns the current adaptive threshold recommendations.
func (e *Engine) Recommendations() learning.Recommendations {
	return e.learner.Recommendations()
}

// LearningSummary aggregates what the engine has learned so far.
func (e *Engine) LearningSummary() learning.Summary {
	return e.learner.LearningSummary()
}

// distinctExpansions counts distinct successfully expanded tokens.
func distinctExpansions(expansions []expansion.Result) int {
	seen := make(map[string]struct{}, len(expansions))
	for _, exp := range expansions {
		seen[strings.ToUpper(exp.Original)] = struct{}{}
	}
	return len(seen)
}
