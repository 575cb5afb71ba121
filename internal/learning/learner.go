// Package learning stores human approve/reject feedback, mines new
// abbreviation patterns from approvals, tracks per-source accuracy and
// recomputes the adaptive confidence thresholds used for match
// classification.
package learning

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/harmonizeiq/matching-engine/internal/knowledge"
	"github.com/harmonizeiq/matching-engine/internal/observability"
	"github.com/harmonizeiq/matching-engine/internal/scoring"
	"github.com/harmonizeiq/matching-engine/internal/similarity"
	"github.com/harmonizeiq/matching-engine/internal/storage"
)

// Decision verdicts.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// maxRetainedDecisions bounds the decision log, in memory and on disk.
const maxRetainedDecisions = 10000

// Pattern promotion gates: a mined pattern enters the knowledge base once it
// reaches this confidence and occurrence count.
const (
	promotionConfidence  = 0.8
	promotionOccurrences = 3
	maxPatternConfidence = 0.95
)

// Decision is one immutable human verdict on a proposed match.
type Decision struct {
	MappingID          string            `json:"mapping_id"`
	RawDescription     string            `json:"raw_description"`
	CanonicalProduct   string            `json:"canonical_product"`
	Decision           string            `json:"decision"`
	OriginalConfidence float64           `json:"original_confidence"`
	SourceID           string            `json:"source_id"`
	Timestamp          string            `json:"timestamp"`
	Corrections        map[string]string `json:"corrections,omitempty"`
}

// Pattern is an abbreviation pattern mined from approved matches. Confidence
// is monotonically non-decreasing and capped at 0.95.
type Pattern struct {
	Abbreviation string   `json:"abbreviation"`
	Expansion    string   `json:"expansion"`
	Occurrences  int      `json:"occurrences"`
	Confidence   float64  `json:"confidence"`
	Sources      []string `json:"sources"`
	LastSeen     string   `json:"last_seen"`
}

// SourceStats tracks decision outcomes for one retailer source.
type SourceStats struct {
	Total                 int     `json:"total"`
	Approved              int     `json:"approved"`
	Rejected              int     `json:"rejected"`
	AvgConfidenceApproved float64 `json:"avg_confidence_approved"`
	AvgConfidenceRejected float64 `json:"avg_confidence_rejected"`
	ApprovalRate          float64 `json:"approval_rate"`
}

// Recommendations carries the adaptive thresholds derived from feedback.
type Recommendations struct {
	AutoConfirmThreshold float64 `json:"auto_confirm_threshold"`
	ReviewThreshold      float64 `json:"review_threshold"`
	TotalDecisions       int     `json:"total_decisions"`
	Approved             int     `json:"approved"`
	Rejected             int     `json:"rejected"`
	ApprovalRate         float64 `json:"approval_rate"`
	Message              string  `json:"message,omitempty"`
}

// Summary aggregates everything the engine has learned so far.
type Summary struct {
	TotalDecisions         int                    `json:"total_decisions"`
	PatternsLearned        int                    `json:"patterns_learned"`
	HighConfidencePatterns int                    `json:"high_confidence_patterns"`
	SourcesSeen            []string               `json:"sources_seen"`
	SourceStats            map[string]SourceStats `json:"source_stats"`
	Recommendations        Recommendations        `json:"recommendations"`
}

// Learner owns the decision log, the pattern store and the per-source
// statistics. Reads are concurrent; mutations are serialized and followed by
// a synchronous rewrite of the persisted stores.
type Learner struct {
	kb       *knowledge.KnowledgeBase
	defaults scoring.Thresholds
	log      *observability.Logger
	now      func() time.Time

	decisionStore storage.Store
	patternStore  storage.Store

	mu        sync.RWMutex
	decisions []Decision
	patterns  map[string]*Pattern
	stats     map[string]*SourceStats
}

// NewLearner creates a learner, loading both persisted stores. A missing or
// corrupt store is logged and treated as empty.
func NewLearner(kb *knowledge.KnowledgeBase, decisionStore, patternStore storage.Store,
	defaults scoring.Thresholds, log *observability.Logger) *Learner {

	l := &Learner{
		kb:            kb,
		defaults:      defaults,
		log:           log,
		now:           time.Now,
		decisionStore: decisionStore,
		patternStore:  patternStore,
		patterns:      make(map[string]*Pattern),
		stats:         make(map[string]*SourceStats),
	}

	var decisions []Decision
	if err := decisionStore.Load(&decisions); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn().Err(err).Msg("could not load decision log, starting empty")
		}
	} else {
		l.decisions = decisions
	}

	var patterns map[string]*Pattern
	if err := patternStore.Load(&patterns); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn().Err(err).Msg("could not load pattern store, starting empty")
		}
	} else if patterns != nil {
		l.patterns = patterns
	}

	for i := range l.decisions {
		l.updateStats(&l.decisions[i])
	}

	log.Info().
		Int("decisions", len(l.decisions)).
		Int("patterns", len(l.patterns)).
		Msg("loaded feedback history")
	return l
}

// RecordDecision appends an immutable decision, updates source statistics
// and, on approval, mines abbreviation patterns from the raw/canonical pair.
// A failed persistence write is returned but does not roll back the
// in-memory state.
func (l *Learner) RecordDecision(mappingID, rawDescription, canonicalProduct, decision string,
	originalConfidence float64, sourceID string, corrections map[string]string) (Decision, error) {

	if decision != DecisionApproved && decision != DecisionRejected {
		return Decision{}, fmt.Errorf("record decision: unknown verdict %q", decision)
	}

	d := Decision{
		MappingID:          mappingID,
		RawDescription:     rawDescription,
		CanonicalProduct:   canonicalProduct,
		Decision:           decision,
		OriginalConfidence: originalConfidence,
		SourceID:           sourceID,
		Timestamp:          l.now().UTC().Format(time.RFC3339),
		Corrections:        corrections,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.decisions = append(l.decisions, d)
	if len(l.decisions) > maxRetainedDecisions {
		trimmed := make([]Decision, maxRetainedDecisions)
		copy(trimmed, l.decisions[len(l.decisions)-maxRetainedDecisions:])
		l.decisions = trimmed
	}

	l.updateStats(&d)

	var promoteErr error
	if decision == DecisionApproved {
		promoteErr = l.minePatterns(rawDescription, canonicalProduct, sourceID)
	}

	var saveErr error
	if err := l.decisionStore.Save(l.decisions); err != nil {
		l.log.Warn().Err(err).Msg("could not persist decision log")
		saveErr = fmt.Errorf("persist decisions: %w", err)
	}
	if err := l.patternStore.Save(l.patterns); err != nil {
		l.log.Warn().Err(err).Msg("could not persist pattern store")
		saveErr = errors.Join(saveErr, fmt.Errorf("persist patterns: %w", err))
	}

	return d, errors.Join(saveErr, promoteErr)
}

// updateStats folds one decision into the running per-source means. Caller
// holds the write lock (or is still single-threaded during construction).
func (l *Learner) updateStats(d *Decision) {
	stats, ok := l.stats[d.SourceID]
	if !ok {
		stats = &SourceStats{}
		l.stats[d.SourceID] = stats
	}

	stats.Total++
	if d.Decision == DecisionApproved {
		stats.Approved++
		n := float64(stats.Approved)
		stats.AvgConfidenceApproved = (stats.AvgConfidenceApproved*(n-1) + d.OriginalConfidence) / n
	} else {
		stats.Rejected++
		n := float64(stats.Rejected)
		stats.AvgConfidenceRejected = (stats.AvgConfidenceRejected*(n-1) + d.OriginalConfidence) / n
	}
}

// minePatterns aligns raw tokens with canonical tokens and records every
// plausible abbreviation pair. Caller holds the write lock.
func (l *Learner) minePatterns(raw, canonical, sourceID string) error {
	rawTokens := strings.Fields(strings.ToUpper(raw))
	canonicalTokens := strings.Fields(strings.ToUpper(canonical))

	var promoteErr error
	for _, rawToken := range rawTokens {
		if len(rawToken) < 2 || containsDigit(rawToken) {
			continue
		}

		for _, candidate := range canonicalTokens {
			if !isAbbreviationOf(rawToken, candidate) {
				continue
			}
			if err := l.recordPattern(rawToken, candidate, sourceID); err != nil {
				promoteErr = errors.Join(promoteErr, err)
			}
			break
		}
	}
	return promoteErr
}

// isAbbreviationOf reports whether abbrev plausibly abbreviates full: it
// must be strictly shorter, and either its consonant skeleton is a prefix of
// full's skeleton or full starts with it.
func isAbbreviationOf(abbrev, full string) bool {
	if len(abbrev) >= len(full) {
		return false
	}

	skeleton := similarity.ConsonantSkeleton(abbrev)
	if skeleton != "" && strings.HasPrefix(similarity.ConsonantSkeleton(full), skeleton) {
		return true
	}

	return len(abbrev) >= 2 && strings.HasPrefix(full, abbrev)
}

// recordPattern upserts a mined pattern and promotes it into the knowledge
// base once it clears the promotion gates. Promotion is idempotent. Caller
// holds the write lock.
func (l *Learner) recordPattern(abbreviation, expansion, sourceID string) error {
	key := strings.ToUpper(abbreviation)
	now := l.now().UTC().Format(time.RFC3339)

	pattern, ok := l.patterns[key]
	if ok {
		pattern.Occurrences++
		pattern.Confidence = math.Min(maxPatternConfidence, 0.7+float64(pattern.Occurrences)*0.05)
		pattern.LastSeen = now
		if !containsString(pattern.Sources, sourceID) {
			pattern.Sources = append(pattern.Sources, sourceID)
		}
	} else {
		pattern = &Pattern{
			Abbreviation: key,
			Expansion:    capitalize(expansion),
			Occurrences:  1,
			Confidence:   0.7,
			Sources:      []string{sourceID},
			LastSeen:     now,
		}
		l.patterns[key] = pattern
	}

	if pattern.Confidence >= promotionConfidence && pattern.Occurrences >= promotionOccurrences {
		if err := l.kb.Learn(key, pattern.Expansion); err != nil {
			return fmt.Errorf("promote pattern %s: %w", key, err)
		}
		l.log.Info().
			Str("abbreviation", key).
			Str("expansion", pattern.Expansion).
			Int("occurrences", pattern.Occurrences).
			Msg("promoted learned pattern")
	}
	return nil
}

// Patterns returns learned patterns with at least minOccurrences sightings,
// most frequent first.
func (l *Learner) Patterns(minOccurrences int) []Pattern {
	l.mu.RLock()
	defer l.mu.RUnlock()

	patterns := make([]Pattern, 0, len(l.patterns))
	for _, p := range l.patterns {
		if p.Occurrences >= minOccurrences {
			patterns = append(patterns, *p)
		}
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Occurrences != patterns[j].Occurrences {
			return patterns[i].Occurrences > patterns[j].Occurrences
		}
		return patterns[i].Abbreviation < patterns[j].Abbreviation
	})
	return patterns
}

// StatsForSource returns the statistics for one source.
func (l *Learner) StatsForSource(sourceID string) (SourceStats, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats, ok := l.stats[sourceID]
	if !ok {
		return SourceStats{}, false
	}
	return withApprovalRate(*stats), true
}

// AllStats returns the statistics for every source seen so far.
func (l *Learner) AllStats() map[string]SourceStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]SourceStats, len(l.stats))
	for source, stats := range l.stats {
		out[source] = withApprovalRate(*stats)
	}
	return out
}

// Recommendations derives classification thresholds from the recorded
// feedback. The auto-confirm threshold sits at the 5th percentile of
// approved confidences, so roughly 95% of historically approved matches
// would clear it; the review threshold sits just below the lowest rejected
// confidence, floored at 0.50.
func (l *Learner) Recommendations() Recommendations {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.decisions) == 0 {
		return Recommendations{
			AutoConfirmThreshold: l.defaults.AutoConfirm,
			ReviewThreshold:      l.defaults.Review,
			Message:              "No feedback decisions yet. Using defaults.",
		}
	}

	var approved, rejected []float64
	for i := range l.decisions {
		if l.decisions[i].Decision == DecisionApproved {
			approved = append(approved, l.decisions[i].OriginalConfidence)
		} else {
			rejected = append(rejected, l.decisions[i].OriginalConfidence)
		}
	}

	rec := Recommendations{
		TotalDecisions: len(l.decisions),
		Approved:       len(approved),
		Rejected:       len(rejected),
		ApprovalRate:   float64(len(approved)) / float64(len(l.decisions)),
	}

	if len(approved) == 0 {
		rec.AutoConfirmThreshold = l.defaults.AutoConfirm
		rec.ReviewThreshold = l.defaults.Review
		rec.Message = "No approved matches yet. Using defaults."
		return rec
	}

	sort.Float64s(approved)
	idx := int(0.05 * float64(len(approved)))
	rec.AutoConfirmThreshold = round2(approved[idx])

	rec.ReviewThreshold = l.defaults.Review
	if len(rejected) > 0 {
		minRejected := rejected[0]
		for _, c := range rejected[1:] {
			if c < minRejected {
				minRejected = c
			}
		}
		rec.ReviewThreshold = round2(math.Max(0.50, minRejected-0.05))
	}

	return rec
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Thresholds returns the current adaptive thresholds for the scorer.
func (l *Learner) Thresholds() scoring.Thresholds {
	rec := l.Recommendations()
	return scoring.Thresholds{AutoConfirm: rec.AutoConfirmThreshold, Review: rec.ReviewThreshold}
}

// LearningSummary aggregates decision counts, pattern counts and per-source
// approval rates.
func (l *Learner) LearningSummary() Summary {
	stats := l.AllStats()
	rec := l.Recommendations()

	l.mu.RLock()
	defer l.mu.RUnlock()

	highConfidence := 0
	for _, p := range l.patterns {
		if p.Confidence >= promotionConfidence {
			highConfidence++
		}
	}

	sources := make([]string, 0, len(stats))
	for source := range stats {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	return Summary{
		TotalDecisions:         len(l.decisions),
		PatternsLearned:        len(l.patterns),
		HighConfidencePatterns: highConfidence,
		SourcesSeen:            sources,
		SourceStats:            stats,
		Recommendations:        rec,
	}
}

func withApprovalRate(stats SourceStats) SourceStats {
	if stats.Total > 0 {
		stats.ApprovalRate = float64(stats.Approved) / float64(stats.Total)
	}
	return stats
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
