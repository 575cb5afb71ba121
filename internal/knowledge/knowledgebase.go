// Package knowledge provides the brand and abbreviation knowledge base: a
// static FMCG dictionary augmented by mappings learned from human feedback,
// persisted through an injectable store.
package knowledge

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/harmonizeiq/matching-engine/internal/observability"
	"github.com/harmonizeiq/matching-engine/internal/storage"
)

// EntrySource marks where a dictionary entry came from.
type EntrySource string

const (
	SourceStatic  EntrySource = "static"
	SourceLearned EntrySource = "learned"
)

// BrandInfo is the canonical identity behind one or more aliases.
type BrandInfo struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Manufacturer string `json:"manufacturer"`
}

// BrandMatch is the result of a brand lookup.
type BrandMatch struct {
	Original     string
	Canonical    string
	Confidence   float64
	Category     string
	Manufacturer string
	Source       EntrySource
}

// LearnedMappings is the on-disk representation of the learned store: an
// abbreviations mapping plus a reserved slot for learned brand aliases.
type LearnedMappings struct {
	Abbreviations map[string]string    `json:"abbreviations"`
	Brands        map[string]BrandInfo `json:"brands"`
}

// KnowledgeBase maps abbreviations and codes to canonical brand identities
// and expanded words. The static tables are immutable after construction;
// the learned tables grow through Learn and are rewritten to the store on
// every mutation.
type KnowledgeBase struct {
	brands        map[string]BrandInfo
	abbreviations map[string]string

	mu            sync.RWMutex
	learned       map[string]string
	learnedBrands map[string]BrandInfo

	store storage.Store
	log   *observability.Logger
}

// New creates a knowledge base seeded from the static tables and augmented
// by whatever the store holds. A missing or corrupt store is logged and
// treated as empty; the static dictionary is always available.
func New(store storage.Store, log *observability.Logger) *KnowledgeBase {
	kb := &KnowledgeBase{
		brands:        staticBrands(),
		abbreviations: staticAbbreviations(),
		learned:       make(map[string]string),
		learnedBrands: make(map[string]BrandInfo),
		store:         store,
		log:           log,
	}

	var persisted LearnedMappings
	if err := store.Load(&persisted); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn().Err(err).Msg("could not load learned mappings, starting with static dictionary only")
		}
		return kb
	}

	for abbrev, expansion := range persisted.Abbreviations {
		kb.learned[strings.ToUpper(abbrev)] = expansion
	}
	for alias, info := range persisted.Brands {
		kb.learnedBrands[strings.ToUpper(alias)] = info
	}

	log.Info().
		Int("abbreviations", len(kb.learned)).
		Int("brands", len(kb.learnedBrands)).
		Msg("loaded learned mappings")
	return kb
}

// LookupBrand resolves text to a canonical brand identity. The static
// dictionary is consulted first at full confidence; learned aliases resolve
// at 0.95, signaling lower trust.
func (kb *KnowledgeBase) LookupBrand(text string) (BrandMatch, bool) {
	key := strings.ToUpper(strings.TrimSpace(text))

	if info, ok := kb.brands[key]; ok {
		return BrandMatch{
			Original:     text,
			Canonical:    info.Name,
			Confidence:   1.0,
			Category:     info.Category,
			Manufacturer: info.Manufacturer,
			Source:       SourceStatic,
		}, true
	}

	kb.mu.RLock()
	defer kb.mu.RUnlock()

	if info, ok := kb.learnedBrands[key]; ok {
		return BrandMatch{
			Original:     text,
			Canonical:    info.Name,
			Confidence:   0.95,
			Category:     info.Category,
			Manufacturer: info.Manufacturer,
			Source:       SourceLearned,
		}, true
	}

	// A learned abbreviation may resolve to a known brand alias.
	if expansion, ok := kb.learned[key]; ok {
		if info, ok := kb.brands[strings.ToUpper(expansion)]; ok {
			return BrandMatch{
				Original:     text,
				Canonical:    info.Name,
				Confidence:   0.95,
				Category:     info.Category,
				Manufacturer: info.Manufacturer,
				Source:       SourceLearned,
			}, true
		}
	}

	return BrandMatch{}, false
}

// ExpandAbbreviation expands a single token. Static abbreviations win over
// learned ones.
func (kb *KnowledgeBase) ExpandAbbreviation(token string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(token))

	if expansion, ok := kb.abbreviations[key]; ok {
		return expansion, true
	}

	kb.mu.RLock()
	defer kb.mu.RUnlock()

	if expansion, ok := kb.learned[key]; ok {
		return expansion, true
	}
	return "", false
}

// Learn upserts an abbreviation mapping into the learned table and rewrites
// the persisted store. The upsert is idempotent. A failed write is reported
// but does not roll back the in-memory state, which stays authoritative
// until the next successful save.
func (kb *KnowledgeBase) Learn(abbreviation, expansion string) error {
	key := strings.ToUpper(strings.TrimSpace(abbreviation))
	if key == "" {
		return fmt.Errorf("learn: empty abbreviation")
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	kb.learned[key] = expansion

	snapshot := LearnedMappings{
		Abbreviations: make(map[string]string, len(kb.learned)),
		Brands:        make(map[string]BrandInfo, len(kb.learnedBrands)),
	}
	for k, v := range kb.learned {
		snapshot.Abbreviations[k] = v
	}
	for k, v := range kb.learnedBrands {
		snapshot.Brands[k] = v
	}

	if err := kb.store.Save(&snapshot); err != nil {
		kb.log.Warn().Err(err).Str("abbreviation", key).Msg("could not persist learned mappings")
		return fmt.Errorf("persist learned mappings: %w", err)
	}

	kb.log.Debug().Str("abbreviation", key).Str("expansion", expansion).Msg("learned abbreviation")
	return nil
}

// LearnedCount returns the number of learned abbreviation mappings.
func (kb *KnowledgeBase) LearnedCount() int {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return len(kb.learned)
}

// Brands returns the sorted set of all known canonical brand names.
func (kb *KnowledgeBase) Brands() []string {
	seen := make(map[string]struct{})
	for _, info := range kb.brands {
		seen[info.Name] = struct{}{}
	}

	kb.mu.RLock()
	for _, info := range kb.learnedBrands {
		seen[info.Name] = struct{}{}
	}
	kb.mu.RUnlock()

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BrandInfoByName returns the identity record behind a canonical brand name.
func (kb *KnowledgeBase) BrandInfoByName(name string) (BrandInfo, bool) {
	for _, info := range kb.brands {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}

	kb.mu.RLock()
	defer kb.mu.RUnlock()
	for _, info := range kb.learnedBrands {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}
	return BrandInfo{}, false
}
