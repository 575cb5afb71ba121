package knowledge

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonizeiq/matching-engine/internal/observability"
	"github.com/harmonizeiq/matching-engine/internal/storage"
)

func newTestKB(t *testing.T) *KnowledgeBase {
	t.Helper()
	return New(storage.NewMemoryStore(), observability.Nop())
}

func TestKnowledgeBase_LookupBrand_Static(t *testing.T) {
	kb := newTestKB(t)

	match, ok := kb.LookupBrand("CRST")
	require.True(t, ok)
	assert.Equal(t, "Crest", match.Canonical)
	assert.Equal(t, 1.0, match.Confidence)
	assert.Equal(t, "Oral Care", match.Category)
	assert.Equal(t, "Procter & Gamble", match.Manufacturer)
	assert.Equal(t, SourceStatic, match.Source)
}

func TestKnowledgeBase_LookupBrand_CaseInsensitive(t *testing.T) {
	kb := newTestKB(t)

	for _, alias := range []string{"crst", "Crst", " CRST "} {
		match, ok := kb.LookupBrand(alias)
		require.True(t, ok, "alias %q should resolve", alias)
		assert.Equal(t, "Crest", match.Canonical)
	}
}

func TestKnowledgeBase_LookupBrand_MultiWord(t *testing.T) {
	kb := newTestKB(t)

	match, ok := kb.LookupBrand("MTN DEW")
	require.True(t, ok)
	assert.Equal(t, "Mountain Dew", match.Canonical)
	assert.Equal(t, "PepsiCo", match.Manufacturer)
}

func TestKnowledgeBase_LookupBrand_Unknown(t *testing.T) {
	kb := newTestKB(t)

	_, ok := kb.LookupBrand("ZZZZZ")
	assert.False(t, ok)
}

func TestKnowledgeBase_LookupBrand_LearnedAbbreviationIndirection(t *testing.T) {
	kb := newTestKB(t)

	// A learned abbreviation that expands to a known brand alias resolves
	// through the static table at reduced confidence.
	require.NoError(t, kb.Learn("KOLA", "Coke"))

	match, ok := kb.LookupBrand("KOLA")
	require.True(t, ok)
	assert.Equal(t, "Coca-Cola", match.Canonical)
	assert.Equal(t, 0.95, match.Confidence)
	assert.Equal(t, SourceLearned, match.Source)
}

func TestKnowledgeBase_ExpandAbbreviation_Static(t *testing.T) {
	kb := newTestKB(t)

	expanded, ok := kb.ExpandAbbreviation("WHTN")
	require.True(t, ok)
	assert.Equal(t, "Whitening", expanded)

	expanded, ok = kb.ExpandAbbreviation("prhlth")
	require.True(t, ok)
	assert.Equal(t, "Pro-Health", expanded)
}

func TestKnowledgeBase_ExpandAbbreviation_Miss(t *testing.T) {
	kb := newTestKB(t)

	_, ok := kb.ExpandAbbreviation("XQZT")
	assert.False(t, ok)
}

func TestKnowledgeBase_Learn_StaticWins(t *testing.T) {
	kb := newTestKB(t)

	// Static entries shadow learned ones for the same key.
	require.NoError(t, kb.Learn("ORIG", "Origami"))

	expanded, ok := kb.ExpandAbbreviation("ORIG")
	require.True(t, ok)
	assert.Equal(t, "Original", expanded)
}

func TestKnowledgeBase_Learn_Idempotent(t *testing.T) {
	kb := newTestKB(t)

	require.NoError(t, kb.Learn("GLCR", "Glacier"))
	require.NoError(t, kb.Learn("GLCR", "Glacier"))

	assert.Equal(t, 1, kb.LearnedCount())
}

func TestKnowledgeBase_Learn_EmptyAbbreviation(t *testing.T) {
	kb := newTestKB(t)

	assert.Error(t, kb.Learn("  ", "Nothing"))
}

func TestKnowledgeBase_Learn_Persistence(t *testing.T) {
	store := storage.NewMemoryStore()

	kb := New(store, observability.Nop())
	require.NoError(t, kb.Learn("GLCR", "Glacier"))

	// A fresh knowledge base over the same store sees the learned mapping.
	reloaded := New(store, observability.Nop())
	expanded, ok := reloaded.ExpandAbbreviation("glcr")
	require.True(t, ok)
	assert.Equal(t, "Glacier", expanded)
	assert.Equal(t, 1, reloaded.LearnedCount())
}

func TestKnowledgeBase_CorruptStoreDegradesToStatic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learned_mappings.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	kb := New(storage.NewFileStore(path), observability.Nop())

	assert.Equal(t, 0, kb.LearnedCount())
	match, ok := kb.LookupBrand("CREST")
	require.True(t, ok)
	assert.Equal(t, "Crest", match.Canonical)
}

func TestKnowledgeBase_Learn_Concurrent(t *testing.T) {
	kb := newTestKB(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, kb.Learn("FOOA", "Fooa"))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, kb.Learn("BARB", "Barb"))
	}()
	wg.Wait()

	_, okA := kb.ExpandAbbreviation("FOOA")
	_, okB := kb.ExpandAbbreviation("BARB")
	assert.True(t, okA, "first concurrent learn must not be lost")
	assert.True(t, okB, "second concurrent learn must not be lost")
	assert.Equal(t, 2, kb.LearnedCount())
}

func TestKnowledgeBase_Brands_SortedAndDeduplicated(t *testing.T) {
	kb := newTestKB(t)

	brands := kb.Brands()
	require.NotEmpty(t, brands)
	assert.IsIncreasing(t, brands)

	// Many aliases collapse to one canonical name.
	count := 0
	for _, b := range brands {
		if b == "Crest" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestKnowledgeBase_BrandInfoByName(t *testing.T) {
	kb := newTestKB(t)

	info, ok := kb.BrandInfoByName("crest")
	require.True(t, ok)
	assert.Equal(t, "Crest", info.Name)
	assert.Equal(t, "Oral Care", info.Category)

	_, ok = kb.BrandInfoByName("NoSuchBrand")
	assert.False(t, ok)
}
