// Package normalize turns messy, abbreviated retailer product descriptions
// into clean, matchable canonical form: clean, extract size, tokenize,
// detect brand, expand remaining tokens, reassemble.
package normalize

import (
	"regexp"
	"strings"

	"github.com/harmonizeiq/matching-engine/internal/expansion"
	"github.com/harmonizeiq/matching-engine/internal/knowledge"
)

// Result is the outcome of normalizing one description. Given a fixed
// dictionary snapshot, identical input always yields an identical Result.
type Result struct {
	Original        string             `json:"original"`
	Normalized      string             `json:"normalized"`
	Brand           string             `json:"brand,omitempty"`
	BrandConfidence float64            `json:"brand_confidence"`
	Size            *Size              `json:"size,omitempty"`
	Expansions      []expansion.Result `json:"expansions,omitempty"`
	CategoryHint    string             `json:"category_hint,omitempty"`
}

// Normalizer is the full normalization pipeline over a knowledge base and an
// abbreviation expander.
type Normalizer struct {
	kb       *knowledge.KnowledgeBase
	expander *expansion.Expander
}

// NewNormalizer creates a normalizer.
func NewNormalizer(kb *knowledge.KnowledgeBase, expander *expansion.Expander) *Normalizer {
	return &Normalizer{kb: kb, expander: expander}
}

var disallowed = regexp.MustCompile(`[^\w\s\-&.']`)
var separators = regexp.MustCompile(`[\s\-_]+`)

// Normalize runs the whole pipeline on one description.
func (n *Normalizer) Normalize(text string) Result {
	original := strings.TrimSpace(text)
	res := Result{Original: original}

	cleaned := cleanText(original)

	size, remaining, found := ExtractSize(cleaned)
	if found {
		res.Size = &size
	} else {
		remaining = cleaned
	}

	tokens := tokenize(remaining)

	// Brand detection: the longest leading window of up to three tokens that
	// resolves in the knowledge base wins and its tokens are consumed.
	brandTokens := 0
	for i := min(3, len(tokens)); i > 0; i-- {
		window := strings.Join(tokens[:i], " ")
		if match, ok := n.kb.LookupBrand(window); ok {
			res.Brand = match.Canonical
			res.BrandConfidence = match.Confidence
			res.CategoryHint = match.Category
			brandTokens = i
			if !strings.EqualFold(window, match.Canonical) {
				res.Expansions = append(res.Expansions, expansion.Result{
					Original:   window,
					Expanded:   match.Canonical,
					Confidence: match.Confidence,
					Method:     expansion.MethodDictionary,
				})
			}
			break
		}
	}

	normalized := make([]string, 0, len(tokens)+1)
	if res.Brand != "" {
		normalized = append(normalized, res.Brand)
	}

	for _, token := range tokens[brandTokens:] {
		expanded := n.expander.Expand(token)
		normalized = append(normalized, expanded.Expanded)
		if expanded.Method != expansion.MethodNone && !strings.EqualFold(expanded.Original, expanded.Expanded) {
			res.Expansions = append(res.Expansions, expanded)
		}
	}

	res.Normalized = strings.Join(normalized, " ")
	if res.Size != nil {
		res.Normalized = strings.TrimSpace(res.Normalized + " " + res.Size.Suffix())
	}

	return res
}

// NormalizeBatch normalizes multiple descriptions.
func (n *Normalizer) NormalizeBatch(texts []string) []Result {
	results := make([]Result, len(texts))
	for i, text := range texts {
		results[i] = n.Normalize(text)
	}
	return results
}

// ExpansionSummary renders a human-readable summary of the expansions made.
func ExpansionSummary(res Result) string {
	if len(res.Expansions) == 0 {
		return "No expansions made"
	}

	parts := make([]string, len(res.Expansions))
	for i, exp := range res.Expansions {
		parts[i] = "'" + exp.Original + "' -> '" + exp.Expanded + "'"
	}
	return strings.Join(parts, ", ")
}

// cleanText strips characters outside alphanumerics, spaces and -&.' and
// collapses whitespace.
func cleanText(text string) string {
	cleaned := disallowed.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// tokenize splits on whitespace, hyphens and underscores.
func tokenize(text string) []string {
	parts := separators.Split(text, -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
