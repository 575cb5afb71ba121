// Package expansion expands retailer shorthand tokens into full words using
// four fallback strategies of decreasing confidence: dictionary lookup,
// known-word match, consonant-skeleton pattern and fuzzy similarity.
package expansion

import (
	"sort"
	"strings"
	"unicode"

	"github.com/harmonizeiq/matching-engine/internal/knowledge"
	"github.com/harmonizeiq/matching-engine/internal/similarity"
)

// Expansion methods, in decreasing order of trust.
const (
	MethodDictionary = "dictionary"
	MethodPattern    = "pattern"
	MethodFuzzy      = "fuzzy"
	MethodNone       = "none"
)

// Result describes one token expansion.
type Result struct {
	Original   string  `json:"original"`
	Expanded   string  `json:"expanded"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// Expander expands abbreviations against the knowledge base and a table of
// common product words.
type Expander struct {
	kb    *knowledge.KnowledgeBase
	words map[string]string // uppercase -> canonical form
	keys  []string          // sorted word keys, fixes candidate iteration order
}

// NewExpander creates an expander backed by the given knowledge base.
func NewExpander(kb *knowledge.KnowledgeBase) *Expander {
	words := commonWords()
	keys := make([]string, 0, len(words))
	for k := range words {
		keys = append(keys, k)
	}
	// Candidates are always tried in lexical key order and replaced only by a
	// strictly better score, so ties resolve to the lexically smallest word.
	sort.Strings(keys)

	return &Expander{kb: kb, words: words, keys: keys}
}

// Expand expands a single token using the best available strategy. When no
// strategy matches, the original token is returned capitalized with zero
// confidence and method "none".
func (e *Expander) Expand(token string) Result {
	clean := strings.ToUpper(strings.TrimSpace(token))

	// Strategy 1: dictionary (static + learned).
	if expansion, ok := e.kb.ExpandAbbreviation(clean); ok {
		return Result{Original: token, Expanded: expansion, Confidence: 1.0, Method: MethodDictionary}
	}

	// Strategy 2: token already is a known full word.
	if word, ok := e.words[clean]; ok {
		return Result{Original: token, Expanded: word, Confidence: 1.0, Method: MethodDictionary}
	}

	// Strategy 3: vowel-dropping pattern.
	if word, ok := e.matchSkeleton(clean); ok {
		return Result{Original: token, Expanded: word, Confidence: 0.85, Method: MethodPattern}
	}

	// Strategy 4: fuzzy similarity.
	if word, score, ok := e.fuzzyMatch(clean); ok {
		return Result{Original: token, Expanded: word, Confidence: score, Method: MethodFuzzy}
	}

	return Result{Original: token, Expanded: capitalize(token), Confidence: 0.0, Method: MethodNone}
}

// ExpandText expands every whitespace-separated token of text independently
// and reassembles the result with single spaces. The returned slice holds
// only the expansions whose result differs from the original token.
func (e *Expander) ExpandText(text string) (string, []Result) {
	tokens := strings.Fields(text)
	expanded := make([]string, 0, len(tokens))
	var changed []Result

	for _, token := range tokens {
		res := e.Expand(token)
		expanded = append(expanded, res.Expanded)
		if res.Method != MethodNone && !strings.EqualFold(res.Original, res.Expanded) {
			changed = append(changed, res)
		}
	}

	return strings.Join(expanded, " "), changed
}

// matchSkeleton finds a candidate word whose consonant skeleton equals the
// token's. The token must be strictly shorter than the candidate, so full
// words do not match themselves.
func (e *Expander) matchSkeleton(token string) (string, bool) {
	skeleton := similarity.ConsonantSkeleton(token)
	if skeleton == "" {
		return "", false
	}

	for _, key := range e.keys {
		if len(token) < len(key) && similarity.ConsonantSkeleton(key) == skeleton {
			return e.words[key], true
		}
	}
	return "", false
}

// fuzzyMatch scores the token against every candidate word: a prefix bonus
// (token/candidate length ratio plus 0.3, for tokens of at least two runes)
// competes with the plain sequence similarity, and the best-scoring
// candidate wins if it reaches 0.6.
func (e *Expander) fuzzyMatch(token string) (string, float64, bool) {
	best := 0.0
	bestWord := ""

	for _, key := range e.keys {
		if len(token) >= 2 && strings.HasPrefix(key, token) {
			score := float64(len(token))/float64(len(key)) + 0.3
			if score > 1.0 {
				score = 1.0
			}
			if score > best {
				best = score
				bestWord = e.words[key]
			}
		}

		if ratio := similarity.SequenceRatio(token, key); ratio > best {
			best = ratio
			bestWord = e.words[key]
		}
	}

	if bestWord == "" || best < 0.6 {
		return "", 0, false
	}
	return bestWord, best, true
}

// capitalize upcases the first rune and lowercases the rest.
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// commonWords returns the product vocabulary used by the pattern and fuzzy
// strategies, keyed by uppercase form.
func commonWords() map[string]string {
	words := []string{
		"Original", "White", "Whitening", "Clean", "Fresh", "Advanced",
		"Ultra", "Gentle", "Radiant", "Pro", "Health", "Total", "Clinical",
		"Daily", "Moisture", "Renewal", "Classic", "Comfort", "Cool", "Rush",
		"Motion", "Sense", "Arctic", "Mint", "Lemon", "Lime", "Orange",
		"Zero", "Sugar", "Free", "Purified", "Water", "Swagger", "Fiji",
		"Apollo", "Complete", "Cream", "Onion", "Nacho", "Cheese", "Ranch",
		"Double", "Stuf", "Platinum", "Liquid", "Red", "Blue", "Green",
		"Mountain", "Spring", "Berry", "Tropical", "Vanilla", "Chocolate",
		"Strawberry", "Cherry", "Grape", "Apple", "Peach", "Mango",
	}

	m := make(map[string]string, len(words))
	for _, w := range words {
		m[strings.ToUpper(w)] = w
	}
	return m
}
