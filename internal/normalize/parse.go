package normalize

import (
	"regexp"
	"strings"
)

// Attributes are the product attributes parsed out of a raw description.
type Attributes struct {
	Brand   string `json:"brand,omitempty"`
	Size    *Size  `json:"size,omitempty"`
	Variant string `json:"variant,omitempty"`
}

var variantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(mint|fresh|clean|original|cherry|vanilla|lemon|lime|orange|grape)\b`),
	regexp.MustCompile(`(?i)\b(whitening|sensitive|protection|deep clean|advanced)\b`),
}

// Parse extracts brand, size and a variant/flavor hint from a description
// without rewriting it.
func (n *Normalizer) Parse(description string) Attributes {
	attrs := Attributes{}

	cleaned := cleanText(description)

	if size, _, ok := ExtractSize(cleaned); ok {
		attrs.Size = &size
	}

	tokens := tokenize(cleaned)
	for i := min(3, len(tokens)); i > 0; i-- {
		window := strings.Join(tokens[:i], " ")
		if match, ok := n.kb.LookupBrand(window); ok {
			attrs.Brand = match.Canonical
			break
		}
	}

	for _, pattern := range variantPatterns {
		if m := pattern.FindString(description); m != "" {
			attrs.Variant = titleCase(m)
			break
		}
	}

	return attrs
}

// titleCase uppercases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
