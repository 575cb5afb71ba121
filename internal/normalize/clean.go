package normalize

import (
	"regexp"
	"strings"
)

// Promotional noise that carries no product identity.
var promoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(new|sale|bogo|clearance|special offer|limited time)\b`),
	regexp.MustCompile(`(?i)\b(buy \d+ get \d+)\b`),
	regexp.MustCompile(`[!*#]+`),
}

// Inline retail category abbreviations expanded during cleaning.
var inlineAbbreviations = []struct {
	pattern  *regexp.Regexp
	expanded string
}{
	{regexp.MustCompile(`(?i)\btp\b`), "toothpaste"},
	{regexp.MustCompile(`(?i)\bmw\b`), "mouthwash"},
	{regexp.MustCompile(`(?i)\bsda\b`), "soda"},
	{regexp.MustCompile(`(?i)\bbev\b`), "beverage"},
	{regexp.MustCompile(`(?i)\bdet\b`), "detergent"},
	{regexp.MustCompile(`(?i)\bsh\b`), "shampoo"},
	{regexp.MustCompile(`(?i)\bcond\b`), "conditioner"},
}

// Clean removes promotional text from a description and expands the inline
// category abbreviations retailers append to product names.
func Clean(description string) string {
	text := description

	for _, pattern := range promoPatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	for _, abbrev := range inlineAbbreviations {
		text = abbrev.pattern.ReplaceAllString(text, abbrev.expanded)
	}

	return strings.Join(strings.Fields(text), " ")
}
