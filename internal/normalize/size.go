package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Size is an extracted package size. Canonical is the value converted to the
// single canonical unit family (milliliters for volume, grams for mass).
type Size struct {
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Canonical float64 `json:"canonical"`
}

// Longer unit spellings come first so the alternation prefers "liter" over
// "l" and "fl oz" over "oz".
var sizePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(ml|liter|litre|ltr|l|fl\s*oz|floz|oz|gram|gm|g|kg|lbs|lb|count|ct|pack|pk)\b`)

// unitMultipliers converts each accepted unit to the canonical family.
var unitMultipliers = map[string]float64{
	"ml":    1.0,
	"l":     1000.0,
	"ltr":   1000.0,
	"liter": 1000.0,
	"litre": 1000.0,
	"oz":    29.5735,
	"floz":  29.5735,
	"g":     1.0,
	"gm":    1.0,
	"gram":  1.0,
	"kg":    1000.0,
	"lb":    453.592,
	"lbs":   453.592,
	"ct":    1.0,
	"count": 1.0,
	"pk":    1.0,
	"pack":  1.0,
}

// ExtractSize finds the first <number><unit> occurrence in text and returns
// the parsed size plus the text with that occurrence removed. Unparseable or
// absent size text yields ok=false and the input unchanged.
func ExtractSize(text string) (size Size, remaining string, ok bool) {
	loc := sizePattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return Size{}, text, false
	}

	valueText := text[loc[2]:loc[3]]
	unitText := strings.ToLower(strings.ReplaceAll(text[loc[4]:loc[5]], " ", ""))

	value, err := strconv.ParseFloat(valueText, 64)
	if err != nil {
		return Size{}, text, false
	}

	multiplier, known := unitMultipliers[unitText]
	if !known {
		multiplier = 1.0
	}

	size = Size{
		Value:     value,
		Unit:      displayUnit(unitText),
		Canonical: math.Round(value*multiplier*100) / 100,
	}
	remaining = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	return size, remaining, true
}

// displayUnit canonicalizes the displayed unit spelling.
func displayUnit(unit string) string {
	switch unit {
	case "floz":
		return "oz"
	case "l", "ltr", "liter", "litre":
		return "L"
	case "gm":
		return "g"
	default:
		return unit
	}
}

// Suffix renders the size the way it is appended to a normalized
// description, e.g. "4.2oz".
func (s Size) Suffix() string {
	return strconv.FormatFloat(s.Value, 'f', -1, 64) + s.Unit
}
