// Package normalize provides canonical forms for catalog values so that
// article numbers, IP codes, lamp names and numeric strings written in
// different conventions compare equal.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ArticleNumber canonicalizes an article number to its decimal digit string.
// Accepts int, float and numeric strings ("40025", "40025.0", 40025.0 all
// yield "40025"). Non-numeric input falls through to its string form, it
// never fails.
func ArticleNumber(value any) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case float32:
		return strconv.FormatInt(int64(v), 10)
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64)
		if err != nil {
			return v
		}
		return strconv.FormatInt(int64(f), 10)
	default:
		return fmt.Sprint(value)
	}
}

// IP canonicalizes an Ingress Protection code to the form "IP<digits>".
// Accepts int, float or a string with or without the "IP" prefix.
// Returns "N/A" for nil or unparseable input.
func IP(value any) string {
	switch v := value.(type) {
	case int:
		return "IP" + strconv.Itoa(v)
	case int64:
		return "IP" + strconv.FormatInt(v, 10)
	case float64:
		return "IP" + strconv.FormatInt(int64(v), 10)
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(v), "IP"))
		s, _, _ = strings.Cut(s, ".")
		if s == "" {
			return "N/A"
		}
		if _, err := strconv.Atoi(s); err != nil {
			return "N/A"
		}
		return "IP" + s
	default:
		return "N/A"
	}
}

// ParseNumeric parses a comma- or dot-decimal value to float64. Sequences
// use their first element. Unparseable values return +Inf so that an
// invalid entry always loses min-comparisons and sorts last; callers that
// take a max must exclude infinite values themselves.
func ParseNumeric(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case []any:
		if len(v) == 0 {
			return math.Inf(1)
		}
		return ParseNumeric(v[0])
	case []string:
		if len(v) == 0 {
			return math.Inf(1)
		}
		return ParseNumeric(v[0])
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.Inf(1)
		}
		return f
	default:
		return math.Inf(1)
	}
}

// LampName standardizes a lamp name for comparison: lowercased, with
// commas, dashes and slashes turned into spaces, parentheses stripped and
// whitespace collapsed. The result is a comparison key only and is never
// used to rewrite the display string.
func LampName(name string) string {
	s := strings.ToLower(name)
	replacer := strings.NewReplacer(",", " ", "-", " ", "/", " ", "(", "", ")", "")
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// ParseRange parses a "min-max" string into its two bounds. A value
// without a separating dash is both min and max. Returns ok=false when
// neither side parses as a float.
func ParseRange(value string) (minVal, maxVal float64, ok bool) {
	s := strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if lo, hi, found := cutRange(s); found {
		minF, errMin := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		maxF, errMax := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if errMin != nil || errMax != nil {
			return 0, 0, false
		}
		return minF, maxF, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, false
	}
	return f, f, true
}

// cutRange splits on the first dash that separates two values, skipping a
// leading sign so "-5" stays a single value.
func cutRange(s string) (lo, hi string, found bool) {
	for i := 1; i < len(s); i++ {
		if s[i] == '-' {
			return s[:i], strings.TrimLeft(s[i:], "-"), true
		}
	}
	return "", "", false
}
