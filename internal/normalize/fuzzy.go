package normalize

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Thresholds used across the resolver, taken over from the legacy catalog
// handlers.
const (
	// DimmingThreshold is the minimum Ratio for a dimmability token to
	// count as the requested dimming type.
	DimmingThreshold = 75

	// LampMatchThreshold is the minimum TokenSetRatio for a lamp-name
	// best match.
	LampMatchThreshold = 60
)

// Ratio scores the similarity of two strings 0-100 based on edit
// distance. Case-insensitive; 100 means equal.
func Ratio(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 100
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 - (100*dist)/longest
}

// TokenSetRatio scores two strings by their word sets: full containment of
// one set in the other scores 100, otherwise the sorted token strings are
// compared with Ratio. This tolerates word order and repeated words the
// way the lamp names in the catalog need.
func TokenSetRatio(a, b string) int {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return Ratio(a, b)
	}
	if subset(setA, setB) || subset(setB, setA) {
		return 100
	}
	return Ratio(joinSorted(setA), joinSorted(setB))
}

// MatchLampName reports whether a normalized query phrase matches a
// normalized catalog lamp name: substring either way, or every query word
// present in the lamp name.
func MatchLampName(query, lampName string) bool {
	if query == "" || lampName == "" {
		return false
	}
	if strings.Contains(lampName, query) || strings.Contains(query, lampName) {
		return true
	}
	return subset(tokenSet(query), tokenSet(lampName))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = struct{}{}
	}
	return set
}

func subset(small, big map[string]struct{}) bool {
	for tok := range small {
		if _, ok := big[tok]; !ok {
			return false
		}
	}
	return true
}

func joinSorted(set map[string]struct{}) string {
	tokens := make([]string, 0, len(set))
	for tok := range set {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
