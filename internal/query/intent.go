package query

import "strings"

// Intent names the lookup strategy a question routes to.
type Intent string

const (
	IntentComparison        Intent = "comparison"
	IntentLampCompatibility Intent = "lamp_compatibility_by_article"
	IntentAttributeLookup   Intent = "attribute_lookup"
	IntentArticleLookup     Intent = "article_lookup"
	IntentLampToConverter   Intent = "lamp_to_converter"
	IntentSuperlative       Intent = "superlative"
	IntentBulkListing       Intent = "bulk_listing"
	IntentDimmingFilter     Intent = "dimming_filter"
	IntentIPFilter          Intent = "ip_filter"
	IntentVoltageCurrent    Intent = "voltage_current_filter"
	IntentPriceFilter       Intent = "price_filter"
	IntentUnknown           Intent = "unknown"
)

// Rule is one classification rule. Rules are evaluated in slice order and
// the first match wins; the order is part of the engine's contract and is
// tested rule by rule. When both lamp and dimming keywords appear, the
// lamp rules sit earlier on purpose: an article number or lamp phrase is
// more specific than a protocol word.
type Rule struct {
	Intent Intent
	Match  func(q string, e Entities) bool
}

// attributeWords are the per-record attribute triggers for a
// single-converter question.
var attributeWords = []string{
	"price", "cost", "weight", "size", "dimension", "efficiency",
	"datasheet", "manual", "pdf", "voltage", "dimming", "ip", "class",
	"lifecycle", "strain relief", "location", "description", "spec",
}

// hasTriggerWord reports whether w occurs in q starting at a word
// boundary. Plain substring search misfires on short triggers: "ip"
// hides inside "ship" and "equipment". The trigger may still extend
// into a longer word so "spec" catches "specs" and "ip" catches "ip67".
func hasTriggerWord(q, w string) bool {
	for idx := 0; ; {
		i := strings.Index(q[idx:], w)
		if i < 0 {
			return false
		}
		at := idx + i
		if at == 0 || !isWordByte(q[at-1]) {
			return true
		}
		idx = at + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// Rules is the fixed, ordered intent rule list.
var Rules = []Rule{
	{IntentComparison, func(q string, e Entities) bool {
		return (strings.Contains(q, "compare") || strings.Contains(q, "difference between")) && len(e.Artnrs) >= 2
	}},
	{IntentLampCompatibility, func(q string, e Entities) bool {
		return e.HasArtnr() && (strings.Contains(q, "lamp") || strings.Contains(q, "luminaire"))
	}},
	{IntentAttributeLookup, func(q string, e Entities) bool {
		if !e.HasArtnr() {
			return false
		}
		for _, w := range attributeWords {
			if hasTriggerWord(q, w) {
				return true
			}
		}
		return false
	}},
	{IntentArticleLookup, func(q string, e Entities) bool {
		return e.HasArtnr()
	}},
	{IntentLampToConverter, func(q string, e Entities) bool {
		return e.Quantity > 0 || e.LampPhrase != ""
	}},
	{IntentSuperlative, func(q string, e Entities) bool {
		return strings.Contains(q, "most efficient") || strings.Contains(q, "most affordable") ||
			strings.Contains(q, "cheapest") || strings.Contains(q, "smallest") || strings.Contains(q, "most compact")
	}},
	{IntentBulkListing, func(q string, e Entities) bool {
		if strings.Contains(q, "each converter") || strings.Contains(q, "each model") || strings.Contains(q, "every converter") {
			return true
		}
		return (strings.Contains(q, "show") || strings.Contains(q, "list")) && strings.Contains(q, "all")
	}},
	{IntentDimmingFilter, func(q string, e Entities) bool {
		return e.Dimming != ""
	}},
	{IntentIPFilter, func(q string, e Entities) bool {
		return e.IP != nil || strings.Contains(q, "ip rating")
	}},
	{IntentVoltageCurrent, func(q string, e Entities) bool {
		return e.VoltCurrent != "" || strings.Contains(q, "input voltage") || strings.Contains(q, "output voltage") ||
			strings.Contains(q, "forward voltage") || strings.Contains(q, "voltage forward")
	}},
	{IntentPriceFilter, func(q string, e Entities) bool {
		return e.PriceLimit != nil || strings.Contains(q, "price") || strings.Contains(q, "affordable") || strings.Contains(q, "cheap")
	}},
}

// Classify maps a question and its entities to an intent. The question is
// lowercased once here so rules can assume it.
func Classify(question string, e Entities) Intent {
	q := strings.ToLower(question)
	for _, rule := range Rules {
		if rule.Match(q, e) {
			return rule.Intent
		}
	}
	return IntentUnknown
}
