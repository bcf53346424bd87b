package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func classify(t *testing.T, question string) Intent {
	t.Helper()
	return Classify(question, Extract(question))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		question string
		want     Intent
	}{
		{"compare 40025 and 930546", IntentComparison},
		{"what is the difference between 40025 and 930546?", IntentComparison},
		{"how many haloled lamps with converter 40025?", IntentLampCompatibility},
		{"which lamps does converter 40025 support?", IntentLampCompatibility},
		{"what is the price of converter 40025?", IntentAttributeLookup},
		{"how much does 40025 weigh? tell me the weight", IntentAttributeLookup},
		{"do you have a datasheet for 40025?", IntentAttributeLookup},
		{"tell me about converter 40025", IntentArticleLookup},
		{"which converters support 3 x haloled?", IntentLampToConverter},
		{"recommend a converter for powerled strips", IntentLampToConverter},
		{"what is the most efficient converter?", IntentSuperlative},
		{"which is the cheapest driver?", IntentSuperlative},
		{"show the efficiency for each converter", IntentBulkListing},
		{"list all converters", IntentBulkListing},
		{"show all dali dimmable converters", IntentBulkListing},
		{"which converters are dali dimmable?", IntentDimmingFilter},
		{"casambi converters?", IntentDimmingFilter},
		{"which converters are ip67?", IntentIPFilter},
		{"what is the ip rating situation?", IntentIPFilter},
		{"show 24v converters", IntentVoltageCurrent},
		{"input voltage options?", IntentVoltageCurrent},
		{"affordable converters under €50", IntentPriceFilter},
		{"hello there", IntentUnknown},
		{"what's the weather like?", IntentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(t, tt.question), "question: %s", tt.question)
		})
	}
}

// The rule list is precedence-sensitive. These cases pin the order for
// questions that trip several rules at once.
func TestClassifyPrecedence(t *testing.T) {
	// Article number beats the dimming keyword.
	assert.Equal(t, IntentAttributeLookup, classify(t, "what dimming does converter 40025 support?"))

	// A lamp phrase beats the dimming keyword: the lamp rules sit
	// earlier in the list on purpose.
	assert.Equal(t, IntentLampToConverter, classify(t, "recommend a dali converter for haloled lamps"))

	// Comparison needs two article numbers; with one it degrades to a
	// lamp-compatibility or article question.
	assert.Equal(t, IntentArticleLookup, classify(t, "compare 40025"))

	// An article number plus "lamp" wins over the bare article lookup.
	assert.Equal(t, IntentLampCompatibility, classify(t, "lamp options for 40025"))
}

// Attribute triggers must start at a word boundary: "ship" and
// "equipment" both hide an "ip" and used to misroute to an IP answer.
func TestClassifyTriggerBoundaries(t *testing.T) {
	assert.Equal(t, IntentArticleLookup, classify(t, "does converter 40025 ship this week?"))
	assert.Equal(t, IntentArticleLookup, classify(t, "what equipment comes with 40025?"))

	// a trigger may still extend into a longer word
	assert.Equal(t, IntentAttributeLookup, classify(t, "what are the specs of 40025?"))
}
