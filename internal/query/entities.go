// Package query turns a raw user question into extracted entities and a
// classified intent. Extraction and classification are pure functions of
// the question text so the same question always routes the same way.
package query

// Entities holds everything the extractor recognized in a question.
// Absent values stay zero/nil; the resolver treats them as "not asked".
type Entities struct {
	// Artnrs lists canonical article-number strings in order of
	// appearance.
	Artnrs []string

	// LampPhrase is the free-text lamp description, already
	// trimmed but not normalized.
	LampPhrase string

	// Quantity is the N of an "N x <lamp>" expression, 0 when absent.
	Quantity int

	// VoltCurrent is a compact voltage/current token like "24v" or
	// "350ma".
	VoltCurrent string

	// RangeLo/RangeHi carry an explicit "a-b" numeric range.
	RangeLo *float64
	RangeHi *float64

	// IP is the Ingress Protection integer, nil when absent.
	IP *int

	// PriceLimit is a currency threshold, nil when absent.
	PriceLimit *float64

	// Dimming is the requested dimming protocol keyword (dali, 1-10v,
	// casambi, touchdim, mains), empty when absent.
	Dimming string
}

// Artnr returns the first article number found, or "".
func (e Entities) Artnr() string {
	if len(e.Artnrs) == 0 {
		return ""
	}
	return e.Artnrs[0]
}

// HasArtnr reports whether any article number was found.
func (e Entities) HasArtnr() bool {
	return len(e.Artnrs) > 0
}

// HasRange reports whether an explicit numeric range was found.
func (e Entities) HasRange() bool {
	return e.RangeLo != nil && e.RangeHi != nil
}
