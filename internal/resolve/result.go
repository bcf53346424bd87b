// Package resolve executes the lookup strategy a classified intent
// implies and returns typed results; no user-facing text is produced
// here. Zero matches are a normal outcome signalling the generative
// fallback, distinct from a named identifier that failed to resolve.
package resolve

import (
	"github.com/acolumban/loftybot/internal/catalog"
	"github.com/acolumban/loftybot/internal/query"
)

// LampMatch pairs a converter with the catalog lamp name that matched the
// query phrase and its quantity range.
type LampMatch struct {
	Record   *catalog.ConverterRecord
	LampName string
	Range    catalog.LampRange
}

// Comparison holds the two records of a compare question.
type Comparison struct {
	A *catalog.ConverterRecord
	B *catalog.ConverterRecord
}

// Resolution is the typed outcome of a resolve step. Exactly one of the
// payload groups is populated, according to Intent.
type Resolution struct {
	Intent   query.Intent
	Entities query.Entities

	// Record is set for single-record intents (article/attribute lookup).
	Record *catalog.ConverterRecord

	// Attribute is the requested per-record field, when one was named.
	Attribute Attribute

	// Records is set for listings and filters, in catalog order.
	Records []*catalog.ConverterRecord

	// LampMatches is set for lamp-compatibility results.
	LampMatches []LampMatch

	// Comparison is set for compare questions.
	Comparison *Comparison

	// NotFound names the identifier (article number or lamp phrase)
	// that had no catalog match. When set, the answer is a "not found"
	// message instead of the fallback.
	NotFound string
}

// Empty reports whether the resolution produced nothing to answer with,
// which routes the question to the fallback collaborator.
func (r *Resolution) Empty() bool {
	if r == nil {
		return true
	}
	if r.NotFound != "" {
		return false
	}
	return r.Record == nil && len(r.Records) == 0 && len(r.LampMatches) == 0 && r.Comparison == nil
}
