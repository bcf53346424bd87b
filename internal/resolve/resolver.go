package resolve

import (
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/acolumban/loftybot/internal/catalog"
	"github.com/acolumban/loftybot/internal/normalize"
	"github.com/acolumban/loftybot/internal/query"
)

// Resolver executes catalog lookups for classified questions. It reads a
// snapshot per call so a concurrent catalog reload never changes results
// mid-query.
type Resolver struct {
	store  *catalog.Store
	logger *slog.Logger
}

// New creates a resolver over the given catalog store.
func New(store *catalog.Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve runs the strategy Intent selects and returns a typed result.
// Questions that resolve to nothing come back Empty, which the engine
// treats as a fallback signal rather than an error.
func (r *Resolver) Resolve(question string, e query.Entities, intent query.Intent) *Resolution {
	q := strings.ToLower(question)
	snap := r.store.Snapshot()
	res := &Resolution{Intent: intent, Entities: e}

	switch intent {
	case query.IntentComparison:
		r.resolveComparison(snap, e, res)
	case query.IntentLampCompatibility:
		r.resolveLampCompat(snap, e, res)
	case query.IntentAttributeLookup:
		res.Attribute = DetectAttribute(q)
		r.resolveArticle(snap, e, res)
	case query.IntentArticleLookup:
		r.resolveArticle(snap, e, res)
	case query.IntentLampToConverter:
		r.resolveLampToConverter(snap, e, res)
	case query.IntentSuperlative:
		r.resolveSuperlative(snap, q, e, res)
	case query.IntentBulkListing:
		res.Attribute = DetectAttribute(q)
		res.Records = filterRecords(snap, q, e)
	case query.IntentDimmingFilter:
		r.resolveDimming(snap, q, e, res)
	case query.IntentIPFilter, query.IntentVoltageCurrent, query.IntentPriceFilter:
		res.Records = filterRecords(snap, q, e)
	}

	r.logger.Debug("resolved question",
		"intent", string(intent),
		"records", len(res.Records),
		"lamp_matches", len(res.LampMatches),
		"not_found", res.NotFound,
		"empty", res.Empty())
	return res
}

func (r *Resolver) resolveArticle(snap *catalog.Catalog, e query.Entities, res *Resolution) {
	rec, ok := snap.ByArtnr(e.Artnr())
	if !ok {
		res.NotFound = e.Artnr()
		return
	}
	res.Record = rec
}

func (r *Resolver) resolveComparison(snap *catalog.Catalog, e query.Entities, res *Resolution) {
	a, ok := snap.ByArtnr(e.Artnrs[0])
	if !ok {
		res.NotFound = e.Artnrs[0]
		return
	}
	b, ok := snap.ByArtnr(e.Artnrs[1])
	if !ok {
		res.NotFound = e.Artnrs[1]
		return
	}
	res.Comparison = &Comparison{A: a, B: b}
}

// resolveLampCompat answers "how many <lamp> lamps with converter N" and
// "which lamps does converter N support". With a lamp phrase the single
// best catalog lamp above the match threshold is returned; without one,
// every lamp entry of the record.
func (r *Resolver) resolveLampCompat(snap *catalog.Catalog, e query.Entities, res *Resolution) {
	rec, ok := snap.ByArtnr(e.Artnr())
	if !ok {
		res.NotFound = e.Artnr()
		return
	}
	res.Record = rec

	if e.LampPhrase == "" {
		for _, name := range sortedLampNames(rec) {
			res.LampMatches = append(res.LampMatches, LampMatch{Record: rec, LampName: name, Range: rec.Lamps[name]})
		}
		return
	}

	name, lr, ok := bestLamp(rec, e.LampPhrase)
	if !ok {
		res.NotFound = e.LampPhrase
		return
	}
	res.LampMatches = []LampMatch{{Record: rec, LampName: name, Range: lr}}
}

// resolveLampToConverter unions every record with a matching lamp entry.
// A quantity narrows the union to records whose upper bound covers it;
// an exhausted union stays empty so the fallback can take over.
func (r *Resolver) resolveLampToConverter(snap *catalog.Catalog, e query.Entities, res *Resolution) {
	phrase := normalize.LampName(e.LampPhrase)
	if phrase == "" {
		return
	}
	var matches []LampMatch
	for _, rec := range snap.All() {
		name, lr, ok := matchingLamp(rec, phrase)
		if !ok {
			continue
		}
		if e.Quantity > 0 && lr.Max < e.Quantity {
			continue
		}
		matches = append(matches, LampMatch{Record: rec, LampName: name, Range: lr})
	}
	if len(matches) == 0 {
		if e.Quantity == 0 {
			res.NotFound = e.LampPhrase
		}
		return
	}
	res.LampMatches = matches
}

// resolveDimming filters by dimmability and, when the question carries
// them, conjoins a voltage/current type and a lamp requirement.
func (r *Resolver) resolveDimming(snap *catalog.Catalog, q string, e query.Entities, res *Resolution) {
	phrase := normalize.LampName(e.LampPhrase)
	for _, rec := range snap.All() {
		if !dimmabilityMatches(rec.Dimmability, e.Dimming) {
			continue
		}
		if e.VoltCurrent != "" && !rec.HasType(e.VoltCurrent) {
			continue
		}
		if phrase != "" {
			name, lr, ok := matchingLamp(rec, phrase)
			if !ok || (e.Quantity > 0 && lr.Max < e.Quantity) {
				continue
			}
			res.LampMatches = append(res.LampMatches, LampMatch{Record: rec, LampName: name, Range: lr})
			continue
		}
		res.Records = append(res.Records, rec)
	}
}

// superlative metrics. Records without the metric never win.
func (r *Resolver) resolveSuperlative(snap *catalog.Catalog, q string, e query.Entities, res *Resolution) {
	pool := filterRecords(snap, q, e)

	var best *catalog.ConverterRecord
	switch {
	case strings.Contains(q, "most efficient"):
		res.Attribute = AttrEfficiency
		bestScore := math.Inf(-1)
		for _, rec := range pool {
			if rec.Efficiency != nil && *rec.Efficiency > bestScore {
				bestScore = *rec.Efficiency
				best = rec
			}
		}
	case strings.Contains(q, "cheapest"), strings.Contains(q, "most affordable"):
		res.Attribute = AttrPrice
		bestScore := math.Inf(1)
		for _, rec := range pool {
			if rec.ListPrice != nil && *rec.ListPrice < bestScore {
				bestScore = *rec.ListPrice
				best = rec
			}
		}
	case strings.Contains(q, "smallest"), strings.Contains(q, "most compact"):
		res.Attribute = AttrSize
		bestScore := math.Inf(1)
		for _, rec := range pool {
			if l := rec.LengthMM(); !math.IsInf(l, 1) && l < bestScore {
				bestScore = l
				best = rec
			}
		}
	}
	res.Record = best
}

var lengthLimitRe = regexp.MustCompile(`(?i)(?:shorter|smaller|less|under|below)\s*(?:than)?\s*(\d+(?:[.,]\d+)?)\s*mm\b`)

// filterRecords applies every extracted constraint as a conjunction over
// the full snapshot, in catalog order.
func filterRecords(snap *catalog.Catalog, q string, e query.Entities) []*catalog.ConverterRecord {
	exact := strings.Contains(q, "exact")
	wantInput := strings.Contains(q, "input")
	var lengthLimit float64 = math.Inf(1)
	if m := lengthLimitRe.FindStringSubmatch(q); m != nil {
		lengthLimit = normalize.ParseNumeric(m[1])
	}

	var out []*catalog.ConverterRecord
	for _, rec := range snap.All() {
		if e.IP != nil && (rec.IPRating == nil || *rec.IPRating != *e.IP) {
			continue
		}
		if e.VoltCurrent != "" && !rec.HasType(e.VoltCurrent) {
			continue
		}
		if e.HasRange() && !voltageMatches(rec, wantInput, exact, *e.RangeLo, *e.RangeHi) {
			continue
		}
		if e.PriceLimit != nil && (rec.ListPrice == nil || *rec.ListPrice >= *e.PriceLimit) {
			continue
		}
		if e.Dimming != "" && !dimmabilityMatches(rec.Dimmability, e.Dimming) {
			continue
		}
		if !math.IsInf(lengthLimit, 1) {
			if l := rec.LengthMM(); l >= lengthLimit {
				continue
			}
		}
		if strings.Contains(q, "outdoor") && !strings.Contains(strings.ToLower(rec.Location), "outdoor") {
			continue
		}
		if strings.Contains(q, "indoor") && !strings.Contains(strings.ToLower(rec.Location), "indoor") {
			continue
		}
		if strings.Contains(q, "strain relief") && !hasStrainRelief(rec) {
			continue
		}
		if lc := lifecycleToken(q); lc != "" && !strings.Contains(strings.ToLower(rec.Lifecycle), lc) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// voltageMatches checks a requested range against the record's voltage.
// An "exact" question requires equal bounds, anything else containment of
// the requested range within the stored one.
func voltageMatches(rec *catalog.ConverterRecord, wantInput, exact bool, lo, hi float64) bool {
	rng := rec.OutputVoltage
	if wantInput {
		rng = rec.InputVoltage
	}
	if rng == nil {
		return false
	}
	if exact {
		return rng.Equals(lo, hi)
	}
	return rng.Contains(lo, hi)
}

// dimmabilityMatches splits the stored dimmability on "/" and whitespace
// and fuzzy-compares each token against the requested protocol.
func dimmabilityMatches(dimmability, requested string) bool {
	if requested == "" {
		return true
	}
	if dimmability == "" {
		return false
	}
	fields := strings.FieldsFunc(dimmability, func(r rune) bool {
		return r == '/' || r == ' ' || r == '\t'
	})
	for _, tok := range fields {
		if normalize.Ratio(tok, requested) >= normalize.DimmingThreshold {
			return true
		}
	}
	return false
}

// matchingLamp scans a record's lamp table for an entry matching the
// already-normalized phrase, word-subset or substring either way.
func matchingLamp(rec *catalog.ConverterRecord, phrase string) (string, catalog.LampRange, bool) {
	for _, name := range sortedLampNames(rec) {
		if normalize.MatchLampName(phrase, normalize.LampName(name)) {
			return name, rec.Lamps[name], true
		}
	}
	return "", catalog.LampRange{}, false
}

// bestLamp picks the record's highest-scoring lamp entry for a free-text
// phrase, rejecting scores below the match threshold.
func bestLamp(rec *catalog.ConverterRecord, phrase string) (string, catalog.LampRange, bool) {
	phrase = normalize.LampName(phrase)
	bestScore := -1
	var bestName string
	for _, name := range sortedLampNames(rec) {
		score := normalize.TokenSetRatio(phrase, normalize.LampName(name))
		if score > bestScore {
			bestScore = score
			bestName = name
		}
	}
	if bestScore < normalize.LampMatchThreshold {
		return "", catalog.LampRange{}, false
	}
	return bestName, rec.Lamps[bestName], true
}

func sortedLampNames(rec *catalog.ConverterRecord) []string {
	names := make([]string, 0, len(rec.Lamps))
	for name := range rec.Lamps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func hasStrainRelief(rec *catalog.ConverterRecord) bool {
	v := strings.ToLower(strings.TrimSpace(rec.StrainRelief))
	return v != "" && v != "no" && v != "none" && v != "-"
}

func lifecycleToken(q string) string {
	for _, tok := range []string{"discontinued", "phase-out", "phase out", "active"} {
		if strings.Contains(q, tok) {
			return strings.ReplaceAll(tok, " ", "-")
		}
	}
	return ""
}
