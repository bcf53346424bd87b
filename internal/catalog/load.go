package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/acolumban/loftybot/internal/normalize"
)

// rawRecord mirrors the ingestion pipeline's JSON shape. Every numeric
// field may arrive as a number or a decimal-comma string, voltage ranges
// may be {min,max} objects or "min-max" strings, so everything decodes
// through json.RawMessage first.
type rawRecord struct {
	Artnr         json.RawMessage            `json:"artnr"`
	Type          string                     `json:"type"`
	Description   string                     `json:"converter_description"`
	Name          string                     `json:"name"`
	Location      string                     `json:"location"`
	Dimmability   string                     `json:"dimmability"`
	StrainRelief  string                     `json:"strain_relief"`
	Lifecycle     string                     `json:"lifecycle"`
	IP            json.RawMessage            `json:"ip"`
	Class         json.RawMessage            `json:"class"`
	InputVoltage  json.RawMessage            `json:"nom_input_voltage_v"`
	OutputVoltage json.RawMessage            `json:"output_voltage_v"`
	Efficiency    json.RawMessage            `json:"efficiency_full_load"`
	Size          string                     `json:"size"`
	ListPrice     json.RawMessage            `json:"listprice"`
	GrossWeight   json.RawMessage            `json:"gross_weight"`
	PDFLink       string                     `json:"pdf_link"`
	Unit          string                     `json:"unit"`
	Lamps         map[string]json.RawMessage `json:"lamps"`
}

// Parse decodes a catalog JSON document: a mapping from converter-id
// string to record object. Records without a usable article number are
// skipped with an error listing them would produce; they are reported
// through the returned error only when nothing decodes at all.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	records := make([]*ConverterRecord, 0, len(raw))
	for id, rr := range raw {
		rec, err := rr.toRecord()
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", id, err)
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ArticleNumber < records[j].ArticleNumber
	})

	byArtnr := make(map[string]*ConverterRecord, len(records))
	for _, rec := range records {
		byArtnr[rec.Artnr()] = rec
	}
	return &Catalog{records: records, byArtnr: byArtnr}, nil
}

// LoadFile reads and parses a catalog JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func (rr rawRecord) toRecord() (*ConverterRecord, error) {
	artnrStr := normalize.ArticleNumber(decodeScalar(rr.Artnr))
	artnr, err := parseArtnr(artnrStr)
	if err != nil {
		return nil, err
	}

	rec := &ConverterRecord{
		ArticleNumber: artnr,
		Type:          rr.Type,
		Description:   rr.Description,
		Name:          rr.Name,
		Location:      rr.Location,
		Dimmability:   rr.Dimmability,
		StrainRelief:  rr.StrainRelief,
		Lifecycle:     rr.Lifecycle,
		Size:          rr.Size,
		PDFLink:       rr.PDFLink,
		Unit:          rr.Unit,
		IPRating:      decodeIP(rr.IP),
		SafetyClass:   decodeInt(rr.Class),
		Efficiency:    decodeFloat(rr.Efficiency),
		ListPrice:     decodeFloat(rr.ListPrice),
		GrossWeight:   decodeFloat(rr.GrossWeight),
		InputVoltage:  decodeRange(rr.InputVoltage),
		OutputVoltage: decodeRange(rr.OutputVoltage),
		Lamps:         map[string]LampRange{},
	}

	for name, lampRaw := range rr.Lamps {
		lr, ok := decodeLampRange(lampRaw)
		if !ok {
			return nil, fmt.Errorf("lamp %q: unparseable min/max", name)
		}
		rec.Lamps[name] = lr
	}
	return rec, nil
}

func parseArtnr(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("article number %q is not numeric", s)
	}
	return n, nil
}

// decodeScalar unmarshals a raw value into any, yielding float64, string
// or nil.
func decodeScalar(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// decodeFloat accepts a number or a decimal-comma string; absent and
// unparseable values stay nil, never a sentinel.
func decodeFloat(raw json.RawMessage) *float64 {
	v := decodeScalar(raw)
	if v == nil {
		return nil
	}
	f := normalize.ParseNumeric(v)
	if math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// decodeIP accepts the IP rating as a number, a numeric string or a
// prefixed "IP67" string, all of which the ingestion pipeline has
// produced at some point.
func decodeIP(raw json.RawMessage) *int {
	v := decodeScalar(raw)
	if v == nil {
		return nil
	}
	code := normalize.IP(v)
	if code == "N/A" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(code, "IP"))
	if err != nil {
		return nil
	}
	return &n
}

func decodeInt(raw json.RawMessage) *int {
	v := decodeScalar(raw)
	if v == nil {
		return nil
	}
	n, ok := parseIntValue(v)
	if !ok {
		return nil
	}
	return &n
}

// decodeRange accepts {min,max} objects with numeric or numeric-string
// values, plus plain "min-max" strings from older exports.
func decodeRange(raw json.RawMessage) *Range {
	if len(raw) == 0 {
		return nil
	}

	var obj struct {
		Min json.RawMessage `json:"min"`
		Max json.RawMessage `json:"max"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && (len(obj.Min) > 0 || len(obj.Max) > 0) {
		minF := decodeFloat(obj.Min)
		maxF := decodeFloat(obj.Max)
		if minF == nil && maxF == nil {
			return nil
		}
		if minF == nil {
			minF = maxF
		}
		if maxF == nil {
			maxF = minF
		}
		return &Range{Min: *minF, Max: *maxF}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if lo, hi, ok := normalize.ParseRange(s); ok {
			return &Range{Min: lo, Max: hi}
		}
		return nil
	}

	if f := decodeFloat(raw); f != nil {
		return &Range{Min: *f, Max: *f}
	}
	return nil
}

func decodeLampRange(raw json.RawMessage) (LampRange, bool) {
	var obj struct {
		Min json.RawMessage `json:"min"`
		Max json.RawMessage `json:"max"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return LampRange{}, false
	}
	minV, okMin := parseIntValue(decodeScalar(obj.Min))
	maxV, okMax := parseIntValue(decodeScalar(obj.Max))
	if !okMin || !okMax {
		return LampRange{}, false
	}
	return LampRange{Min: minV, Max: maxV}, true
}
