// Package catalog defines the typed converter catalog the resolution
// engine reads. Records are produced by the external ingestion pipeline
// and are immutable once loaded; the chatbot never writes them.
package catalog

import (
	"strconv"
	"strings"

	"github.com/acolumban/loftybot/internal/normalize"
)

// Range is an inclusive numeric range, used for input and output voltage.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether [lo,hi] lies inside the range.
func (r Range) Contains(lo, hi float64) bool {
	return r.Min <= lo && r.Max >= hi
}

// Equals reports exact equality of both bounds.
func (r Range) Equals(lo, hi float64) bool {
	return r.Min == lo && r.Max == hi
}

// LampRange is the quantity range of one lamp model a converter can drive.
type LampRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// ConverterRecord is one LED driver/converter SKU.
// Numeric fields are pointers so that "unknown" stays distinct from zero.
type ConverterRecord struct {
	ArticleNumber int                  `json:"artnr" yaml:"artnr"`
	Type          string               `json:"type,omitempty" yaml:"type,omitempty"`
	Description   string               `json:"converter_description,omitempty" yaml:"converter_description,omitempty"`
	Name          string               `json:"name,omitempty" yaml:"name,omitempty"`
	Location      string               `json:"location,omitempty" yaml:"location,omitempty"`
	Dimmability   string               `json:"dimmability,omitempty" yaml:"dimmability,omitempty"`
	StrainRelief  string               `json:"strain_relief,omitempty" yaml:"strain_relief,omitempty"`
	Lifecycle     string               `json:"lifecycle,omitempty" yaml:"lifecycle,omitempty"`
	IPRating      *int                 `json:"ip,omitempty" yaml:"ip,omitempty"`
	SafetyClass   *int                 `json:"class,omitempty" yaml:"class,omitempty"`
	InputVoltage  *Range               `json:"nom_input_voltage_v,omitempty" yaml:"nom_input_voltage_v,omitempty"`
	OutputVoltage *Range               `json:"output_voltage_v,omitempty" yaml:"output_voltage_v,omitempty"`
	Efficiency    *float64             `json:"efficiency_full_load,omitempty" yaml:"efficiency_full_load,omitempty"`
	Size          string               `json:"size,omitempty" yaml:"size,omitempty"`
	ListPrice     *float64             `json:"listprice,omitempty" yaml:"listprice,omitempty"`
	GrossWeight   *float64             `json:"gross_weight,omitempty" yaml:"gross_weight,omitempty"`
	PDFLink       string               `json:"pdf_link,omitempty" yaml:"pdf_link,omitempty"`
	Unit          string               `json:"unit,omitempty" yaml:"unit,omitempty"`
	Lamps         map[string]LampRange `json:"lamps" yaml:"lamps"`
}

// Artnr returns the canonical article number string.
func (r *ConverterRecord) Artnr() string {
	return normalize.ArticleNumber(r.ArticleNumber)
}

// Label renders the record's standard display form used in answers:
// "<description> (ARTNR: <n>)".
func (r *ConverterRecord) Label() string {
	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		desc = strings.TrimSpace(r.Name)
	}
	if desc == "" {
		desc = "Converter"
	}
	return desc + " (ARTNR: " + r.Artnr() + ")"
}

// LengthMM parses the first component of the "L*B*H" size triple.
// Unparseable sizes return +Inf so they never win a smallest-first
// comparison.
func (r *ConverterRecord) LengthMM() float64 {
	first, _, _ := strings.Cut(r.Size, "*")
	return normalize.ParseNumeric(first)
}

// IPCode returns the record's "IP<digits>" form, or "N/A" when unknown.
func (r *ConverterRecord) IPCode() string {
	if r.IPRating == nil {
		return "N/A"
	}
	return normalize.IP(*r.IPRating)
}

// HasType reports whether the record's type matches a voltage/current
// token like "24v" or "350ma", ignoring case and spaces.
func (r *ConverterRecord) HasType(token string) bool {
	t := strings.ReplaceAll(strings.ToLower(r.Type), " ", "")
	token = strings.ReplaceAll(strings.ToLower(token), " ", "")
	return token != "" && strings.Contains(t, token)
}

// parseIntValue converts a numeric or numeric-string value to int.
func parseIntValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(n), ",", "."), 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}
