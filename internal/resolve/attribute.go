package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/acolumban/loftybot/internal/catalog"
)

// Attribute names one per-record field a question can ask for.
type Attribute string

const (
	AttrNone          Attribute = ""
	AttrPrice         Attribute = "price"
	AttrWeight        Attribute = "weight"
	AttrSize          Attribute = "size"
	AttrEfficiency    Attribute = "efficiency"
	AttrDatasheet     Attribute = "datasheet"
	AttrInputVoltage  Attribute = "input_voltage"
	AttrOutputVoltage Attribute = "output_voltage"
	AttrDimming       Attribute = "dimming"
	AttrIP            Attribute = "ip"
	AttrClass         Attribute = "class"
	AttrLifecycle     Attribute = "lifecycle"
	AttrStrainRelief  Attribute = "strain_relief"
	AttrLocation      Attribute = "location"
	AttrDescription   Attribute = "description"
)

// attrTriggers maps question keywords to attributes. Ordered so the more
// specific phrase wins ("output voltage" before the bare "voltage").
var attrTriggers = []struct {
	phrase string
	attr   Attribute
}{
	{"output voltage", AttrOutputVoltage},
	{"forward voltage", AttrOutputVoltage},
	{"input voltage", AttrInputVoltage},
	{"strain relief", AttrStrainRelief},
	{"datasheet", AttrDatasheet},
	{"manual", AttrDatasheet},
	{"pdf", AttrDatasheet},
	{"price", AttrPrice},
	{"cost", AttrPrice},
	{"weight", AttrWeight},
	{"dimension", AttrSize},
	{"size", AttrSize},
	{"efficiency", AttrEfficiency},
	{"voltage", AttrInputVoltage},
	{"dimming", AttrDimming},
	{"lifecycle", AttrLifecycle},
	{"location", AttrLocation},
	{"class", AttrClass},
	{"ip", AttrIP},
	{"description", AttrDescription},
	{"spec", AttrDescription},
}

// DetectAttribute finds the attribute a lowercased question asks about,
// or AttrNone when no trigger phrase is present. Triggers must start at
// a word boundary, otherwise "ship" and "equipment" would read as "ip".
func DetectAttribute(q string) Attribute {
	for _, t := range attrTriggers {
		if phraseAt(q, t.phrase) {
			return t.attr
		}
	}
	return AttrNone
}

func phraseAt(q, phrase string) bool {
	for idx := 0; ; {
		i := strings.Index(q[idx:], phrase)
		if i < 0 {
			return false
		}
		at := idx + i
		if at == 0 || !wordByte(q[at-1]) {
			return true
		}
		idx = at + 1
	}
}

func wordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// Label is the human field name used in single-attribute answers.
func (a Attribute) Label() string {
	switch a {
	case AttrPrice:
		return "list price"
	case AttrWeight:
		return "gross weight"
	case AttrSize:
		return "size"
	case AttrEfficiency:
		return "efficiency at full load"
	case AttrDatasheet:
		return "datasheet"
	case AttrInputVoltage:
		return "nominal input voltage"
	case AttrOutputVoltage:
		return "output voltage"
	case AttrDimming:
		return "dimmability"
	case AttrIP:
		return "IP rating"
	case AttrClass:
		return "protection class"
	case AttrLifecycle:
		return "lifecycle status"
	case AttrStrainRelief:
		return "strain relief"
	case AttrLocation:
		return "mounting location"
	case AttrDescription:
		return "description"
	}
	return "description"
}

// Value renders the attribute of a record as display text. Missing values
// come back as "not specified" so the formatter never prints a zero.
func (a Attribute) Value(rec *catalog.ConverterRecord) string {
	switch a {
	case AttrPrice:
		if rec.ListPrice == nil {
			return "not specified"
		}
		return fmt.Sprintf("%.2f EUR", *rec.ListPrice)
	case AttrWeight:
		if rec.GrossWeight == nil {
			return "not specified"
		}
		return fmt.Sprintf("%g %s", *rec.GrossWeight, orDefault(rec.Unit, "kg"))
	case AttrSize:
		return orDefault(rec.Size, "not specified")
	case AttrEfficiency:
		if rec.Efficiency == nil {
			return "not specified"
		}
		return fmt.Sprintf("%g%%", *rec.Efficiency*percentScale(*rec.Efficiency))
	case AttrDatasheet:
		return orDefault(rec.PDFLink, "not available")
	case AttrInputVoltage:
		return rangeText(rec.InputVoltage, "V")
	case AttrOutputVoltage:
		return rangeText(rec.OutputVoltage, "V")
	case AttrDimming:
		return orDefault(rec.Dimmability, "not specified")
	case AttrIP:
		return rec.IPCode()
	case AttrClass:
		if rec.SafetyClass == nil {
			return "not specified"
		}
		return strconv.Itoa(*rec.SafetyClass)
	case AttrLifecycle:
		return orDefault(rec.Lifecycle, "not specified")
	case AttrStrainRelief:
		return orDefault(rec.StrainRelief, "not specified")
	case AttrLocation:
		return orDefault(rec.Location, "not specified")
	}
	return orDefault(rec.Description, rec.Name)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// percentScale keeps efficiencies stored as fractions (0.87) and as
// percentages (87) rendering the same way.
func percentScale(v float64) float64 {
	if v <= 1 {
		return 100
	}
	return 1
}

func rangeText(r *catalog.Range, unit string) string {
	if r == nil {
		return "not specified"
	}
	if r.Min == r.Max {
		return fmt.Sprintf("%g %s", r.Min, unit)
	}
	return fmt.Sprintf("%g-%g %s", r.Min, r.Max, unit)
}
