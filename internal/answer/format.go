// Package answer renders resolved results into the deterministic text the
// chat surfaces show. Rendering is a pure function of the resolution; all
// user-facing failure prose lives here too, so nothing upstream ever
// returns an error string as an answer.
package answer

import (
	"fmt"
	"strings"

	"github.com/acolumban/loftybot/internal/catalog"
	"github.com/acolumban/loftybot/internal/query"
	"github.com/acolumban/loftybot/internal/resolve"
)

// Static replies owned by the formatter.
const (
	// OffTopic is the reply for questions outside the converter domain
	// when no generative fallback is configured.
	OffTopic = "I'm just a technical assistant for LED converters and can only help with questions about our converter catalog."

	// FallbackFailed is shown when the generative fallback errors or
	// times out. Never expose the underlying error to the user.
	FallbackFailed = "I'm sorry, I couldn't process that question right now. Please try again in a moment."
)

// NotFound renders the polite no-match reply naming the identifier that
// failed to resolve.
func NotFound(identifier string) string {
	return fmt.Sprintf("Sorry, I couldn't find anything in the catalog for %q. Please check the article number or lamp name and try again.", identifier)
}

// Render turns a resolution into display text. Empty resolutions return
// "" so the engine knows to fall back; NotFound resolutions render the
// no-match reply.
func Render(res *resolve.Resolution) string {
	if res == nil {
		return ""
	}
	if res.NotFound != "" {
		return NotFound(res.NotFound)
	}
	if res.Empty() {
		return ""
	}

	switch res.Intent {
	case query.IntentComparison:
		return renderComparison(res.Comparison)
	case query.IntentLampCompatibility:
		return renderLampCompat(res)
	case query.IntentAttributeLookup:
		return renderAttribute(res.Attribute, res.Record)
	case query.IntentArticleLookup:
		return renderRecordCard(res.Record)
	case query.IntentLampToConverter:
		return renderLampMatches(res.LampMatches, res.Entities)
	case query.IntentSuperlative:
		return renderSuperlative(res)
	case query.IntentBulkListing:
		return renderListing(res.Records, res.Attribute)
	case query.IntentDimmingFilter:
		if len(res.LampMatches) > 0 {
			return renderLampMatches(res.LampMatches, res.Entities)
		}
		return renderListing(res.Records, resolve.AttrDimming)
	case query.IntentIPFilter:
		return renderListing(res.Records, resolve.AttrIP)
	case query.IntentVoltageCurrent:
		return renderListing(res.Records, resolve.AttrOutputVoltage)
	case query.IntentPriceFilter:
		return renderListing(res.Records, resolve.AttrPrice)
	}
	return ""
}

// renderAttribute produces the single-field answer form
// "<field label> of <description> (ARTNR: <n>): <value>".
func renderAttribute(attr resolve.Attribute, rec *catalog.ConverterRecord) string {
	if attr == resolve.AttrNone {
		return renderRecordCard(rec)
	}
	return fmt.Sprintf("The %s of %s: %s", attr.Label(), rec.Label(), attr.Value(rec))
}

// renderRecordCard is the full single-converter summary.
func renderRecordCard(rec *catalog.ConverterRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rec.Label())
	rows := []struct {
		label string
		attr  resolve.Attribute
	}{
		{"Type", resolve.AttrNone},
		{"Dimmability", resolve.AttrDimming},
		{"IP rating", resolve.AttrIP},
		{"Input voltage", resolve.AttrInputVoltage},
		{"Output voltage", resolve.AttrOutputVoltage},
		{"Efficiency", resolve.AttrEfficiency},
		{"Size", resolve.AttrSize},
		{"List price", resolve.AttrPrice},
		{"Lifecycle", resolve.AttrLifecycle},
		{"Datasheet", resolve.AttrDatasheet},
	}
	for _, row := range rows {
		value := rec.Type
		if row.attr != resolve.AttrNone {
			value = row.attr.Value(rec)
		}
		if value == "" || value == "not specified" || value == "not available" || value == "N/A" {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", row.label, value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderLampCompat answers lamp questions scoped to one converter.
func renderLampCompat(res *resolve.Resolution) string {
	if len(res.LampMatches) == 0 {
		return fmt.Sprintf("No compatible lamps are recorded for converter %s.", res.Record.Artnr())
	}
	if len(res.LampMatches) == 1 && res.Entities.LampPhrase != "" {
		m := res.LampMatches[0]
		return lampLine(m)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Converter %s supports these lamps:\n", res.Record.Artnr())
	for _, m := range res.LampMatches {
		fmt.Fprintf(&b, "- %s: %d–%d lamp(s)\n", m.LampName, m.Range.Min, m.Range.Max)
	}
	return strings.TrimRight(b.String(), "\n")
}

func lampLine(m resolve.LampMatch) string {
	return fmt.Sprintf("You can use %d–%d %s lamp(s) with converter %s.", m.Range.Min, m.Range.Max, m.LampName, m.Record.Artnr())
}

// renderLampMatches lists every converter that can drive the requested
// lamp, one line per converter with the quantity range.
func renderLampMatches(matches []resolve.LampMatch, e query.Entities) string {
	if len(matches) == 1 {
		return lampLine(matches[0])
	}
	var b strings.Builder
	if e.Quantity > 0 {
		fmt.Fprintf(&b, "These converters can drive %d x %s:\n", e.Quantity, e.LampPhrase)
	} else {
		fmt.Fprintf(&b, "These converters can drive %s lamps:\n", e.LampPhrase)
	}
	for _, m := range matches {
		fmt.Fprintf(&b, "- %s: %d–%d %s lamp(s)\n", m.Record.Label(), m.Range.Min, m.Range.Max, m.LampName)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSuperlative(res *resolve.Resolution) string {
	return fmt.Sprintf("%s, with a %s of %s.", res.Record.Label(), res.Attribute.Label(), res.Attribute.Value(res.Record))
}

// renderComparison renders a two-column attribute table for the compared
// records.
func renderComparison(c *resolve.Comparison) string {
	attrs := []resolve.Attribute{
		resolve.AttrDescription,
		resolve.AttrDimming,
		resolve.AttrLocation,
		resolve.AttrIP,
		resolve.AttrInputVoltage,
		resolve.AttrOutputVoltage,
		resolve.AttrEfficiency,
		resolve.AttrSize,
		resolve.AttrPrice,
		resolve.AttrLifecycle,
	}
	var b strings.Builder
	fmt.Fprintf(&b, "| Attribute | %s | %s |\n", c.A.Artnr(), c.B.Artnr())
	b.WriteString("| --- | --- | --- |\n")
	for _, attr := range attrs {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", attr.Label(), attr.Value(c.A), attr.Value(c.B))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderListing renders a markdown table with the fixed leading columns
// Converter | ARTNR, then the attribute column the question asked about.
// Column order is stable so listings are reproducible.
func renderListing(records []*catalog.ConverterRecord, attr resolve.Attribute) string {
	if attr == resolve.AttrNone {
		attr = resolve.AttrDescription
	}
	var b strings.Builder
	fmt.Fprintf(&b, "| Converter | ARTNR | %s |\n", columnTitle(attr))
	b.WriteString("| --- | --- | --- |\n")
	for _, rec := range records {
		name := strings.TrimSpace(rec.Description)
		if name == "" {
			name = strings.TrimSpace(rec.Name)
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", name, rec.Artnr(), attr.Value(rec))
	}
	return strings.TrimRight(b.String(), "\n")
}

// columnTitle capitalizes an attribute label for a table header.
func columnTitle(attr resolve.Attribute) string {
	label := attr.Label()
	if label == "" {
		return "Description"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
