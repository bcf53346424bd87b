package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/acolumban/loftybot/internal/normalize"
)

var (
	artnrRe    = regexp.MustCompile(`\b\d{4,6}\b`)
	quantityRe = regexp.MustCompile(`(?i)\b(\d+)\s*x\s+?([a-z*][a-z0-9 ,.\-*/]*[a-z0-9])`)
	lampRe     = regexp.MustCompile(`(?i)\b(?:for|recommend|use|need|supports?|compatible with)\b\s+(?:a\s+|an\s+|the\s+)?["']?([a-z*][a-z0-9 ,.\-*/"']+)`)
	voltR      = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*(v|ma)\b`)
	ipRe       = regexp.MustCompile(`(?i)\bip\s*-?\s*(\d{2})\b`)
	currencyRe = regexp.MustCompile(`[€$£]\s*(\d+(?:[.,]\d+)?)`)
	belowRe    = regexp.MustCompile(`(?i)\b(?:below|under|less than|cheaper than)\s+[€$£]?\s*(\d+(?:[.,]\d+)?)\s*(mm|v|ma|w)?`)
	rangeRe    = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*-\s*(\d+(?:[.,]\d+)?)\b`)
	howManyRe  = regexp.MustCompile(`(?i)\bhow many\s+([a-z0-9 .,*\-]+?)\s+lamps?\b`)
)

// dimmingKeywords in detection order. "touch dim" folds into "touchdim".
var dimmingKeywords = []string{"dali", "1-10v", "casambi", "touchdim", "touch dim", "mains"}

// lampStopWords are trailing words trimmed off an extracted lamp phrase.
var lampStopWords = []string{"strips", "strip", "lamps", "lamp", "luminaires", "luminaire", "converters", "converter", "drivers", "driver"}

// Extract runs every pattern matcher over the question and collects the
// recognized entities. Matchers are independent; a failed one leaves its
// field empty rather than producing an error.
func Extract(question string) Entities {
	q := strings.TrimSpace(question)
	lower := strings.ToLower(q)

	var e Entities

	for _, m := range artnrRe.FindAllString(q, -1) {
		e.Artnrs = append(e.Artnrs, normalize.ArticleNumber(m))
	}

	if m := quantityRe.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			e.Quantity = n
			e.LampPhrase = cleanLampPhrase(m[2])
		}
	}

	if e.LampPhrase == "" {
		if m := howManyRe.FindStringSubmatch(q); m != nil {
			e.LampPhrase = cleanLampPhrase(m[1])
		}
	}

	if e.LampPhrase == "" {
		if m := lampRe.FindStringSubmatch(q); m != nil {
			e.LampPhrase = cleanLampPhrase(m[1])
		}
	}

	e.VoltCurrent = extractVoltCurrent(lower)

	if m := ipRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			e.IP = &n
		}
	}

	e.PriceLimit = extractPriceLimit(lower)

	if lo, hi, ok := extractRange(lower); ok {
		e.RangeLo, e.RangeHi = &lo, &hi
	}

	for _, kw := range dimmingKeywords {
		if strings.Contains(lower, kw) {
			if kw == "touch dim" {
				kw = "touchdim"
			}
			e.Dimming = kw
			break
		}
	}

	return e
}

// cleanLampPhrase trims punctuation, quotes and trailing carrier words
// from a captured lamp phrase, and drops phrases that are not really lamp
// names (bare numbers, converter references, dimming keywords).
func cleanLampPhrase(phrase string) string {
	s := strings.ToLower(strings.TrimSpace(phrase))
	s = strings.Trim(s, `"'?.!`)

	// The lamp name sits after the last "for" when an earlier trigger
	// word matched ("recommend a converter for powerled" captures
	// "converter for powerled").
	if i := strings.LastIndex(" "+s, " for "); i >= 0 {
		s = s[i+len(" for ")-1:]
	}

	fields := strings.Fields(s)

	// Leading filler sneaks in when the capture starts mid-sentence.
	for len(fields) > 0 {
		switch fields[0] {
		case "for", "a", "an", "the", "my", "this", "with", "to", "each", "every", "all":
			fields = fields[1:]
			continue
		}
		break
	}

	for len(fields) > 0 {
		last := strings.Trim(fields[len(fields)-1], "?.!,")
		stop := false
		for _, sw := range lampStopWords {
			if last == sw {
				fields = fields[:len(fields)-1]
				stop = true
				break
			}
		}
		if !stop {
			break
		}
	}
	s = strings.Join(fields, " ")

	if s == "" {
		return ""
	}
	if artnrRe.MatchString(s) && len(fields) <= 2 {
		// "for converter 930546" is an article reference, not a lamp.
		return ""
	}
	switch fields[0] {
	case "converter", "converters", "driver", "drivers", "artnr":
		return ""
	}
	for _, kw := range dimmingKeywords {
		if s == kw {
			return ""
		}
	}
	return s
}

// extractVoltCurrent finds a voltage or current token like "24v" or
// "350ma". Tokens preceded by a dash are skipped so the "1-10v" dimming
// protocol is not mistaken for 10 volts.
func extractVoltCurrent(lower string) string {
	for _, idx := range voltR.FindAllStringSubmatchIndex(lower, -1) {
		start := idx[0]
		if start > 0 && lower[start-1] == '-' {
			continue
		}
		value := lower[idx[2]:idx[3]]
		unit := lower[idx[4]:idx[5]]
		return strings.ReplaceAll(value, ",", ".") + unit
	}
	return ""
}

func extractPriceLimit(lower string) *float64 {
	if m := currencyRe.FindStringSubmatch(lower); m != nil {
		f := normalize.ParseNumeric(m[1])
		return &f
	}
	if m := belowRe.FindStringSubmatch(lower); m != nil {
		// A trailing unit means a dimension or voltage bound, not money.
		if m[2] != "" {
			return nil
		}
		if !strings.Contains(lower, "price") && !strings.Contains(lower, "cost") && !strings.Contains(lower, "affordable") && !strings.Contains(lower, "cheap") {
			return nil
		}
		f := normalize.ParseNumeric(m[1])
		return &f
	}
	return nil
}

func extractRange(lower string) (lo, hi float64, ok bool) {
	for _, m := range rangeRe.FindAllStringSubmatch(lower, -1) {
		if m[1] == "1" && m[2] == "10" && strings.Contains(lower, "1-10v") {
			continue
		}
		loF := normalize.ParseNumeric(m[1])
		hiF := normalize.ParseNumeric(m[2])
		return loF, hiF, true
	}
	return 0, 0, false
}
