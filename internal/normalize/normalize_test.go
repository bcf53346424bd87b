package normalize

import (
	"math"
	"testing"
)

func TestArticleNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"int", 40025, "40025"},
		{"float with fraction", 40025.0, "40025"},
		{"string", "93055", "93055"},
		{"string with decimal", "40025.0", "40025"},
		{"string with comma decimal", "40025,0", "40025"},
		{"string with whitespace", " 40025 ", "40025"},
		{"non-numeric string passes through", "abc", "abc"},
		{"int64", int64(930546), "930546"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArticleNumber(tt.in); got != tt.want {
				t.Errorf("ArticleNumber(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIP(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"int", 67, "IP67"},
		{"float", 67.0, "IP67"},
		{"string digits", "67", "IP67"},
		{"string with prefix", "IP67", "IP67"},
		{"string with prefix and space", "ip 20", "IP20"},
		{"string with fraction", "67.0", "IP67"},
		{"garbage", "unknown", "N/A"},
		{"empty", "", "N/A"},
		{"nil", nil, "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IP(tt.in); got != tt.want {
				t.Errorf("IP(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNumeric(t *testing.T) {
	if got := ParseNumeric("12,5"); got != 12.5 {
		t.Errorf("comma decimal: got %v", got)
	}
	if got := ParseNumeric("0.87"); got != 0.87 {
		t.Errorf("dot decimal: got %v", got)
	}
	if got := ParseNumeric([]any{"42", "99"}); got != 42 {
		t.Errorf("sequence should use first element: got %v", got)
	}
	if got := ParseNumeric("n/a"); !math.IsInf(got, 1) {
		t.Errorf("unparseable should be +Inf: got %v", got)
	}
	if got := ParseNumeric(nil); !math.IsInf(got, 1) {
		t.Errorf("nil should be +Inf: got %v", got)
	}
}

func TestLampName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"HALOLED", "haloled"},
		{"Lamp, 12V-35W", "lamp 12v 35w"},
		{"A/B (new)", "a b new"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tt := range tests {
		if got := LampName(tt.in); got != tt.want {
			t.Errorf("LampName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRange(t *testing.T) {
	lo, hi, ok := ParseRange("2-25")
	if !ok || lo != 2 || hi != 25 {
		t.Errorf("ParseRange(2-25) = %v,%v,%v", lo, hi, ok)
	}

	lo, hi, ok = ParseRange("24")
	if !ok || lo != 24 || hi != 24 {
		t.Errorf("single value should be both bounds: %v,%v,%v", lo, hi, ok)
	}

	lo, hi, ok = ParseRange("10,5-20,5")
	if !ok || lo != 10.5 || hi != 20.5 {
		t.Errorf("comma decimals: %v,%v,%v", lo, hi, ok)
	}

	if _, _, ok := ParseRange("n/a"); ok {
		t.Error("unparseable range should not be ok")
	}
}
