package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAttribute(t *testing.T) {
	tests := []struct {
		question string
		want     Attribute
	}{
		{"what is the price of converter 40025?", AttrPrice},
		{"how much does it cost?", AttrPrice},
		{"what is the output voltage of 40025?", AttrOutputVoltage},
		{"input voltage of 40025?", AttrInputVoltage},
		{"what voltage does it need?", AttrInputVoltage},
		{"do you have a datasheet?", AttrDatasheet},
		{"what are the dimensions?", AttrSize},
		{"what is the ip rating of 40025?", AttrIP},
		{"is 40025 ip67?", AttrIP},
		{"what are the specs of 40025?", AttrDescription},
		{"tell me about converter 40025", AttrNone},

		// short triggers must not fire inside longer words
		{"does converter 40025 ship this week?", AttrNone},
		{"what equipment comes with 40025?", AttrNone},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectAttribute(tt.question))
		})
	}
}
