package sourcing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLeadingDecimal(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"4,7", 4.7},
		{"4.8 out of 5", 4.8},
		{"4,7 (1203 reviews)", 4.7},
		{"rating: 3", 3},
		{"", 0},
		{"geen beoordeling", 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, parseLeadingDecimal(tc.text), 0.001, "input %q", tc.text)
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"1203 reviews", 1203},
		{"12", 12},
		{"", 0},
		{"no reviews yet", 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, parseLeadingInt(tc.text), "input %q", tc.text)
	}
}
