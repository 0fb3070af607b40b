package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdevries/tripwise/backend/internal/planner"
)

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"dutch hours", "2 uur", 120},
		{"dutch hours plural", "3 uren", 180},
		{"dutch fractional hours", "2,5 uur", 150},
		{"dutch minutes", "90 minuten", 90},
		{"dutch single minute unit", "1 minuut", 1},
		{"english hours", "3 hours", 180},
		{"english short hours", "4h", 240},
		{"english minutes", "45 min", 45},
		{"hours win over minutes", "1 uur 30 minuten", 60},
		{"embedded in text", "Duur: 2 uur (incl. pauze)", 120},
		{"unparsable", "flexibel", planner.DefaultDurationMinutes},
		{"empty", "", planner.DefaultDurationMinutes},
		{"bare number without unit", "45", planner.DefaultDurationMinutes},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, planner.ParseDurationMinutes(tc.text))
		})
	}
}

func TestParseCost_EuroCommaDecimal(t *testing.T) {
	got := planner.ParseCost("€ 45,50")

	require.NotNil(t, got)
	assert.InDelta(t, 45.50, *got, 0.001)
}

func TestParseCost_Variants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"euro no space", "€45,50", 45.50},
		{"euro dot decimal", "€ 12.99", 12.99},
		{"dollar", "$ 30", 30},
		{"pound", "£9.99", 9.99},
		{"prefixed text", "vanaf € 30", 30},
		{"integer amount", "€ 45", 45},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := planner.ParseCost(tc.text)
			require.NotNil(t, got, "expected a parsed cost for %q", tc.text)
			assert.InDelta(t, tc.want, *got, 0.001)
		})
	}
}

func TestParseCost_NoAmount(t *testing.T) {
	// No currency symbol means no cost — nil, never zero. A stored zero would
	// read as "free" while nil reads as "unknown".
	assert.Nil(t, planner.ParseCost("gratis"))
	assert.Nil(t, planner.ParseCost(""))
	assert.Nil(t, planner.ParseCost("45,50"))
}
