package planner

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultDurationMinutes is assumed when a candidate's free-text duration
// matches neither the hour nor the minute pattern.
const DefaultDurationMinutes = 120

var (
	// Hour-unit pattern: "2 uur", "2,5 uur", "3 hours", "4h".
	hoursExpr = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:uur|uren|hours?|hrs?|h\b)`)

	// Minute-unit pattern: "90 minuten", "45 min", "30 minutes".
	minutesExpr = regexp.MustCompile(`(?i)(\d+)\s*(?:minuten|minuut|minutes?|mins?|min\b)`)

	// Currency-prefixed decimal: "€ 45,50", "$12", "£ 9.99".
	costExpr = regexp.MustCompile(`[€$£]\s*(\d+(?:[.,]\d+)?)`)
)

// ParseDurationMinutes interprets free-text duration from the catalog.
// The hour pattern is tried before the minute pattern so "1 uur 30 min"
// resolves on hours; unparsable text gets the default.
func ParseDurationMinutes(text string) int {
	if m := hoursExpr.FindStringSubmatch(text); m != nil {
		hours, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err == nil && hours > 0 {
			return int(hours * 60)
		}
	}
	if m := minutesExpr.FindStringSubmatch(text); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err == nil && minutes > 0 {
			return minutes
		}
	}
	return DefaultDurationMinutes
}

// ParseCost extracts an estimated cost from free-text price such as
// "€ 45,50" or "vanaf € 30". Returns nil (unset, not zero) when the text
// carries no currency-prefixed amount.
func ParseCost(text string) *float64 {
	m := costExpr.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil
	}
	return &value
}
