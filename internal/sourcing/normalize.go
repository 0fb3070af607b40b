package sourcing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	decimalExpr = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	integerExpr = regexp.MustCompile(`\d+`)
)

// parseLeadingDecimal pulls the first decimal number out of raw text such as
// "4,7 (1.203 reviews)" or "4.8 out of 5". Returns 0 when nothing matches.
func parseLeadingDecimal(text string) float64 {
	match := decimalExpr.FindString(text)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0
	}
	return value
}

// parseLeadingInt pulls the first integer out of raw text such as
// "1203 reviews". Returns 0 when nothing matches.
func parseLeadingInt(text string) int {
	match := integerExpr.FindString(text)
	if match == "" {
		return 0
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return value
}
