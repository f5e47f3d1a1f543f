package common

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var reNonNumeric = regexp.MustCompile(`[^0-9.]+`)

// StripNumeric removes every character except digits and decimal points.
func StripNumeric(s string) string {
	return reNonNumeric.ReplaceAllString(s, "")
}

// ParseAmount parses a messy magnitude string leniently: everything except
// digits and decimal points is stripped first; an empty or unparseable
// remainder resolves to zero rather than an error.
// "$12.50" -> 12.5, "3,00 pcs" -> 300, "n/a" -> 0.
func ParseAmount(s string) decimal.Decimal {
	stripped := StripNumeric(s)
	if stripped == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(stripped)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDutyPercent parses a duty cell to its integer percentage with the
// same leniency, truncating any decimal part ("15.93%" -> 15).
func ParseDutyPercent(s string) int {
	return int(ParseAmount(s).IntPart())
}
