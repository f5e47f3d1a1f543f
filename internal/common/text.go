package common

import (
	"regexp"
	"strings"
)

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeText lowercases s, collapses every run of non-alphanumeric
// characters to a single space, and trims. Header names, duty table keys
// and match queries all go through this one rule.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// HasLetter reports whether s contains at least one ASCII letter.
func HasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
