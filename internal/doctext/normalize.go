package doctext

import (
	"regexp"
	"strings"
)

var (
	reLineBreak = regexp.MustCompile(`\r\n?`)
	reGap       = regexp.MustCompile(`[\t ]+`)
	reBlankRun  = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses noisy whitespace in extracted worksheet text while
// keeping line breaks and page breaks (\f) intact. Horizontal-rule lines
// from layout output are blanked, runs of blank lines shrink to one.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	lines := strings.Split(reLineBreak.ReplaceAllString(s, "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(reGap.ReplaceAllString(line, " "), " ")
		if isRuleLine(line) {
			line = ""
		}
		lines[i] = line
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(reBlankRun.ReplaceAllString(s, "\n\n"))
}

// isRuleLine reports whether a line is only underscores and dashes, the
// table borders pdftotext leaves behind in layout mode.
func isRuleLine(line string) bool {
	line = strings.Trim(line, " ")
	return len(line) >= 3 && strings.Trim(line, "_-") == ""
}
