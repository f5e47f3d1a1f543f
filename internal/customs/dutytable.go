package customs

import (
	"regexp"
	"sort"
	"strconv"
)

// DutyTable maps normalized product descriptions to integer duty
// percentages (0-99). Built once per run from the worksheet text and
// treated as immutable afterwards.
type DutyTable map[string]int

// Keys returns the table keys sorted, so candidate iteration during
// matching is deterministic.
func (t DutyTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// reDutySignal matches the leftmost duty signal in a worksheet line:
// a 1-2 digit number optionally followed by "%" or a decimal suffix of one
// or two zeros ("15", "15%", "15 %", "15.0", "15.00" all mean 15), or the
// literal token FREE (duty 0). The digit group is the value; the percent or
// decimal suffix is a discriminator only.
var reDutySignal = regexp.MustCompile(`(?i)\b(\d{1,2})(?:\s?%|\s?\.0{1,2})?\b|\bfree\b`)

// signal is one duty marker found within a line.
type signal struct {
	duty  int // resolved percentage; 0 for FREE
	start int // byte offset where the signal begins
}

func findSignal(line string) (signal, bool) {
	m := reDutySignal.FindStringSubmatchIndex(line)
	if m == nil {
		return signal{}, false
	}
	sig := signal{start: m[0]}
	if m[2] >= 0 {
		sig.duty, _ = strconv.Atoi(line[m[2]:m[3]])
	}
	return sig, true
}
