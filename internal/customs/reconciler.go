package customs

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Gee9999/Air-Ship/internal/common"
)

// Reconciler extracts description→duty pairs from worksheet text.
//
// Worksheets pair descriptions with duties either on one line
// ("WIDGETS 20%") or split across adjacent lines (an HS code line, then the
// description, then the duty). A two-state machine over the non-blank lines
// handles both layouts.
type Reconciler struct {
	minDescLen int
	logger     *slog.Logger
}

func NewReconciler(minDescLen int, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	if minDescLen <= 0 {
		minDescLen = 3
	}
	return &Reconciler{minDescLen: minDescLen, logger: logger}
}

type parseState int

const (
	stateNoPending parseState = iota
	statePending
)

// ParseWorksheet runs the line machine over the extracted text and returns
// the duty table. Form feeds count as line breaks so page boundaries never
// glue two lines together. Fails when the whole document yields no pairs.
func (r *Reconciler) ParseWorksheet(text string) (DutyTable, error) {
	table := DutyTable{}
	state := stateNoPending
	pending := ""

	lines := strings.Split(strings.ReplaceAll(text, "\f", "\n"), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sig, ok := findSignal(line)

		// a duty-only line closes a pending description
		if state == statePending && ok && common.NormalizeText(line[:sig.start]) == "" {
			r.record(table, pending, sig.duty)
			pending = ""
			state = stateNoPending
			continue
		}

		switch {
		case ok && common.NormalizeText(line[:sig.start]) != "":
			// same-line pair; any pending description is discarded
			r.record(table, common.NormalizeText(line[:sig.start]), sig.duty)
			pending = ""
			state = stateNoPending
		case ok || common.HasLetter(line):
			// candidate description for the next duty line, overwriting an
			// unmatched predecessor
			pending = common.NormalizeText(line)
			state = statePending
		}
		// lines with no signal and no letters (HS-code runs, rule lines)
		// leave the state untouched
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("no description to duty pairs in worksheet: %w", common.ErrExtraction)
	}
	r.logger.Debug("duty table built", "entries", len(table))
	return table, nil
}

// record applies the table invariants: keys arrive normalized, entries
// shorter than the minimum are noise, later pairs overwrite earlier ones.
func (r *Reconciler) record(table DutyTable, desc string, duty int) {
	if len(desc) < r.minDescLen {
		return
	}
	table[desc] = duty
}
