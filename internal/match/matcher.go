package match

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Gee9999/Air-Ship/internal/common"
	"github.com/Gee9999/Air-Ship/internal/customs"
	"github.com/Gee9999/Air-Ship/internal/factor"
	"github.com/Gee9999/Air-Ship/internal/invoice"
)

const (
	defaultThreshold = 70
	descErrorLen     = 40
)

// Matcher resolves a duty percentage for each invoice record. A nonzero
// declared duty wins outright; otherwise the normalized description is
// fuzzy-matched against the duty table.
type Matcher struct {
	threshold int
	scorer    Scorer
	logger    *slog.Logger
}

func NewMatcher(threshold int, scorer Scorer, logger *slog.Logger) *Matcher {
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	if scorer == nil {
		scorer = TokenSetScorer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{threshold: threshold, scorer: scorer, logger: logger}
}

// Resolve returns the duty percentage for one record without mutating it.
// Records that declare no duty and match nothing score duty 0.
func (m *Matcher) Resolve(rec invoice.Record, cols invoice.Columns, table customs.DutyTable) int {
	if duty := common.ParseDutyPercent(rec[cols.Duty]); duty != 0 {
		return duty
	}
	desc := common.NormalizeText(rec[cols.Description])
	if desc == "" {
		return 0
	}
	key, score := BestMatch(desc, table.Keys(), m.scorer)
	if score < m.threshold {
		m.logger.Debug("match.miss", "desc", desc, "best", key, "score", score)
		return 0
	}
	m.logger.Debug("match.hit", "desc", desc, "key", key, "score", score)
	return table[key]
}

// ResolveRecord resolves the record's duty, checks the factor table covers
// it, and overwrites the duty column with the resolved integer. A duty
// without a factor aborts the whole run.
func (m *Matcher) ResolveRecord(rec invoice.Record, cols invoice.Columns, table customs.DutyTable, factors factor.Table) (int, error) {
	duty := m.Resolve(rec, cols, table)
	if !factors.Has(duty) {
		return 0, fmt.Errorf("no factor for duty %d%% (desc: %s): %w",
			duty, truncate(rec[cols.Description], descErrorLen), common.ErrResolution)
	}
	rec[cols.Duty] = strconv.Itoa(duty)
	return duty, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
