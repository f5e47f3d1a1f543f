// Package factor holds the duty-to-multiplier table and its two input
// forms: repeatable INTEGER=REAL flags and a JSON file.
package factor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Gee9999/Air-Ship/internal/common"
)

// Table maps an integer duty percentage to its caller-supplied multiplier.
type Table map[int]decimal.Decimal

// Has reports whether the table carries a multiplier for duty.
func (t Table) Has(duty int) bool {
	_, ok := t[duty]
	return ok
}

// Merge overlays other onto t, other's entries winning on conflict.
func (t Table) Merge(other Table) {
	for k, v := range other {
		t[k] = v
	}
}

// ParseFlags builds a Table from "INTEGER=REAL" pairs. Keys may carry a
// decimal point ("15.0" means 15, truncated toward zero) and duplicate
// keys keep the last value. Any malformed pair fails the whole parse.
func ParseFlags(pairs []string) (Table, error) {
	t := Table{}
	for _, pair := range pairs {
		k, v, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("bad --factor flag %q (want INTEGER=REAL, e.g. 15=25.91): %w", pair, common.ErrConfig)
		}
		key, err := decimal.NewFromString(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("bad --factor key in %q: %w", pair, common.ErrConfig)
		}
		val, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("bad --factor value in %q: %w", pair, common.ErrConfig)
		}
		t[int(key.IntPart())] = val
	}
	return t, nil
}
