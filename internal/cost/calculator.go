package cost

import (
	"fmt"
	"log/slog"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
	"github.com/Gee9999/Air-Ship/internal/factor"
	"github.com/Gee9999/Air-Ship/internal/invoice"
)

// Calculator prices one record at a time: factor lookup by resolved duty,
// value = unit price x factor, total = value x quantity. Money columns are
// rendered with exactly two decimals, half-to-even.
type Calculator struct {
	logger *slog.Logger
}

func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

// Price writes the factor, value and total columns onto the record. Unit
// price and quantity parse leniently; unparseable cells count as zero.
func (c *Calculator) Price(rec invoice.Record, cols invoice.Columns, duty int, factors factor.Table) error {
	f, ok := factors[duty]
	if !ok {
		return fmt.Errorf("no factor for duty %d%%: %w", duty, common.ErrResolution)
	}
	price := common.ParseAmount(rec[cols.UnitPrice])
	qty := common.ParseAmount(rec[cols.Quantity])
	value := price.Mul(f).RoundBank(2)
	total := value.Mul(qty).RoundBank(2)
	rec[constants.FactorColumn] = f.String()
	rec[constants.ValueColumn] = value.StringFixed(2)
	rec[constants.TotalColumn] = total.StringFixed(2)
	return nil
}

// OutputHeader returns the header plus the three computed columns, each
// appended only when absent, so re-processing an output file stays stable.
func OutputHeader(header invoice.Header) invoice.Header {
	out := make(invoice.Header, len(header), len(header)+3)
	copy(out, header)
	for _, col := range []string{constants.FactorColumn, constants.ValueColumn, constants.TotalColumn} {
		if !out.Contains(col) {
			out = append(out, col)
		}
	}
	return out
}
