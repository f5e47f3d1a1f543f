package invoice

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
)

// Loader reads an invoice artifact into a header plus raw records.
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadPath picks a reader based on file extension and shapes the rows.
func (l *Loader) LoadPath(path string) (Header, []Record, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	var rows [][]string
	var err error
	switch constants.MapExtToFormat(ext) {
	case constants.CSV:
		rows, err = l.readCSV(path)
	case constants.XLSX:
		rows, err = l.readXLSX(path)
	default:
		return nil, nil, fmt.Errorf("unsupported invoice extension %q: %w", ext, common.ErrInputShape)
	}
	if err != nil {
		return nil, nil, err
	}
	return l.BuildRecords(rows)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (l *Loader) readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read invoice: %v: %w", err, common.ErrInputShape)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows allowed
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse invoice csv: %v: %w", err, common.ErrInputShape)
	}
	return rows, nil
}

func (l *Loader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open invoice xlsx: %v: %w", err, common.ErrInputShape)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.Warn("close xlsx", "path", path, "error", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("invoice workbook has no sheets: %w", common.ErrInputShape)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read invoice sheet %q: %v: %w", sheets[0], err, common.ErrInputShape)
	}
	return rows, nil
}

// BuildRecords applies header detection and shapes every data row into a
// Record. Row 0 is the header when any cell mentions a role keyword;
// otherwise the fixed fallback header is injected and all rows are data.
// Rows shorter than the header read as empty strings for the missing
// trailing columns; cells beyond the header are dropped.
func (l *Loader) BuildRecords(rows [][]string) (Header, []Record, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("invoice is empty: %w", common.ErrInputShape)
	}

	var header Header
	var data [][]string
	if looksLikeHeader(rows[0]) {
		header = append(Header(nil), rows[0]...)
		data = rows[1:]
	} else {
		header = append(Header(nil), constants.FallbackHeader...)
		data = rows
		l.logger.Debug("no header detected, fallback injected", "columns", len(header))
	}

	records := make([]Record, 0, len(data))
	for _, row := range data {
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return header, records, nil
}
