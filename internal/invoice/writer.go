package invoice

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteCSV serializes the header and records to UTF-8 comma-delimited
// bytes, one record per row in final column order. Callers write the bytes
// in a single operation so a failed run leaves no partial artifact behind.
func WriteCSV(header Header, records []Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, col := range header {
			row[i] = rec[col]
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX returns the augmented invoice as an XLSX workbook, for callers
// that want a spreadsheet artifact instead of CSV.
func WriteXLSX(header Header, records []Record) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Invoice"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	row := 2
	for _, rec := range records {
		for i, col := range header {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, rec[col])
		}
		row++
	}

	// Widen columns to fit their header names
	for i, h := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(h) + 6)
		if width < 12 {
			width = 12
		}
		_ = f.SetColWidth(sheet, col, col, width)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
