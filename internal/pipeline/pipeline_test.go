package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
	"github.com/Gee9999/Air-Ship/internal/doctext"
	"github.com/Gee9999/Air-Ship/internal/factor"
)

// stubExtractor returns canned worksheet text without touching the filesystem.
type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(_ context.Context, _ string) (doctext.ExtractionResult, error) {
	if s.err != nil {
		return doctext.ExtractionResult{}, s.err
	}
	return doctext.ExtractionResult{
		Text:   s.text,
		Pages:  1 + strings.Count(s.text, "\f"),
		Method: "plain-text",
	}, nil
}

func writeInvoice(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoice.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFactors(t *testing.T) factor.Table {
	t.Helper()
	table, err := factor.ParseFlags([]string{"15=25.91", "20=2", "0=1"})
	require.NoError(t, err)
	return table
}

func TestProcessEndToEnd(t *testing.T) {
	invoicePath := writeInvoice(t,
		"C/NO.,DEC.,QTY,UNIT PRICE\n"+
			"1,PATCHES ASSTD,5,10.00\n"+
			"2,WIDGETS,2,3.50\n")

	proc := NewProcessor(stubExtractor{text: "PATCHES ASSTD\n15%\nWIDGETS 20%\n"}, common.MatchConfig{}, nil)
	res, data, err := proc.Process(context.Background(), RunRequest{
		InvoicePath:   invoicePath,
		WorksheetPath: "worksheet.txt",
		Format:        constants.CSV,
		Factors:       testFactors(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, constants.CSV, res.Format)
	assert.Equal(t, constants.RunStatusOK, res.Status)
	assert.NotEmpty(t, res.RunID)

	want := "C/NO.,DEC.,QTY,UNIT PRICE,duty,factor,value,total\n" +
		"1,PATCHES ASSTD,5,10.00,15,25.91,259.10,1295.50\n" +
		"2,WIDGETS,2,3.50,20,2,7.00,14.00\n"
	assert.Equal(t, want, string(data))
}

func TestProcessFallbackHeaderInvoice(t *testing.T) {
	// No header row: positional fallback applies and row 0 stays data.
	invoicePath := writeInvoice(t, "1,X99,PATCHES ASSTD,2,10.00,20.00\n")

	proc := NewProcessor(stubExtractor{text: "PATCHES ASSTD 15%\n"}, common.MatchConfig{}, nil)
	res, data, err := proc.Process(context.Background(), RunRequest{
		InvoicePath: invoicePath,
		Format:      constants.CSV,
		Factors:     testFactors(t),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)

	want := "C/NO.,CODE,DEC.,QTY,UNIT PRICE,AMOUNT,duty,factor,value,total\n" +
		"1,X99,PATCHES ASSTD,2,10.00,20.00,15,25.91,259.10,518.20\n"
	assert.Equal(t, want, string(data))
}

func TestProcessXLSXFromOutputExtension(t *testing.T) {
	invoicePath := writeInvoice(t, "DEC.,QTY,UNIT PRICE\nPATCHES,1,4.00\n")

	proc := NewProcessor(stubExtractor{text: "PATCHES 15%\n"}, common.MatchConfig{}, nil)
	res, data, err := proc.Process(context.Background(), RunRequest{
		InvoicePath: invoicePath,
		OutputPath:  "out.xlsx",
		Factors:     testFactors(t),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.XLSX, res.Format)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoice")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"DEC.", "QTY", "UNIT PRICE", "duty", "factor", "value", "total"}, rows[0])
	assert.Equal(t, []string{"PATCHES", "1", "4.00", "15", "25.91", "103.64", "103.64"}, rows[1])
}

func TestProcessReusesContextRunID(t *testing.T) {
	invoicePath := writeInvoice(t, "DEC.,QTY,UNIT PRICE\nPATCHES,1,4.00\n")
	ctx := common.WithRunID(context.Background(), "fixed-run-id")

	proc := NewProcessor(stubExtractor{text: "PATCHES 15%\n"}, common.MatchConfig{}, nil)
	res, _, err := proc.Process(ctx, RunRequest{
		InvoicePath: invoicePath,
		Format:      constants.CSV,
		Factors:     testFactors(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-run-id", res.RunID)
}

func TestProcessEmptyFactorsFatal(t *testing.T) {
	proc := NewProcessor(stubExtractor{text: "PATCHES 15%\n"}, common.MatchConfig{}, nil)

	res, data, err := proc.Process(context.Background(), RunRequest{
		InvoicePath: writeInvoice(t, "DEC.,QTY,UNIT PRICE\nPATCHES,1,4.00\n"),
		Format:      constants.CSV,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConfig)
	assert.Nil(t, data)
	assert.Equal(t, constants.RunStatusFailed, res.Status)
}

func TestProcessEmptyWorksheetFatal(t *testing.T) {
	proc := NewProcessor(stubExtractor{text: "-----\n"}, common.MatchConfig{}, nil)

	_, data, err := proc.Process(context.Background(), RunRequest{
		InvoicePath: writeInvoice(t, "DEC.,QTY,UNIT PRICE\nPATCHES,1,4.00\n"),
		Format:      constants.CSV,
		Factors:     testFactors(t),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtraction)
	assert.Nil(t, data)
}

func TestProcessMissingFactorNamesRow(t *testing.T) {
	factors, err := factor.ParseFlags([]string{"20=2"})
	require.NoError(t, err)

	proc := NewProcessor(stubExtractor{text: "PATCHES 15%\n"}, common.MatchConfig{}, nil)
	_, data, err := proc.Process(context.Background(), RunRequest{
		InvoicePath: writeInvoice(t, "DEC.,QTY,UNIT PRICE\nPATCHES,1,4.00\n"),
		Format:      constants.CSV,
		Factors:     factors,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrResolution)
	assert.Contains(t, err.Error(), "row 1")
	assert.Nil(t, data)
}

func TestRunWritesArtifact(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.csv")
	invoicePath := writeInvoice(t, "DEC.,QTY,UNIT PRICE\nPATCHES,1,4.00\n")

	proc := NewProcessor(stubExtractor{text: "PATCHES 15%\n"}, common.MatchConfig{}, nil)
	res, err := proc.Run(context.Background(), RunRequest{
		InvoicePath: invoicePath,
		OutputPath:  outPath,
		Factors:     testFactors(t),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RunStatusOK, res.Status)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PATCHES,1,4.00,15,25.91,103.64,103.64")
}

func TestRunFailureLeavesNoOutput(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.csv")
	factors, err := factor.ParseFlags([]string{"20=2"}) // duty 15 has no factor
	require.NoError(t, err)

	proc := NewProcessor(stubExtractor{text: "PATCHES 15%\n"}, common.MatchConfig{}, nil)
	res, err := proc.Run(context.Background(), RunRequest{
		InvoicePath: writeInvoice(t, "DEC.,QTY,UNIT PRICE\nPATCHES,1,4.00\n"),
		OutputPath:  outPath,
		Factors:     factors,
	})
	require.Error(t, err)
	assert.Equal(t, constants.RunStatusFailed, res.Status)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "failed runs must not leave an output file")
}
