package invoice

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPathHeaderDetected(t *testing.T) {
	path := writeTempFile(t, "invoice.csv", "Description,Qty,Unit Price\nPATCHES,5,10.00\n")
	header, records, err := NewLoader(nil).LoadPath(path)
	require.NoError(t, err)
	assert.Equal(t, Header{"Description", "Qty", "Unit Price"}, header)
	require.Len(t, records, 1)
	assert.Equal(t, "PATCHES", records[0]["Description"])
	assert.Equal(t, "10.00", records[0]["Unit Price"])
}

func TestLoadPathFallbackHeader(t *testing.T) {
	path := writeTempFile(t, "invoice.csv", "1,49081090,PATCHES,5,10.00,50.00\n2,62179090,BADGES,3,4.20,12.60\n")
	header, records, err := NewLoader(nil).LoadPath(path)
	require.NoError(t, err)
	assert.Equal(t, Header(constants.FallbackHeader), header, "headerless files get the fixed header, all rows are data")
	require.Len(t, records, 2)
	assert.Equal(t, "PATCHES", records[0]["DEC."])
	assert.Equal(t, "10.00", records[0]["UNIT PRICE"])
	assert.Equal(t, "BADGES", records[1]["DEC."])
}

func TestLoadPathRaggedRows(t *testing.T) {
	path := writeTempFile(t, "invoice.csv", "Description,Qty,Unit Price\nPATCHES,5\nWIDGETS,2,3.00,EXTRA\n")
	_, records, err := NewLoader(nil).LoadPath(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "", records[0]["Unit Price"], "short rows pad with empty strings")
	assert.Equal(t, "3.00", records[1]["Unit Price"], "cells beyond the header are dropped")
}

func TestLoadPathStripsBOM(t *testing.T) {
	path := writeTempFile(t, "invoice.csv", "\uFEFFDescription,Qty,Unit Price\nPATCHES,5,10.00\n")
	header, _, err := NewLoader(nil).LoadPath(path)
	require.NoError(t, err)
	assert.Equal(t, "Description", header[0])
}

func TestLoadPathEmptyFatal(t *testing.T) {
	path := writeTempFile(t, "invoice.csv", "")
	_, _, err := NewLoader(nil).LoadPath(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInputShape))
}

func TestLoadPathUnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "invoice.pdf", "not an invoice")
	_, _, err := NewLoader(nil).LoadPath(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInputShape))
}

func TestLoadPathXLSXRoundTrip(t *testing.T) {
	header := Header{"Description", "Qty", "Unit Price"}
	records := []Record{
		{"Description": "PATCHES", "Qty": "5", "Unit Price": "10.00"},
		{"Description": "BADGES", "Qty": "3", "Unit Price": "4.20"},
	}
	data, err := WriteXLSX(header, records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "invoice.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0644))

	gotHeader, gotRecords, err := NewLoader(nil).LoadPath(path)
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	require.Len(t, gotRecords, 2)
	assert.Equal(t, "PATCHES", gotRecords[0]["Description"])
	assert.Equal(t, "4.20", gotRecords[1]["Unit Price"])
}
