package invoice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
)

func TestResolveColumnsFallbackHeader(t *testing.T) {
	header, cols, err := ResolveColumns(Header(constants.FallbackHeader))
	require.NoError(t, err)
	assert.Equal(t, "UNIT PRICE", cols.UnitPrice)
	assert.Equal(t, "QTY", cols.Quantity)
	assert.Equal(t, "DEC.", cols.Description)
	assert.Equal(t, constants.DutyColumn, cols.Duty, "missing duty column defaults and is appended")
	assert.Equal(t, Header{"C/NO.", "CODE", "DEC.", "QTY", "UNIT PRICE", "AMOUNT", "duty"}, header)
}

func TestResolveColumnsExplicitDuty(t *testing.T) {
	in := Header{"Description", "Qty", "Unit Price", "Duty %"}
	header, cols, err := ResolveColumns(in)
	require.NoError(t, err)
	assert.Equal(t, "Duty %", cols.Duty)
	assert.Equal(t, in, header, "header is not extended when a duty column exists")
}

func TestResolveColumnsKeywordAliases(t *testing.T) {
	_, cols, err := ResolveColumns(Header{"Item", "Units", "Item Price", "Tariff Rate"})
	require.NoError(t, err)
	assert.Equal(t, "Item Price", cols.UnitPrice)
	assert.Equal(t, "Units", cols.Quantity)
	assert.Equal(t, "Item", cols.Description)
	assert.Equal(t, "Tariff Rate", cols.Duty)
}

func TestResolveColumnsFirstMatchWins(t *testing.T) {
	_, cols, err := ResolveColumns(Header{"Price A", "Price B", "Qty", "Product"})
	require.NoError(t, err)
	assert.Equal(t, "Price A", cols.UnitPrice)
}

func TestResolveColumnsMissingRoleFatal(t *testing.T) {
	_, _, err := ResolveColumns(Header{"Description", "Qty"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInputShape))
	assert.Contains(t, err.Error(), "unit price")
}

func TestLooksLikeHeader(t *testing.T) {
	assert.True(t, looksLikeHeader([]string{"C/NO.", "CODE", "DEC.", "QTY", "UNIT PRICE", "AMOUNT"}))
	assert.True(t, looksLikeHeader([]string{"", "", "Quantity"}))
	assert.False(t, looksLikeHeader([]string{"1", "49081090", "PATCHES", "5", "10.00", "50.00"}))
	assert.False(t, looksLikeHeader(nil))
}

func TestHeaderContains(t *testing.T) {
	h := Header{"Description", "duty"}
	assert.True(t, h.Contains("duty"))
	assert.False(t, h.Contains("factor"))
}
