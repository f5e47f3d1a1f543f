package invoice

import (
	"fmt"
	"strings"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
)

// Record is one invoice line: column name -> raw cell value. Every record
// in a run shares the resolved header's column set.
type Record map[string]string

// Header is the ordered column-name sequence shared by all records in a run.
type Header []string

func (h Header) Contains(name string) bool {
	for _, col := range h {
		if col == name {
			return true
		}
	}
	return false
}

// Columns holds the header columns resolved for the four logical roles.
type Columns struct {
	UnitPrice   string
	Quantity    string
	Description string
	Duty        string
}

// ResolveColumns resolves the logical roles against the header using
// keyword membership on normalized column names. The first column in header
// order claiming a role wins. A missing unit-price, quantity or description
// column is fatal; a missing duty column defaults to the literal "duty",
// appended to the header so the resolved duty shows up in the output.
// Returns the (possibly extended) header alongside the role mapping.
func ResolveColumns(header Header) (Header, Columns, error) {
	var cols Columns
	var err error

	if cols.UnitPrice, err = findColumn(header, constants.RoleUnitPrice); err != nil {
		return nil, Columns{}, err
	}
	if cols.Quantity, err = findColumn(header, constants.RoleQuantity); err != nil {
		return nil, Columns{}, err
	}
	if cols.Description, err = findColumn(header, constants.RoleDescription); err != nil {
		return nil, Columns{}, err
	}

	if cols.Duty, err = findColumn(header, constants.RoleDuty); err != nil {
		cols.Duty = constants.DutyColumn
		header = append(header, cols.Duty)
	}
	return header, cols, nil
}

func findColumn(header Header, role constants.Role) (string, error) {
	keywords := constants.ColumnKeywords[role]
	for _, h := range header {
		name := common.NormalizeText(h)
		for _, k := range keywords {
			if strings.Contains(name, k) {
				return h, nil
			}
		}
	}
	return "", fmt.Errorf("missing %q column (looked for %v in %v): %w",
		string(role), keywords, []string(header), common.ErrInputShape)
}

// looksLikeHeader reports whether any cell of the row mentions any role
// keyword once normalized.
func looksLikeHeader(row []string) bool {
	keywords := constants.AllKeywords()
	for _, cell := range row {
		name := common.NormalizeText(cell)
		for _, k := range keywords {
			if strings.Contains(name, k) {
				return true
			}
		}
	}
	return false
}
