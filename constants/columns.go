package constants

// Role is a logical column the invoice header must provide.
type Role string

const (
	RoleUnitPrice   Role = "unit price"
	RoleQuantity    Role = "qty"
	RoleDescription Role = "description"
	RoleDuty        Role = "duty"
)

// allRoles fixes the resolution (and error-reporting) order.
var allRoles = []Role{
	RoleUnitPrice,
	RoleQuantity,
	RoleDescription,
	RoleDuty,
}

// ColumnKeywords drives keyword-membership role resolution: a header column
// claims a role when its normalized name contains one of the role's tokens.
// Keywords are matched against normalized text, so entries like "dec." or
// "price/unit" are kept for compatibility with the historical lists even
// though "dec" and "price" subsume them.
var ColumnKeywords = map[Role][]string{
	RoleDuty:        {"duty", "tariff", "rate"},
	RoleUnitPrice:   {"unit price", "price", "item price", "price/unit"},
	RoleQuantity:    {"qty", "quantity", "units", "pcs"},
	RoleDescription: {"description", "product", "item", "dec", "dec."},
}

// FallbackHeader is injected when row 0 of the invoice does not look like a
// header; all raw rows are then treated as data, positionally.
var FallbackHeader = []string{"C/NO.", "CODE", "DEC.", "QTY", "UNIT PRICE", "AMOUNT"}

// Output column names appended by the engine.
const (
	DutyColumn   = "duty"
	FactorColumn = "factor"
	ValueColumn  = "value"
	TotalColumn  = "total"
)

// AllRoles returns the roles in resolution order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// AllKeywords returns every role keyword, flattened in role order.
// Header detection checks any-cell-contains-any-keyword against this set.
func AllKeywords() []string {
	var out []string
	for _, role := range allRoles {
		out = append(out, ColumnKeywords[role]...)
	}
	return out
}
