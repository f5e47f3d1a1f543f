package constants

import "strings"

// Processing formats for pipeline inputs and outputs.
const (
	CSV  = "CSV"
	XLSX = "XLSX"
	PDF  = "PDF"
	TXT  = "TXT"
)

// InvoiceExtensions holds the allowed file extensions for invoice inputs.
var InvoiceExtensions = map[string]struct{}{
	"csv":  {},
	"xlsx": {},
}

// WorksheetExtensions holds the allowed file extensions for customs worksheets.
var WorksheetExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its processing format,
// or "" when the extension is not supported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "csv":
		return CSV
	case "xlsx":
		return XLSX
	case "pdf":
		return PDF
	case "txt":
		return TXT
	default:
		return ""
	}
}
