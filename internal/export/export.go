// Package export renders batches of reviewed invoices as downloadable
// files. Two formats are supported: an Excel workbook and a CSV
// summary compatible with spreadsheet imports.
package export

import (
	"fmt"

	"gstdesk/internal/domain"
)

// Format names a supported export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ValidFormats lists the accepted export formats.
var ValidFormats = map[Format]bool{
	FormatXLSX: true,
	FormatCSV:  true,
}

// Write renders the invoices in the given format and returns the file
// bytes and MIME content type.
func Write(invoices []domain.Invoice, format Format) ([]byte, string, error) {
	switch format {
	case FormatXLSX:
		data, err := WriteWorkbook(invoices)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case FormatCSV:
		data, err := WriteCSV(invoices)
		return data, "text/csv; charset=utf-8", err
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}
