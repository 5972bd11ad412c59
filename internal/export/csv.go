package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"gstdesk/internal/domain"
)

// BOM is the UTF-8 byte order mark, prepended for Excel compatibility
// on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// csvColumns defines the CSV header row.
var csvColumns = []string{
	"Invoice Number",
	"Invoice Date",
	"Voucher Type",
	"Supply Type",
	"Status",
	"Seller Name",
	"Seller GSTIN",
	"Seller State Code",
	"Buyer Name",
	"Buyer GSTIN",
	"Buyer State Code",
	"Line Item Count",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"Cess",
	"Round Off",
	"Grand Total",
	"Reviewer Notes",
}

// WriteCSV renders one summary row per invoice.
func WriteCSV(invoices []domain.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvColumns); err != nil {
		return nil, err
	}
	for i := range invoices {
		if err := w.Write(invoiceToRow(&invoices[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func invoiceToRow(inv *domain.Invoice) []string {
	doc := &inv.Document
	return []string{
		doc.Header.InvoiceNumber,
		doc.Header.InvoiceDate,
		string(doc.Header.VoucherType),
		string(doc.Header.SupplyType),
		string(inv.Status),
		doc.Seller.Name,
		doc.Seller.GSTIN,
		doc.Seller.StateCode,
		doc.Buyer.Name,
		doc.Buyer.GSTIN,
		doc.Buyer.StateCode,
		strconv.Itoa(len(doc.LineItems)),
		doc.Totals.TaxableAmount.StringFixed(2),
		doc.Totals.CGSTTotal.StringFixed(2),
		doc.Totals.SGSTTotal.StringFixed(2),
		doc.Totals.IGSTTotal.StringFixed(2),
		doc.Totals.CessTotal.StringFixed(2),
		doc.Totals.RoundOff.StringFixed(2),
		doc.Totals.GrandTotal.StringFixed(2),
		inv.ReviewerNotes,
	}
}
