package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gstdesk/internal/domain"
)

const (
	sheetInvoices  = "Invoices"
	sheetLineItems = "Line Items"
)

var invoiceHeader = []interface{}{
	"Invoice Number", "Invoice Date", "Voucher Type", "Supply Type", "Status",
	"Seller Name", "Seller GSTIN", "Seller State Code",
	"Buyer Name", "Buyer GSTIN", "Buyer State Code",
	"Taxable Amount", "CGST", "SGST", "IGST", "Cess", "Round Off", "Grand Total",
}

var lineItemHeader = []interface{}{
	"Invoice Number", "Description", "HSN/SAC", "Quantity", "Unit", "Rate",
	"GST Rate", "Taxable Amount", "CGST", "SGST", "IGST", "Cess", "Total",
}

// WriteWorkbook renders an Excel workbook with a summary sheet and a
// flattened line-items sheet.
func WriteWorkbook(invoices []domain.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetInvoices); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetLineItems); err != nil {
		return nil, fmt.Errorf("creating line items sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetInvoices, "A1", &invoiceHeader); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheetLineItems, "A1", &lineItemHeader); err != nil {
		return nil, err
	}

	itemRow := 2
	for i := range invoices {
		inv := &invoices[i]
		doc := &inv.Document

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			doc.Header.InvoiceNumber, doc.Header.InvoiceDate,
			string(doc.Header.VoucherType), string(doc.Header.SupplyType), string(inv.Status),
			doc.Seller.Name, doc.Seller.GSTIN, doc.Seller.StateCode,
			doc.Buyer.Name, doc.Buyer.GSTIN, doc.Buyer.StateCode,
			doc.Totals.TaxableAmount.StringFixed(2),
			doc.Totals.CGSTTotal.StringFixed(2),
			doc.Totals.SGSTTotal.StringFixed(2),
			doc.Totals.IGSTTotal.StringFixed(2),
			doc.Totals.CessTotal.StringFixed(2),
			doc.Totals.RoundOff.StringFixed(2),
			doc.Totals.GrandTotal.StringFixed(2),
		}
		if err := f.SetSheetRow(sheetInvoices, cell, &row); err != nil {
			return nil, err
		}

		for j := range doc.LineItems {
			item := &doc.LineItems[j]
			cell, err := excelize.CoordinatesToCellName(1, itemRow)
			if err != nil {
				return nil, err
			}
			row := []interface{}{
				doc.Header.InvoiceNumber, item.Description, item.HSNSACCode,
				item.Quantity.String(), item.Unit, item.Rate.StringFixed(2),
				item.GSTRate.String(),
				item.TaxableAmount.StringFixed(2),
				item.CGSTAmount.StringFixed(2),
				item.SGSTAmount.StringFixed(2),
				item.IGSTAmount.StringFixed(2),
				item.CessAmount.StringFixed(2),
				item.TotalAmount.StringFixed(2),
			}
			if err := f.SetSheetRow(sheetLineItems, cell, &row); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
