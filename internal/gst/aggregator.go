package gst

import (
	"github.com/shopspring/decimal"

	"gstdesk/internal/domain"
)

// ComputeTotals sums the derived fields of the given line items and
// applies the operator-entered round-off. It builds the totals from
// scratch on every call, so recomputing an unchanged sequence yields
// identical results.
//
// Additional charges and discounts are deliberately absent here: they
// are display-layer adjustments, not part of the invariant
// grand_total = taxable + cgst + sgst + igst + cess + round_off.
func ComputeTotals(items []domain.LineItem, roundOff decimal.Decimal) domain.InvoiceTotals {
	totals := domain.InvoiceTotals{
		TaxableAmount: decimal.Zero,
		CGSTTotal:     decimal.Zero,
		SGSTTotal:     decimal.Zero,
		IGSTTotal:     decimal.Zero,
		CessTotal:     decimal.Zero,
		RoundOff:      roundOff,
	}

	for _, item := range items {
		totals.TaxableAmount = totals.TaxableAmount.Add(item.TaxableAmount)
		totals.CGSTTotal = totals.CGSTTotal.Add(item.CGSTAmount)
		totals.SGSTTotal = totals.SGSTTotal.Add(item.SGSTAmount)
		totals.IGSTTotal = totals.IGSTTotal.Add(item.IGSTAmount)
		totals.CessTotal = totals.CessTotal.Add(item.CessAmount)
	}

	totals.GrandTotal = totals.TaxableAmount.
		Add(totals.CGSTTotal).
		Add(totals.SGSTTotal).
		Add(totals.IGSTTotal).
		Add(totals.CessTotal).
		Add(totals.RoundOff)

	return totals
}
