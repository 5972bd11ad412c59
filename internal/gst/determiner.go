// Package gst implements the pure GST computation engine: the
// inter-state determiner, the line-item calculator, and the invoice
// totals aggregator. Everything here is a pure function over decimal
// values; rounding is deferred to the operator-entered round-off.
package gst

import "strings"

// IsInterState reports whether a supply is inter-state by comparing
// the seller and buyer state codes. It is true only when both codes
// are present, non-empty, and unequal.
//
// When either code is missing the supply is treated as intra-state.
// This is a deliberate review-time default that keeps CGST/SGST active
// until both parties' states are known; it is not a statement about
// the correct treatment for tax filing.
func IsInterState(sellerStateCode, buyerStateCode string) bool {
	seller := strings.TrimSpace(sellerStateCode)
	buyer := strings.TrimSpace(buyerStateCode)
	if seller == "" || buyer == "" {
		return false
	}
	return seller != buyer
}
