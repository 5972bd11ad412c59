package gst

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gstdesk/internal/domain"
)

var (
	hundred    = decimal.NewFromInt(100)
	two        = decimal.NewFromInt(2)
	maxGSTRate = decimal.NewFromInt(28)
)

// FieldError is a validation failure on a single line-item or header
// field, reported inline before any persistence is attempted.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateLine checks the operator inputs of a line item. GST rates
// outside [0, 28] are rejected rather than clamped: an out-of-range
// rate is a data-quality signal from extraction that the reviewer has
// to resolve.
func ValidateLine(item domain.LineItem) []FieldError {
	var errs []FieldError
	if item.Quantity.IsNegative() {
		errs = append(errs, FieldError{Field: "quantity", Message: "must be zero or positive"})
	}
	if item.Rate.IsNegative() {
		errs = append(errs, FieldError{Field: "rate", Message: "must be zero or positive"})
	}
	if item.GSTRate.IsNegative() || item.GSTRate.GreaterThan(maxGSTRate) {
		errs = append(errs, FieldError{Field: "gst_rate", Message: "must be between 0 and 28"})
	}
	if item.CessAmount.IsNegative() {
		errs = append(errs, FieldError{Field: "cess_amount", Message: "must be zero or positive"})
	}
	return errs
}

// RecalculateLine derives the taxable amount, the CGST/SGST/IGST
// split, and the line total from the line's operator inputs. The input
// is taken by value and a fresh line is returned; derived fields on
// the input are ignored.
//
// Inter-state supply puts the full GST amount on IGST; intra-state
// splits it equally between CGST and SGST. Exactly one side of the
// split is ever non-zero. Cess is a direct operator input added to the
// line total, never derived from a rate.
func RecalculateLine(item domain.LineItem, interState bool) domain.LineItem {
	taxable := item.Quantity.Mul(item.Rate)
	gstAmount := taxable.Mul(item.GSTRate).Div(hundred)

	if interState {
		item.IGSTAmount = gstAmount
		item.CGSTAmount = decimal.Zero
		item.SGSTAmount = decimal.Zero
	} else {
		half := gstAmount.Div(two)
		item.CGSTAmount = half
		item.SGSTAmount = half
		item.IGSTAmount = decimal.Zero
	}

	item.TaxableAmount = taxable
	item.TotalAmount = taxable.Add(gstAmount).Add(item.CessAmount)
	return item
}

// RecalculateLines recomputes every line for the given inter-state
// flag. Used when a state-code edit flips the flag and invalidates all
// per-line splits at once.
func RecalculateLines(items []domain.LineItem, interState bool) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, item := range items {
		out[i] = RecalculateLine(item, interState)
	}
	return out
}
