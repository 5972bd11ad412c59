package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gstdesk/internal/domain"
	"gstdesk/internal/gst"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleLine() domain.LineItem {
	return domain.LineItem{
		Description: "HDPE Granules",
		HSNSACCode:  "390120",
		Quantity:    dec("10"),
		Unit:        "KGS",
		Rate:        dec("100"),
		GSTRate:     dec("18"),
		CessAmount:  decimal.Zero,
	}
}

func TestRecalculateLine_IntraState(t *testing.T) {
	got := gst.RecalculateLine(sampleLine(), false)

	assert.True(t, dec("1000").Equal(got.TaxableAmount), "taxable = %s", got.TaxableAmount)
	assert.True(t, dec("90").Equal(got.CGSTAmount), "cgst = %s", got.CGSTAmount)
	assert.True(t, dec("90").Equal(got.SGSTAmount), "sgst = %s", got.SGSTAmount)
	assert.True(t, got.IGSTAmount.IsZero(), "igst = %s", got.IGSTAmount)
	assert.True(t, dec("1180").Equal(got.TotalAmount), "total = %s", got.TotalAmount)
}

func TestRecalculateLine_InterState(t *testing.T) {
	got := gst.RecalculateLine(sampleLine(), true)

	assert.True(t, dec("1000").Equal(got.TaxableAmount))
	assert.True(t, got.CGSTAmount.IsZero())
	assert.True(t, got.SGSTAmount.IsZero())
	assert.True(t, dec("180").Equal(got.IGSTAmount))
	assert.True(t, dec("1180").Equal(got.TotalAmount))
}

func TestRecalculateLine_CessAddedToTotal(t *testing.T) {
	item := sampleLine()
	item.CessAmount = dec("25.50")

	got := gst.RecalculateLine(item, true)

	// Cess is an operator input, never derived from a rate.
	assert.True(t, dec("25.50").Equal(got.CessAmount))
	assert.True(t, dec("1205.50").Equal(got.TotalAmount), "total = %s", got.TotalAmount)
}

func TestRecalculateLine_SplitMutuallyExclusive(t *testing.T) {
	for _, interState := range []bool{true, false} {
		got := gst.RecalculateLine(sampleLine(), interState)
		if interState {
			assert.True(t, got.CGSTAmount.IsZero() && got.SGSTAmount.IsZero())
			assert.False(t, got.IGSTAmount.IsZero())
		} else {
			assert.True(t, got.IGSTAmount.IsZero())
			assert.True(t, got.CGSTAmount.Equal(got.SGSTAmount))
		}
	}
}

func TestRecalculateLine_DiscardsStaleDerivedFields(t *testing.T) {
	item := sampleLine()
	item.TaxableAmount = dec("999999")
	item.IGSTAmount = dec("123")
	item.TotalAmount = dec("1")

	got := gst.RecalculateLine(item, false)

	assert.True(t, dec("1000").Equal(got.TaxableAmount))
	assert.True(t, got.IGSTAmount.IsZero())
	assert.True(t, dec("1180").Equal(got.TotalAmount))
}

func TestRecalculateLine_Idempotent(t *testing.T) {
	once := gst.RecalculateLine(sampleLine(), false)
	twice := gst.RecalculateLine(once, false)

	assert.True(t, once.TaxableAmount.Equal(twice.TaxableAmount))
	assert.True(t, once.CGSTAmount.Equal(twice.CGSTAmount))
	assert.True(t, once.SGSTAmount.Equal(twice.SGSTAmount))
	assert.True(t, once.IGSTAmount.Equal(twice.IGSTAmount))
	assert.True(t, once.TotalAmount.Equal(twice.TotalAmount))
}

func TestRecalculateLine_ZeroRate(t *testing.T) {
	item := sampleLine()
	item.GSTRate = decimal.Zero

	got := gst.RecalculateLine(item, false)

	assert.True(t, got.CGSTAmount.IsZero())
	assert.True(t, got.SGSTAmount.IsZero())
	assert.True(t, got.IGSTAmount.IsZero())
	assert.True(t, dec("1000").Equal(got.TotalAmount))
}

func TestValidateLine_RejectsOutOfRangeRate(t *testing.T) {
	tests := []struct {
		name  string
		rate  string
		valid bool
	}{
		{"zero", "0", true},
		{"standard slab", "18", true},
		{"top slab", "28", true},
		{"above range", "40", false},
		{"negative", "-5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := sampleLine()
			item.GSTRate = dec(tt.rate)
			errs := gst.ValidateLine(item)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Len(t, errs, 1)
				assert.Equal(t, "gst_rate", errs[0].Field)
			}
		})
	}
}

func TestValidateLine_NegativeInputs(t *testing.T) {
	item := sampleLine()
	item.Quantity = dec("-1")
	item.Rate = dec("-2")
	item.CessAmount = dec("-3")

	errs := gst.ValidateLine(item)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"quantity", "rate", "cess_amount"}, fields)
}

func TestRecalculateLines_AllLinesFollowFlag(t *testing.T) {
	items := []domain.LineItem{sampleLine(), sampleLine(), sampleLine()}

	out := gst.RecalculateLines(items, true)

	assert.Len(t, out, 3)
	for _, item := range out {
		assert.True(t, item.CGSTAmount.IsZero())
		assert.True(t, item.SGSTAmount.IsZero())
		assert.True(t, dec("180").Equal(item.IGSTAmount))
	}
	// input slice is untouched
	assert.True(t, items[0].IGSTAmount.IsZero())
}
