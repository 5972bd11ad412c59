package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gstdesk/internal/domain"
	"gstdesk/internal/gst"
)

func TestComputeTotals_SumsDerivedFields(t *testing.T) {
	items := gst.RecalculateLines([]domain.LineItem{
		{Quantity: dec("10"), Rate: dec("100"), GSTRate: dec("18")},
		{Quantity: dec("5"), Rate: dec("200"), GSTRate: dec("12"), CessAmount: dec("40")},
	}, false)

	totals := gst.ComputeTotals(items, decimal.Zero)

	assert.True(t, dec("2000").Equal(totals.TaxableAmount), "taxable = %s", totals.TaxableAmount)
	assert.True(t, dec("150").Equal(totals.CGSTTotal), "cgst = %s", totals.CGSTTotal)
	assert.True(t, dec("150").Equal(totals.SGSTTotal), "sgst = %s", totals.SGSTTotal)
	assert.True(t, totals.IGSTTotal.IsZero())
	assert.True(t, dec("40").Equal(totals.CessTotal))
	assert.True(t, dec("2340").Equal(totals.GrandTotal), "grand = %s", totals.GrandTotal)
}

func TestComputeTotals_RoundOffSigned(t *testing.T) {
	items := gst.RecalculateLines([]domain.LineItem{
		{Quantity: dec("1"), Rate: dec("99.60"), GSTRate: dec("0")},
	}, false)

	up := gst.ComputeTotals(items, dec("0.40"))
	assert.True(t, dec("100").Equal(up.GrandTotal), "grand = %s", up.GrandTotal)

	down := gst.ComputeTotals(items, dec("-0.60"))
	assert.True(t, dec("99").Equal(down.GrandTotal), "grand = %s", down.GrandTotal)
}

func TestComputeTotals_GrandTotalInvariant(t *testing.T) {
	items := gst.RecalculateLines([]domain.LineItem{
		{Quantity: dec("3"), Rate: dec("333.33"), GSTRate: dec("28"), CessAmount: dec("12")},
		{Quantity: dec("7"), Rate: dec("45.50"), GSTRate: dec("5")},
	}, true)

	totals := gst.ComputeTotals(items, dec("-0.17"))

	want := totals.TaxableAmount.
		Add(totals.CGSTTotal).
		Add(totals.SGSTTotal).
		Add(totals.IGSTTotal).
		Add(totals.CessTotal).
		Add(totals.RoundOff)
	assert.True(t, want.Equal(totals.GrandTotal))
}

func TestComputeTotals_EmptyLines(t *testing.T) {
	totals := gst.ComputeTotals(nil, dec("0.05"))

	assert.True(t, totals.TaxableAmount.IsZero())
	assert.True(t, totals.CessTotal.IsZero())
	assert.True(t, dec("0.05").Equal(totals.GrandTotal))
}

func TestComputeTotals_FreshBuildEachCall(t *testing.T) {
	items := gst.RecalculateLines([]domain.LineItem{
		{Quantity: dec("2"), Rate: dec("50"), GSTRate: dec("18")},
	}, false)

	first := gst.ComputeTotals(items, decimal.Zero)
	second := gst.ComputeTotals(items, decimal.Zero)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.True(t, first.TaxableAmount.Equal(second.TaxableAmount))
}
