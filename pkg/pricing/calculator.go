// Package pricing holds the pure quotation pricing calculators: line
// amounts, scope membership, percentage adjustments and material swaps.
// Everything here is side-effect free and never mutates its input.
package pricing

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/measure"
	"github.com/craftquote/quote-engine/pkg/types"
)

// LineAmount computes the monetary amount for a single line item. Missing
// dimensions or quantities contribute zero; the function is total and never
// errors. rateOverride, when non-nil, replaces the item's active rate.
func LineAmount(item types.LineItem, rateOverride *decimal.Decimal) decimal.Decimal {
	rate := item.Rate
	if rateOverride != nil {
		rate = *rateOverride
	}

	switch measure.ResolveKind(item.UnitCode) {
	case measure.KindArea:
		sqft := measure.AreaSquareFeet(item.Length, item.Width, item.MeasurementUnit)
		return decimal.NewFromFloat(sqft).Mul(rate)
	case measure.KindLength:
		ft := measure.ToFeet(item.Length, item.MeasurementUnit)
		return decimal.NewFromFloat(ft).Mul(rate)
	case measure.KindFixed:
		// Rate is the flat amount; dimensions are ignored.
		return rate
	default:
		return decimal.NewFromFloat(lo.FromPtr(item.Quantity)).Mul(rate)
	}
}

// LineMeasure returns the canonical measured quantity for an item: square
// feet for area, feet for length, the counted quantity otherwise. Fixed
// items measure as 1.
func LineMeasure(item types.LineItem) (float64, measure.Kind) {
	kind := measure.ResolveKind(item.UnitCode)
	switch kind {
	case measure.KindArea:
		return measure.AreaSquareFeet(item.Length, item.Width, item.MeasurementUnit), kind
	case measure.KindLength:
		return measure.ToFeet(item.Length, item.MeasurementUnit), kind
	case measure.KindFixed:
		return 1, kind
	default:
		return lo.FromPtr(item.Quantity), kind
	}
}

// Incomplete reports whether the item is missing the dimensions its
// measurement kind needs. Incomplete items price as zero and are surfaced as
// warnings by aggregation, not rejected.
func Incomplete(item types.LineItem) bool {
	switch measure.ResolveKind(item.UnitCode) {
	case measure.KindArea:
		return item.Length == nil || item.Width == nil
	case measure.KindLength:
		return item.Length == nil
	case measure.KindFixed:
		return false
	default:
		return item.Quantity == nil
	}
}

// Explain renders a one-line breakdown of how an amount was computed
func Explain(item types.LineItem, amount decimal.Decimal) string {
	qty, kind := LineMeasure(item)
	switch kind {
	case measure.KindFixed:
		return fmt.Sprintf("%s: flat %s %s", item.CostItemName, amount.StringFixed(2), item.UnitCode)
	default:
		return fmt.Sprintf("%s: %.2f %s x %s/%s = %s",
			item.CostItemName, qty, canonicalUnit(kind), item.Rate.StringFixed(2), item.UnitCode, amount.StringFixed(2))
	}
}

func canonicalUnit(kind measure.Kind) string {
	switch kind {
	case measure.KindArea:
		return "sqft"
	case measure.KindLength:
		return "ft"
	default:
		return "unit"
	}
}
