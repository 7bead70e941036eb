package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/types"
)

var hundred = decimal.NewFromInt(100)

// EffectivePct computes the additive percentage for one line item: the
// global delta plus the bucket matching the run mode. Category buckets are
// keyed by category id; items that only carry the denormalized name snapshot
// are resolved through the category list by name.
func EffectivePct(item types.LineItem, componentTypeID string, categories []types.Category, params types.AdjustmentParams) decimal.Decimal {
	pct := params.GlobalPct

	if params.Mode == types.AdjustByCategory {
		if id := resolveCategoryID(item, categories); id != "" {
			if bucket, ok := params.CategoryPct[id]; ok {
				pct = pct.Add(bucket)
			}
		}
	} else {
		if bucket, ok := params.ComponentPct[componentTypeID]; ok {
			pct = pct.Add(bucket)
		}
	}

	return pct
}

// resolveCategoryID prefers the canonical id on the row; older rows carry
// only the name snapshot, which breaks if the category was renamed since.
func resolveCategoryID(item types.LineItem, categories []types.Category) string {
	if item.CategoryID != "" {
		return item.CategoryID
	}
	for _, cat := range categories {
		if cat.Name == item.CategoryName {
			return cat.ID
		}
	}
	return ""
}

// AdjustRate applies a percentage delta to a rate, rounding half away from
// zero to 2 decimals. Rates below -100% go negative; they are passed through
// unclamped, matching how saved quotations behave today.
func AdjustRate(rate, pct decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred.Add(pct)).Div(hundred).Round(2)
}

// AdjustLineItem returns the item with its rate adjusted by the effective
// percentage. A zero effective percentage returns the item value unchanged
// so downstream change detection sees a true no-op.
func AdjustLineItem(item types.LineItem, componentTypeID string, categories []types.Category, params types.AdjustmentParams) types.LineItem {
	pct := EffectivePct(item, componentTypeID, categories, params)
	if pct.IsZero() {
		return item
	}
	item.Rate = AdjustRate(item.Rate, pct)
	return item
}

// ApplyAdjustments applies percentage deltas to every in-scope line item and
// returns a new space tree. Out-of-scope components are carried over as-is.
func ApplyAdjustments(spaces []types.Space, categories []types.Category, params types.AdjustmentParams, scope types.ScopeSelection) []types.Space {
	out := make([]types.Space, len(spaces))
	for i, sp := range spaces {
		next := sp
		next.Components = make([]types.Component, len(sp.Components))
		for j, comp := range sp.Components {
			nc := comp
			if InScope(sp.ID, comp.ID, scope) {
				nc.LineItems = make([]types.LineItem, len(comp.LineItems))
				for k, item := range comp.LineItems {
					nc.LineItems[k] = AdjustLineItem(item, comp.ComponentTypeID, categories, params)
				}
			}
			next.Components[j] = nc
		}
		out[i] = next
	}
	return out
}
