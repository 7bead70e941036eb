package pricing

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/craftquote/quote-engine/pkg/types"
)

var testCategories = []types.Category{
	{ID: "cat-plywood", Name: "Plywood"},
	{ID: "cat-hardware", Name: "Hardware"},
}

func TestAdjustRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		pct      string
		expected string
	}{
		{"markup", "100", "10", "110"},
		{"seven percent", "999", "7", "1068.93"},
		{"discount", "100", "-10", "90"},
		{"fractional result rounds to 2 decimals", "33.33", "5", "35"},
		{"exact half rounds away from zero", "0.10", "5", "0.11"},     // 0.105
		{"negative half rounds away from zero", "-0.10", "5", "-0.11"}, // -0.105
		{"beyond -100 goes negative unclamped", "100", "-150", "-50"},
		{"zero rate stays zero", "0", "25", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AdjustRate(decimal.RequireFromString(tc.rate), decimal.RequireFromString(tc.pct))
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got),
				"expected %s, got %s", tc.expected, got)
		})
	}
}

func TestAdjustRateExactArithmetic(t *testing.T) {
	// 1.27 * 112.5 / 100 = 1.42875, no float drift allowed
	got := AdjustRate(decimal.RequireFromString("1.27"), decimal.RequireFromString("12.5"))
	assert.True(t, decimal.RequireFromString("1.43").Equal(got), "got %s", got)
}

func TestEffectivePctCategoryMode(t *testing.T) {
	params := types.AdjustmentParams{
		Mode:      types.AdjustByCategory,
		GlobalPct: decimal.RequireFromString("5"),
		CategoryPct: map[string]decimal.Decimal{
			"cat-plywood": decimal.RequireFromString("-3"),
		},
	}

	withID := types.LineItem{CategoryID: "cat-plywood"}
	assert.True(t, decimal.RequireFromString("2").Equal(EffectivePct(withID, "", testCategories, params)))

	// Legacy rows without the id resolve through the category name snapshot
	nameOnly := types.LineItem{CategoryName: "Plywood"}
	assert.True(t, decimal.RequireFromString("2").Equal(EffectivePct(nameOnly, "", testCategories, params)))

	// The canonical id wins over a stale name snapshot
	renamed := types.LineItem{CategoryID: "cat-hardware", CategoryName: "Plywood"}
	assert.True(t, decimal.RequireFromString("5").Equal(EffectivePct(renamed, "", testCategories, params)))

	unmatched := types.LineItem{CategoryName: "Granite"}
	assert.True(t, decimal.RequireFromString("5").Equal(EffectivePct(unmatched, "", testCategories, params)),
		"no bucket means global only")
}

func TestEffectivePctComponentMode(t *testing.T) {
	params := types.AdjustmentParams{
		Mode:      types.AdjustByComponent,
		GlobalPct: decimal.Zero,
		ComponentPct: map[string]decimal.Decimal{
			"ct-wardrobe": decimal.RequireFromString("7.5"),
		},
		CategoryPct: map[string]decimal.Decimal{
			"cat-plywood": decimal.RequireFromString("99"), // ignored in component mode
		},
	}

	item := types.LineItem{CategoryID: "cat-plywood"}
	assert.True(t, decimal.RequireFromString("7.5").Equal(EffectivePct(item, "ct-wardrobe", testCategories, params)))
	assert.True(t, EffectivePct(item, "ct-kitchen", testCategories, params).IsZero())
}

func TestAdjustLineItemZeroPctIsIdentity(t *testing.T) {
	item := types.LineItem{
		ID:         "li-1",
		CategoryID: "cat-plywood",
		Rate:       decimal.RequireFromString("123.456"), // would round if touched
	}

	got := AdjustLineItem(item, "", testCategories, types.AdjustmentParams{Mode: types.AdjustByCategory})
	assert.Equal(t, item, got, "zero effective percentage must not re-round the rate")
}

func TestApplyAdjustmentsScoped(t *testing.T) {
	spaces := []types.Space{
		{
			ID: "sp-1",
			Components: []types.Component{
				{ID: "comp-1", ComponentTypeID: "ct-wardrobe", LineItems: []types.LineItem{
					{ID: "li-1", CategoryID: "cat-plywood", UnitCode: "nos", Rate: decimal.RequireFromString("100"), Quantity: lo.ToPtr(1.0)},
				}},
			},
		},
		{
			ID: "sp-2",
			Components: []types.Component{
				{ID: "comp-2", ComponentTypeID: "ct-wardrobe", LineItems: []types.LineItem{
					{ID: "li-2", CategoryID: "cat-plywood", UnitCode: "nos", Rate: decimal.RequireFromString("100"), Quantity: lo.ToPtr(1.0)},
				}},
			},
		},
	}

	params := types.AdjustmentParams{
		Mode:      types.AdjustByCategory,
		GlobalPct: decimal.RequireFromString("10"),
	}
	scope := types.ScopeSelection{Mode: types.ScopeModeSpaces, SpaceIDs: []string{"sp-1"}}

	out := ApplyAdjustments(spaces, testCategories, params, scope)

	assert.True(t, decimal.RequireFromString("110").Equal(out[0].Components[0].LineItems[0].Rate))
	assert.True(t, decimal.RequireFromString("100").Equal(out[1].Components[0].LineItems[0].Rate),
		"out-of-scope space untouched")

	// Input tree is never mutated
	assert.True(t, decimal.RequireFromString("100").Equal(spaces[0].Components[0].LineItems[0].Rate))
}
