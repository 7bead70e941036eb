package engine

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftquote/quote-engine/pkg/catalog"
	"github.com/craftquote/quote-engine/pkg/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProvider() *catalog.Memory {
	return catalog.NewMemory(
		[]types.CostItem{
			{ID: "ci-ply-19", Name: "19mm Plywood", CategoryID: "cat-board", UnitCode: "sqft", DefaultRate: dec("145")},
			{ID: "ci-mdf-18", Name: "18mm MDF", CategoryID: "cat-board", UnitCode: "sqft", DefaultRate: dec("95")},
			{ID: "ci-hinge", Name: "Soft close hinge", CategoryID: "cat-hardware", UnitCode: "nos", DefaultRate: dec("240")},
		},
		[]types.Category{
			{ID: "cat-board", Name: "Boards"},
			{ID: "cat-hardware", Name: "Hardware"},
		},
		[]types.ComponentType{
			{ID: "ct-wardrobe", Name: "Wardrobe"},
		},
	)
}

// testQuotation builds a two-space project:
//
//	sp-1 / comp-1 (wardrobe): 10x4 ft of plywood @150, 4 hinges @240
//	sp-2 / comp-2 (wardrobe): 5x4 ft of plywood @145
func testQuotation() *types.Quotation {
	return &types.Quotation{
		ID:       "q-1",
		Name:     "3BHK Flat",
		Currency: "INR",
		Spaces: []types.Space{
			{
				ID:   "sp-1",
				Name: "Master Bedroom",
				Components: []types.Component{
					{
						ID:              "comp-1",
						Name:            "Wardrobe",
						ComponentTypeID: "ct-wardrobe",
						LineItems: []types.LineItem{
							{
								ID: "li-1", CostItemID: "ci-ply-19", CostItemName: "19mm Plywood",
								CategoryID: "cat-board", CategoryName: "Boards",
								UnitCode: "sqft", Rate: dec("150"), DefaultRate: dec("145"),
								Length: lo.ToPtr(10.0), Width: lo.ToPtr(4.0), MeasurementUnit: "ft",
							},
							{
								ID: "li-2", CostItemID: "ci-hinge", CostItemName: "Soft close hinge",
								CategoryID: "cat-hardware", CategoryName: "Hardware",
								UnitCode: "nos", Rate: dec("240"), DefaultRate: dec("240"),
								Quantity: lo.ToPtr(4.0),
							},
						},
					},
				},
			},
			{
				ID:   "sp-2",
				Name: "Kids Bedroom",
				Components: []types.Component{
					{
						ID:              "comp-2",
						Name:            "Wardrobe",
						ComponentTypeID: "ct-wardrobe",
						LineItems: []types.LineItem{
							{
								ID: "li-3", CostItemID: "ci-ply-19", CostItemName: "19mm Plywood",
								CategoryID: "cat-board", CategoryName: "Boards",
								UnitCode: "sqft", Rate: dec("145"), DefaultRate: dec("145"),
								Length: lo.ToPtr(5.0), Width: lo.ToPtr(4.0), MeasurementUnit: "ft",
							},
						},
					},
				},
			},
		},
	}
}

func TestEstimate(t *testing.T) {
	eng := New(testProvider(), "ft")

	result, err := eng.Estimate(context.Background(), testQuotation(), "sha256:abc")
	require.NoError(t, err)

	est := result.Estimate
	// 40 sqft * 150 + 4 * 240 + 20 sqft * 145 = 6000 + 960 + 2900
	assert.True(t, dec("9860").Equal(est.Total), "got %s", est.Total)
	assert.Equal(t, "INR", est.Currency)
	assert.Equal(t, "sha256:abc", est.InputHash)
	assert.Len(t, est.Items, 3)

	assert.True(t, dec("6960").Equal(est.BySpace["sp-1"].Amount))
	assert.True(t, dec("2900").Equal(est.BySpace["sp-2"].Amount))
	assert.True(t, dec("8900").Equal(est.ByCategory["cat-board"].Amount))
	assert.True(t, dec("960").Equal(est.ByCategory["cat-hardware"].Amount))
}

func TestEstimateDeterministic(t *testing.T) {
	eng := New(testProvider(), "ft")
	ctx := context.Background()

	first, err := eng.Estimate(ctx, testQuotation(), "sha256:abc")
	require.NoError(t, err)
	second, err := eng.Estimate(ctx, testQuotation(), "sha256:abc")
	require.NoError(t, err)

	assert.True(t, first.Estimate.Total.Equal(second.Estimate.Total))
	assert.Equal(t, len(first.Estimate.Warnings), len(second.Estimate.Warnings))
}

func TestEstimateIncompleteRowWarns(t *testing.T) {
	q := testQuotation()
	q.Spaces[0].Components[0].LineItems[0].Width = nil

	eng := New(testProvider(), "ft")
	result, err := eng.Estimate(context.Background(), q, "")
	require.NoError(t, err)

	// Plywood in sp-1 now contributes zero
	assert.True(t, dec("3860").Equal(result.Estimate.Total), "got %s", result.Estimate.Total)
	require.Len(t, result.Estimate.Warnings, 1)
	assert.Contains(t, result.Estimate.Warnings[0], "19mm Plywood")
}

func TestAdjustDoesNotMutateInput(t *testing.T) {
	eng := New(testProvider(), "ft")
	q := testQuotation()

	params := types.AdjustmentParams{Mode: types.AdjustByCategory, GlobalPct: dec("10")}
	adjusted, err := eng.Adjust(context.Background(), q, params, types.ScopeAll())
	require.NoError(t, err)

	assert.True(t, dec("165").Equal(adjusted.Spaces[0].Components[0].LineItems[0].Rate))
	assert.True(t, dec("150").Equal(q.Spaces[0].Components[0].LineItems[0].Rate), "input snapshot untouched")
}

func TestSwapResetsRateToCatalog(t *testing.T) {
	eng := New(testProvider(), "ft")

	swapped, err := eng.Swap(context.Background(), testQuotation(),
		map[string]string{"ci-ply-19": "ci-mdf-18"}, types.ScopeAll())
	require.NoError(t, err)

	item := swapped.Spaces[0].Components[0].LineItems[0]
	assert.Equal(t, "ci-mdf-18", item.CostItemID)
	assert.True(t, dec("95").Equal(item.Rate), "manual 150 rate discarded for catalog price")
	assert.True(t, dec("95").Equal(item.DefaultRate))
}

func TestRunScenarioSwapThenAdjust(t *testing.T) {
	eng := New(testProvider(), "ft")

	// Swap plywood to MDF, then discount boards 10%. The discount must apply
	// to the post-swap rate, not the original one.
	params := types.AdjustmentParams{
		Mode:        types.AdjustByCategory,
		CategoryPct: map[string]decimal.Decimal{"cat-board": dec("-10")},
	}

	result, err := eng.RunScenario(context.Background(), testQuotation(),
		map[string]string{"ci-ply-19": "ci-mdf-18"}, params, types.ScopeAll())
	require.NoError(t, err)

	// Original: 6000 + 960 + 2900 = 9860
	// Swapped: 40*95 + 960 + 20*95 = 3800 + 960 + 1900 = 6660
	// Adjusted: 40*85.50 + 960 + 20*85.50 = 3420 + 960 + 1710 = 6090
	assert.True(t, dec("9860").Equal(result.Totals.Original), "got %s", result.Totals.Original)
	assert.True(t, dec("6090").Equal(result.Totals.Final), "got %s", result.Totals.Final)
	assert.True(t, dec("-3770").Equal(result.Totals.Difference))
	assert.True(t, result.Totals.PercentageChange.IsNegative())

	assert.True(t, dec("9860").Equal(result.Before.Total))
	assert.True(t, dec("6090").Equal(result.After.Total))
}

func TestRunScenarioUsesPostSwapCategoryBucket(t *testing.T) {
	provider := catalog.NewMemory(
		[]types.CostItem{
			{ID: "ci-board", Name: "Board", CategoryID: "cat-board", UnitCode: "nos", DefaultRate: dec("100")},
			{ID: "ci-laminate", Name: "Laminate", CategoryID: "cat-finish", UnitCode: "nos", DefaultRate: dec("100")},
		},
		[]types.Category{
			{ID: "cat-board", Name: "Boards"},
			{ID: "cat-finish", Name: "Finishes"},
		},
		nil,
	)
	eng := New(provider, "ft")

	q := &types.Quotation{
		ID: "q-1",
		Spaces: []types.Space{
			{ID: "sp-1", Components: []types.Component{
				{ID: "comp-1", LineItems: []types.LineItem{
					{ID: "li-1", CostItemID: "ci-board", CategoryID: "cat-board", UnitCode: "nos", Rate: dec("100"), Quantity: lo.ToPtr(1.0)},
				}},
			}},
		},
	}

	// Only the replacement's category carries a bucket. The adjustment must
	// see the post-swap category, so the discount applies.
	params := types.AdjustmentParams{
		Mode:        types.AdjustByCategory,
		CategoryPct: map[string]decimal.Decimal{"cat-finish": dec("-20")},
	}

	result, err := eng.RunScenario(context.Background(), q,
		map[string]string{"ci-board": "ci-laminate"}, params, types.ScopeAll())
	require.NoError(t, err)

	assert.True(t, dec("80").Equal(result.Totals.Final), "got %s", result.Totals.Final)
	item := result.Quotation.Spaces[0].Components[0].LineItems[0]
	assert.Equal(t, "cat-finish", item.CategoryID)
	assert.Equal(t, "Finishes", item.CategoryName)
}

func TestRunScenarioScopedTotals(t *testing.T) {
	eng := New(testProvider(), "ft")

	params := types.AdjustmentParams{Mode: types.AdjustByCategory, GlobalPct: dec("10")}
	scope := types.ScopeSelection{Mode: types.ScopeModeSpaces, SpaceIDs: []string{"sp-2"}}

	result, err := eng.RunScenario(context.Background(), testQuotation(), nil, params, scope)
	require.NoError(t, err)

	// Totals cover in-scope items only: sp-2 is 2900 -> 3190
	assert.True(t, dec("2900").Equal(result.Totals.Original), "got %s", result.Totals.Original)
	assert.True(t, dec("3190").Equal(result.Totals.Final), "got %s", result.Totals.Final)

	// Full-quotation estimates still include the untouched space
	assert.True(t, dec("9860").Equal(result.Before.Total))
	assert.True(t, dec("10150").Equal(result.After.Total))

	// sp-1 rows are untouched in the composed tree
	assert.True(t, dec("150").Equal(result.Quotation.Spaces[0].Components[0].LineItems[0].Rate))
}

func TestRunScenarioZeroOriginal(t *testing.T) {
	eng := New(testProvider(), "ft")

	q := &types.Quotation{
		ID: "q-empty",
		Spaces: []types.Space{
			{ID: "sp-1", Components: []types.Component{
				{ID: "comp-1", LineItems: []types.LineItem{
					{ID: "li-1", CostItemID: "ci-hinge", UnitCode: "nos", Rate: dec("240")}, // no quantity
				}},
			}},
		},
	}

	params := types.AdjustmentParams{Mode: types.AdjustByCategory, GlobalPct: dec("10")}
	result, err := eng.RunScenario(context.Background(), q, nil, params, types.ScopeAll())
	require.NoError(t, err)

	assert.True(t, result.Totals.Original.IsZero())
	assert.True(t, result.Totals.PercentageChange.IsZero(), "percentage change pinned to zero for empty baseline")
}

func TestReplacements(t *testing.T) {
	eng := New(testProvider(), "ft")

	items, err := eng.Replacements(context.Background(), "ci-ply-19")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ci-mdf-18", items[0].ID)
}
