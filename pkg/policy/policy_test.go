package policy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftquote/quote-engine/pkg/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testEstimate(total string) *types.QuoteEstimate {
	return &types.QuoteEstimate{
		ID:    "e-1",
		Total: dec(total),
		ByCategory: map[string]types.CategoryCost{
			"cat-board": {CategoryID: "cat-board", Name: "Boards", Amount: dec("300000")},
		},
		BySpace: map[string]types.SpaceCost{
			"sp-1": {SpaceID: "sp-1", Name: "Master Bedroom", Amount: dec("450000")},
		},
	}
}

func TestTotalBudgetPolicy(t *testing.T) {
	pe := New()
	pe.LoadPolicies([]Policy{
		NewTotalBudgetPolicy("total cap", dec("1500000"), dec("1200000")),
	})

	t.Run("pass", func(t *testing.T) {
		results := pe.Evaluate(testEstimate("1000000"), nil)
		require.Len(t, results, 1)
		assert.Equal(t, types.PolicyPass, results[0].Outcome)
		assert.False(t, pe.HasFailures(results))
	})

	t.Run("warn above threshold", func(t *testing.T) {
		results := pe.Evaluate(testEstimate("1300000"), nil)
		require.Len(t, results, 1)
		assert.Equal(t, types.PolicyWarn, results[0].Outcome)
		assert.False(t, pe.HasFailures(results))
	})

	t.Run("fail above cap", func(t *testing.T) {
		results := pe.Evaluate(testEstimate("1800000"), nil)
		require.Len(t, results, 1)
		assert.Equal(t, types.PolicyFail, results[0].Outcome)
		assert.Contains(t, results[0].Message, "exceeds budget")
		assert.Contains(t, results[0].Message, "20.0% over")
		assert.True(t, pe.HasFailures(results))
	})
}

func TestCategoryBudgetPolicy(t *testing.T) {
	pe := New()
	pe.LoadPolicies([]Policy{
		NewCategoryBudgetPolicy("board cap", "Boards", dec("250000"), decimal.Zero),
	})

	results := pe.Evaluate(testEstimate("1000000"), nil)
	require.Len(t, results, 1)
	assert.Equal(t, types.PolicyFail, results[0].Outcome, "boards at 300000 exceed 250000")
}

func TestCategoryBudgetPolicyUnknownCategory(t *testing.T) {
	pe := New()
	pe.LoadPolicies([]Policy{
		NewCategoryBudgetPolicy("granite cap", "Granite", dec("100"), decimal.Zero),
	})

	results := pe.Evaluate(testEstimate("1000000"), nil)
	require.Len(t, results, 1)
	assert.Equal(t, types.PolicyPass, results[0].Outcome, "absent category spends zero")
}

func TestSpaceBudgetPolicy(t *testing.T) {
	pe := New()
	pe.LoadPolicies([]Policy{
		{Name: "bedroom cap", Type: PolicyTypeSpaceBudget, Space: "Master Bedroom", MaxAmount: dec("400000")},
	})

	results := pe.Evaluate(testEstimate("1000000"), nil)
	require.Len(t, results, 1)
	assert.Equal(t, types.PolicyFail, results[0].Outcome)
}

func TestComponentCountPolicy(t *testing.T) {
	q := &types.Quotation{
		ID: "q-1",
		Spaces: []types.Space{
			{ID: "sp-1", Components: []types.Component{
				{ID: "c1", ComponentTypeID: "ct-wardrobe"},
				{ID: "c2", ComponentTypeID: "ct-wardrobe"},
			}},
			{ID: "sp-2", Components: []types.Component{
				{ID: "c3", ComponentTypeID: "ct-wardrobe"},
			}},
		},
	}

	pe := New()
	pe.LoadPolicies([]Policy{
		NewComponentCountPolicy("wardrobe limit", "ct-wardrobe", 2),
	})

	results := pe.Evaluate(testEstimate("0"), q)
	require.Len(t, results, 1)
	assert.Equal(t, types.PolicyFail, results[0].Outcome)
	assert.Contains(t, results[0].Message, "3 ct-wardrobe components")
}

func TestUnknownPolicyTypeFails(t *testing.T) {
	pe := New()
	pe.LoadPolicies([]Policy{{Name: "bad", Type: "VELOCITY_BUDGET"}})

	results := pe.Evaluate(testEstimate("0"), nil)
	require.Len(t, results, 1)
	assert.Equal(t, types.PolicyFail, results[0].Outcome)
}
