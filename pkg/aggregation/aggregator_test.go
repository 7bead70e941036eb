package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftquote/quote-engine/pkg/types"
)

func priced(spaceID, catID, catName, amount string, incomplete bool) types.PricedLineItem {
	return types.PricedLineItem{
		SpaceID:   spaceID,
		SpaceName: "Space " + spaceID,
		Item: types.LineItem{
			CostItemName: "item",
			CategoryID:   catID,
			CategoryName: catName,
		},
		Amount:     decimal.RequireFromString(amount),
		Incomplete: incomplete,
	}
}

func TestAggregate(t *testing.T) {
	q := &types.Quotation{ID: "q-1", Currency: "USD"}
	items := []types.PricedLineItem{
		priced("sp-1", "cat-a", "Boards", "100", false),
		priced("sp-1", "cat-b", "Hardware", "50", false),
		priced("sp-2", "cat-a", "Boards", "25", false),
	}

	est := NewAggregator().Aggregate(q, items, "sha256:x", []string{"assumed ft", "assumed ft"})

	assert.NotEmpty(t, est.ID)
	assert.Equal(t, "q-1", est.QuotationID)
	assert.Equal(t, "USD", est.Currency)
	assert.True(t, decimal.RequireFromString("175").Equal(est.Total))

	assert.True(t, decimal.RequireFromString("150").Equal(est.BySpace["sp-1"].Amount))
	assert.Equal(t, 2, est.BySpace["sp-1"].ItemCount)
	assert.True(t, decimal.RequireFromString("25").Equal(est.BySpace["sp-2"].Amount))

	assert.True(t, decimal.RequireFromString("125").Equal(est.ByCategory["cat-a"].Amount))
	assert.Equal(t, "Boards", est.ByCategory["cat-a"].Name)

	assert.Equal(t, []string{"assumed ft"}, est.Assumptions, "assumptions deduplicated")
}

func TestAggregateCurrencyDefault(t *testing.T) {
	est := NewAggregator().Aggregate(&types.Quotation{ID: "q-1"}, nil, "", nil)
	assert.Equal(t, "INR", est.Currency)
	assert.True(t, est.Total.IsZero())
}

func TestAggregateCategoryNameFallback(t *testing.T) {
	// Legacy rows without a category id bucket by the name snapshot
	items := []types.PricedLineItem{
		priced("sp-1", "", "Boards", "100", false),
		priced("sp-1", "", "Boards", "40", false),
	}

	est := NewAggregator().Aggregate(&types.Quotation{ID: "q-1"}, items, "", nil)

	require.Contains(t, est.ByCategory, "Boards")
	assert.True(t, decimal.RequireFromString("140").Equal(est.ByCategory["Boards"].Amount))
}

func TestAggregateWarnsOnIncompleteRows(t *testing.T) {
	items := []types.PricedLineItem{
		priced("sp-1", "cat-a", "Boards", "0", true),
		priced("sp-1", "cat-a", "Boards", "100", false),
	}

	est := NewAggregator().Aggregate(&types.Quotation{ID: "q-1"}, items, "", nil)

	require.Len(t, est.Warnings, 1)
	assert.Contains(t, est.Warnings[0], "missing dimensions")
}
