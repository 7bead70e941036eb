// Package aggregation combines priced line items into space and category
// level breakdowns and collects warnings about incomplete rows.
package aggregation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/types"
)

// Aggregator combines priced items into a complete quote estimate
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate builds the estimate for a quotation from its priced line items.
// Iteration order does not affect the result; every item's contribution is
// independent and summed.
func (a *Aggregator) Aggregate(q *types.Quotation, items []types.PricedLineItem, inputHash string, assumptions []string) types.QuoteEstimate {
	currency := q.Currency
	if currency == "" {
		currency = "INR"
	}

	estimate := types.QuoteEstimate{
		ID:          uuid.New().String(),
		QuotationID: q.ID,
		InputHash:   inputHash,
		Currency:    currency,
		GeneratedAt: time.Now().UTC(),
		Items:       items,
		BySpace:     make(map[string]types.SpaceCost),
		ByCategory:  make(map[string]types.CategoryCost),
		Total:       decimal.Zero,
		Assumptions: lo.Uniq(assumptions),
	}

	for _, item := range items {
		estimate.Total = estimate.Total.Add(item.Amount)

		sc, ok := estimate.BySpace[item.SpaceID]
		if !ok {
			sc = types.SpaceCost{SpaceID: item.SpaceID, Name: item.SpaceName}
		}
		sc.Amount = sc.Amount.Add(item.Amount)
		sc.ItemCount++
		estimate.BySpace[item.SpaceID] = sc

		catKey := item.Item.CategoryID
		if catKey == "" {
			catKey = item.Item.CategoryName
		}
		cc, ok := estimate.ByCategory[catKey]
		if !ok {
			cc = types.CategoryCost{CategoryID: item.Item.CategoryID, Name: item.Item.CategoryName}
		}
		cc.Amount = cc.Amount.Add(item.Amount)
		cc.ItemCount++
		estimate.ByCategory[catKey] = cc

		if item.Incomplete {
			estimate.Warnings = append(estimate.Warnings, fmt.Sprintf(
				"%s in %s / %s is missing dimensions and priced as zero",
				item.Item.CostItemName, item.SpaceName, item.ComponentName))
		}
	}

	estimate.Warnings = lo.Uniq(estimate.Warnings)
	return estimate
}
