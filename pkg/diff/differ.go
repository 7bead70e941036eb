// Package diff compares two quote estimates line item by line item.
package diff

import (
	"github.com/shopspring/decimal"

	"github.com/craftquote/quote-engine/pkg/types"
)

// ChangeType classifies one line item difference
type ChangeType string

const (
	ChangeAdded     ChangeType = "ADDED"
	ChangeRemoved   ChangeType = "REMOVED"
	ChangeModified  ChangeType = "MODIFIED"
	ChangeUnchanged ChangeType = "UNCHANGED"
)

// LineItemDiff is one row of the comparison, keyed by
// spaceID:componentID:lineItemID.
type LineItemDiff struct {
	Key        string                `json:"key"`
	ChangeType ChangeType            `json:"change_type"`
	Before     *types.PricedLineItem `json:"before,omitempty"`
	After      *types.PricedLineItem `json:"after,omitempty"`
	Delta      decimal.Decimal       `json:"delta"`
}

// CategoryDelta compares one category's totals across the two estimates
type CategoryDelta struct {
	Name          string          `json:"name"`
	BeforeAmount  decimal.Decimal `json:"before_amount"`
	AfterAmount   decimal.Decimal `json:"after_amount"`
	Delta         decimal.Decimal `json:"delta"`
	PercentChange decimal.Decimal `json:"percent_change"`
}

// DetailedDiff is the full comparison between two estimates
type DetailedDiff struct {
	BeforeID       string                   `json:"before_id"`
	AfterID        string                   `json:"after_id"`
	BeforeTotal    decimal.Decimal          `json:"before_total"`
	AfterTotal     decimal.Decimal          `json:"after_total"`
	TotalDelta     decimal.Decimal          `json:"total_delta"`
	PercentChange  decimal.Decimal          `json:"percent_change"`
	Items          []LineItemDiff           `json:"items"`
	CategoryDeltas map[string]CategoryDelta `json:"category_deltas"`
}

// Differ calculates detailed differences between two estimates
type Differ struct{}

func New() *Differ {
	return &Differ{}
}

var hundred = decimal.NewFromInt(100)

// Diff generates the comparison. Percent change is defined as zero when the
// before total is zero.
func (d *Differ) Diff(before, after *types.QuoteEstimate) *DetailedDiff {
	out := &DetailedDiff{
		BeforeID:    before.ID,
		AfterID:     after.ID,
		BeforeTotal: before.Total,
		AfterTotal:  after.Total,
		TotalDelta:  after.Total.Sub(before.Total),
	}
	if before.Total.IsPositive() {
		out.PercentChange = out.TotalDelta.Div(before.Total).Mul(hundred)
	} else {
		out.PercentChange = decimal.Zero
	}

	out.Items = d.diffItems(before.Items, after.Items)
	out.CategoryDeltas = d.categoryDeltas(before.ByCategory, after.ByCategory)
	return out
}

func (d *Differ) diffItems(before, after []types.PricedLineItem) []LineItemDiff {
	beforeMap := buildItemMap(before)
	afterMap := buildItemMap(after)

	// Walk the after estimate in order, then pick up removals.
	seen := make(map[string]bool)
	var diffs []LineItemDiff

	for i := range after {
		key := itemKey(after[i])
		seen[key] = true

		afterItem := afterMap[key]
		beforeItem, existed := beforeMap[key]

		var row LineItemDiff
		row.Key = key
		row.After = afterItem

		if !existed {
			row.ChangeType = ChangeAdded
			row.Delta = afterItem.Amount
		} else {
			row.Before = beforeItem
			row.Delta = afterItem.Amount.Sub(beforeItem.Amount)
			if row.Delta.IsZero() && beforeItem.Item.CostItemID == afterItem.Item.CostItemID {
				row.ChangeType = ChangeUnchanged
			} else {
				row.ChangeType = ChangeModified
			}
		}
		diffs = append(diffs, row)
	}

	for i := range before {
		key := itemKey(before[i])
		if seen[key] {
			continue
		}
		beforeItem := beforeMap[key]
		diffs = append(diffs, LineItemDiff{
			Key:        key,
			ChangeType: ChangeRemoved,
			Before:     beforeItem,
			Delta:      beforeItem.Amount.Neg(),
		})
	}

	return diffs
}

func (d *Differ) categoryDeltas(before, after map[string]types.CategoryCost) map[string]CategoryDelta {
	deltas := make(map[string]CategoryDelta)

	keys := make(map[string]bool)
	for k := range before {
		keys[k] = true
	}
	for k := range after {
		keys[k] = true
	}

	for key := range keys {
		b := before[key]
		a := after[key]
		name := a.Name
		if name == "" {
			name = b.Name
		}

		delta := a.Amount.Sub(b.Amount)
		pct := decimal.Zero
		if b.Amount.IsPositive() {
			pct = delta.Div(b.Amount).Mul(hundred)
		}

		deltas[key] = CategoryDelta{
			Name:          name,
			BeforeAmount:  b.Amount,
			AfterAmount:   a.Amount,
			Delta:         delta,
			PercentChange: pct,
		}
	}

	return deltas
}

func itemKey(item types.PricedLineItem) string {
	return item.SpaceID + ":" + item.ComponentID + ":" + item.Item.ID
}

func buildItemMap(items []types.PricedLineItem) map[string]*types.PricedLineItem {
	m := make(map[string]*types.PricedLineItem, len(items))
	for i := range items {
		m[itemKey(items[i])] = &items[i]
	}
	return m
}
