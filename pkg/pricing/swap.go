package pricing

import (
	"strings"

	"github.com/samber/lo"

	"github.com/craftquote/quote-engine/pkg/types"
)

// SwapTable resolves material swaps against the catalog. It is built once
// per operation from the requested old->new cost item mapping.
type SwapTable struct {
	swaps      map[string]string
	items      map[string]types.CostItem
	categories map[string]types.Category
}

// NewSwapTable indexes the catalog for swap resolution
func NewSwapTable(swaps map[string]string, items []types.CostItem, categories []types.Category) *SwapTable {
	return &SwapTable{
		swaps:      swaps,
		items:      lo.KeyBy(items, func(ci types.CostItem) string { return ci.ID }),
		categories: lo.KeyBy(categories, func(c types.Category) string { return c.ID }),
	}
}

// Apply returns the item with its cost item identity, category snapshot and
// pricing replaced by the mapped catalog item. Both the active rate and the
// default-rate snapshot reset to the replacement's list price, discarding
// any manual rate edit on the row. The second return reports whether a swap
// happened; rows without a mapping, or mappings pointing at an unknown
// catalog id, come back untouched.
func (t *SwapTable) Apply(item types.LineItem) (types.LineItem, bool) {
	replacementID, ok := t.swaps[item.CostItemID]
	if !ok {
		return item, false
	}
	replacement, ok := t.items[replacementID]
	if !ok {
		return item, false
	}

	item.CostItemID = replacement.ID
	item.CostItemName = replacement.Name
	item.CategoryID = replacement.CategoryID
	item.UnitCode = replacement.UnitCode
	item.Rate = replacement.DefaultRate
	item.DefaultRate = replacement.DefaultRate

	if cat, ok := t.categories[replacement.CategoryID]; ok {
		item.CategoryName = cat.Name
		item.CategoryColor = cat.Color
	}

	return item, true
}

// ApplySwaps replaces cost item references on every in-scope line item whose
// cost item id has a swap entry, returning a new space tree.
func ApplySwaps(spaces []types.Space, swaps map[string]string, items []types.CostItem, categories []types.Category, scope types.ScopeSelection) []types.Space {
	table := NewSwapTable(swaps, items, categories)

	out := make([]types.Space, len(spaces))
	for i, sp := range spaces {
		next := sp
		next.Components = make([]types.Component, len(sp.Components))
		for j, comp := range sp.Components {
			nc := comp
			if InScope(sp.ID, comp.ID, scope) {
				nc.LineItems = make([]types.LineItem, len(comp.LineItems))
				for k, item := range comp.LineItems {
					nc.LineItems[k], _ = table.Apply(item)
				}
			}
			next.Components[j] = nc
		}
		out[i] = next
	}
	return out
}

// Replacements lists catalog items eligible to replace the given in-use
// material: same category, same unit code, not the item itself. Matching
// unit codes guarantees a swap never changes a row's measurement kind, so
// stored dimensions keep meaning what they meant.
func Replacements(target types.CostItem, all []types.CostItem) []types.CostItem {
	return lo.Filter(all, func(ci types.CostItem, _ int) bool {
		return ci.ID != target.ID &&
			ci.CategoryID == target.CategoryID &&
			strings.EqualFold(ci.UnitCode, target.UnitCode)
	})
}
