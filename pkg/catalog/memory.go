package catalog

import (
	"context"

	"github.com/craftquote/quote-engine/pkg/pricing"
	"github.com/craftquote/quote-engine/pkg/types"
)

// Memory is an in-process catalog, used by tests and as the backing store
// for file-based catalogs.
type Memory struct {
	items          []types.CostItem
	categories     []types.Category
	componentTypes []types.ComponentType
}

func NewMemory(items []types.CostItem, categories []types.Category, componentTypes []types.ComponentType) *Memory {
	return &Memory{
		items:          items,
		categories:     categories,
		componentTypes: componentTypes,
	}
}

func (m *Memory) CostItems(_ context.Context) ([]types.CostItem, error) {
	return m.items, nil
}

func (m *Memory) CostItem(_ context.Context, id string) (types.CostItem, error) {
	for _, ci := range m.items {
		if ci.ID == id {
			return ci, nil
		}
	}
	return types.CostItem{}, ErrNotFound
}

func (m *Memory) Categories(_ context.Context) ([]types.Category, error) {
	return m.categories, nil
}

func (m *Memory) ComponentTypes(_ context.Context) ([]types.ComponentType, error) {
	return m.componentTypes, nil
}

func (m *Memory) Replacements(ctx context.Context, costItemID string) ([]types.CostItem, error) {
	target, err := m.CostItem(ctx, costItemID)
	if err != nil {
		return nil, err
	}
	return pricing.Replacements(target, m.items), nil
}
