// Package catalog supplies the read-only reference data the pricing engine
// consumes: cost items, categories and component types.
package catalog

import (
	"context"
	"errors"

	"github.com/craftquote/quote-engine/pkg/types"
)

// ErrNotFound is returned when a catalog id does not exist
var ErrNotFound = errors.New("catalog: not found")

// Provider is the read-only catalog surface. The engine never mutates the
// catalog, so implementations are safe to share across concurrent scenario
// previews.
type Provider interface {
	CostItems(ctx context.Context) ([]types.CostItem, error)
	CostItem(ctx context.Context, id string) (types.CostItem, error)
	Categories(ctx context.Context) ([]types.Category, error)
	ComponentTypes(ctx context.Context) ([]types.ComponentType, error)

	// Replacements lists items eligible to replace the given cost item:
	// same category, same unit code, different id.
	Replacements(ctx context.Context, costItemID string) ([]types.CostItem, error)
}
