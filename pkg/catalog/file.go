package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/craftquote/quote-engine/pkg/types"
)

// catalogFile is the on-disk JSON shape used for offline catalogs
type catalogFile struct {
	CostItems      []types.CostItem      `json:"cost_items"`
	Categories     []types.Category      `json:"categories"`
	ComponentTypes []types.ComponentType `json:"component_types"`
}

// LoadFile reads a JSON catalog file into an in-memory provider. Used by the
// CLI when no database is configured.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var cf catalogFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	return NewMemory(cf.CostItems, cf.Categories, cf.ComponentTypes), nil
}
