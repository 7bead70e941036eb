package quote

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftquote/quote-engine/pkg/types"
)

const sampleQuotation = `{
	"id": "q-1",
	"name": "3BHK Flat",
	"currency": "INR",
	"spaces": [
		{
			"id": "sp-1",
			"name": "Master Bedroom",
			"components": [
				{
					"id": "comp-1",
					"name": "Wardrobe",
					"component_type_id": "ct-wardrobe",
					"line_items": [
						{
							"id": "li-1",
							"cost_item_id": "ci-ply-19",
							"unit_code": "sqft",
							"rate": "145",
							"length": 10,
							"width": 4
						}
					]
				}
			]
		}
	]
}`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotation.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleQuotation), 0644))

	loader := NewLoader()
	q, hash, err := loader.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "q-1", q.ID)
	assert.Len(t, q.Spaces, 1)
	assert.Len(t, hash, 64, "sha256 hex digest")

	// Same bytes, same hash
	_, hash2, err := loader.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, hash, hash2)
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	_, err := NewLoader().Parse([]byte("{not json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *types.Quotation {
		return &types.Quotation{
			ID: "q-1",
			Spaces: []types.Space{
				{ID: "sp-1", Components: []types.Component{
					{ID: "comp-1", LineItems: []types.LineItem{
						{ID: "li-1", CostItemID: "ci-1"},
					}},
				}},
			},
		}
	}

	assert.NoError(t, Validate(base()))

	tests := []struct {
		name   string
		mutate func(q *types.Quotation)
		errMsg string
	}{
		{"missing quotation id", func(q *types.Quotation) { q.ID = "" }, "quotation id is required"},
		{"missing space id", func(q *types.Quotation) { q.Spaces[0].ID = "" }, "space without id"},
		{"duplicate space id", func(q *types.Quotation) { q.Spaces = append(q.Spaces, types.Space{ID: "sp-1"}) }, "duplicate space id"},
		{"missing component id", func(q *types.Quotation) { q.Spaces[0].Components[0].ID = "" }, "component without id"},
		{"duplicate component id", func(q *types.Quotation) {
			q.Spaces[0].Components = append(q.Spaces[0].Components, types.Component{ID: "comp-1"})
		}, "duplicate component id"},
		{"missing line item id", func(q *types.Quotation) { q.Spaces[0].Components[0].LineItems[0].ID = "" }, "line item without id"},
		{"missing cost item reference", func(q *types.Quotation) { q.Spaces[0].Components[0].LineItems[0].CostItemID = "" }, "no cost item reference"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := base()
			tc.mutate(q)
			err := Validate(q)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestValidateDuplicateComponentIDAcrossSpacesAllowed(t *testing.T) {
	q := &types.Quotation{
		ID: "q-1",
		Spaces: []types.Space{
			{ID: "sp-1", Components: []types.Component{{ID: "comp-1"}}},
			{ID: "sp-2", Components: []types.Component{{ID: "comp-1"}}},
		},
	}
	assert.NoError(t, Validate(q), "component ids are unique per space, not globally")
}
