package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/craftquote/quote-engine/pkg/quote"
	"github.com/craftquote/quote-engine/pkg/types"
)

var (
	adjustFile       string
	adjustGlobal     string
	adjustCategories []string
	adjustComponents []string
	adjustSpaces     []string
	adjustScopeComps []string
)

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Apply percentage adjustments to a quotation",
	Long: `Apply a global and/or per-bucket percentage to line item rates and
print the adjusted quotation tree as JSON. Positive percentages raise rates,
negative ones discount them.

Examples:
  # 10%% markup on everything
  quote-engine adjust --file quotation.json --global 10

  # 5%% discount on a category, limited to one space
  quote-engine adjust --file quotation.json --category cat-plywood=-5 --space sp-1

  # Component-type buckets instead of category buckets
  quote-engine adjust --file quotation.json --component-type ct-wardrobe=7.5`,
	RunE: runAdjust,
}

func init() {
	adjustCmd.Flags().StringVar(&adjustFile, "file", "", "Path to quotation JSON file")
	adjustCmd.Flags().StringVar(&adjustGlobal, "global", "0", "Global percentage delta")
	adjustCmd.Flags().StringArrayVar(&adjustCategories, "category", nil, "Category percentage as category-id=pct (repeatable)")
	adjustCmd.Flags().StringArrayVar(&adjustComponents, "component-type", nil, "Component type percentage as type-id=pct (repeatable)")
	adjustCmd.Flags().StringArrayVar(&adjustSpaces, "space", nil, "Limit to space id (repeatable)")
	adjustCmd.Flags().StringArrayVar(&adjustScopeComps, "component", nil, "Limit to space-id:component-id (repeatable)")
	adjustCmd.MarkFlagRequired("file")
}

func runAdjust(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	params, err := buildAdjustmentParams(adjustGlobal, adjustCategories, adjustComponents)
	if err != nil {
		return err
	}

	scope, err := buildScope(adjustSpaces, adjustScopeComps)
	if err != nil {
		return err
	}

	q, _, err := quote.NewLoader().LoadFromFile(adjustFile)
	if err != nil {
		return fmt.Errorf("quotation loading failed: %w", err)
	}

	adjusted, err := rt.eng.Adjust(ctx, q, params, scope)
	if err != nil {
		return fmt.Errorf("adjustment failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(adjusted)
}

func buildAdjustmentParams(global string, categories, componentTypes []string) (types.AdjustmentParams, error) {
	globalPct, err := parsePercent(global)
	if err != nil {
		return types.AdjustmentParams{}, err
	}

	if len(categories) > 0 && len(componentTypes) > 0 {
		return types.AdjustmentParams{}, fmt.Errorf("--category and --component-type are mutually exclusive")
	}

	params := types.AdjustmentParams{Mode: types.AdjustByCategory, GlobalPct: globalPct}

	if len(componentTypes) > 0 {
		params.Mode = types.AdjustByComponent
		params.ComponentPct, err = parsePercentMap(componentTypes)
		return params, err
	}

	params.CategoryPct, err = parsePercentMap(categories)
	return params, err
}
