package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/craftquote/quote-engine/pkg/quote"
)

var (
	swapFile       string
	swapPairs      []string
	swapSpaces     []string
	swapScopeComps []string
)

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Swap materials across a quotation",
	Long: `Replace cost item references on in-scope line items with a compatible
catalog item and print the swapped quotation tree as JSON. Replacements must
share the original item's category and unit; swapped rows pick up the
replacement's catalog rate.

Examples:
  # Swap MDF for plywood everywhere
  quote-engine swap --file quotation.json --swap ci-mdf-18=ci-ply-18

  # Limit the swap to one component
  quote-engine swap --file quotation.json --swap ci-mdf-18=ci-ply-18 --component sp-1:comp-2`,
	RunE: runSwap,
}

func init() {
	swapCmd.Flags().StringVar(&swapFile, "file", "", "Path to quotation JSON file")
	swapCmd.Flags().StringArrayVar(&swapPairs, "swap", nil, "Swap as old-item-id=new-item-id (repeatable)")
	swapCmd.Flags().StringArrayVar(&swapSpaces, "space", nil, "Limit to space id (repeatable)")
	swapCmd.Flags().StringArrayVar(&swapScopeComps, "component", nil, "Limit to space-id:component-id (repeatable)")
	swapCmd.MarkFlagRequired("file")
	swapCmd.MarkFlagRequired("swap")
}

func runSwap(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	swaps, err := parseSwaps(swapPairs)
	if err != nil {
		return err
	}

	scope, err := buildScope(swapSpaces, swapScopeComps)
	if err != nil {
		return err
	}

	q, _, err := quote.NewLoader().LoadFromFile(swapFile)
	if err != nil {
		return fmt.Errorf("quotation loading failed: %w", err)
	}

	swapped, err := rt.eng.Swap(ctx, q, swaps, scope)
	if err != nil {
		return fmt.Errorf("swap failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(swapped)
}
