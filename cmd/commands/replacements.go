package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var replacementsCmd = &cobra.Command{
	Use:   "replacements <cost-item-id>",
	Short: "List compatible swap targets for a cost item",
	Long: `List catalog items that can replace the given cost item: same
category, same unit of measure.

Example:
  quote-engine replacements ci-ply-19`,
	Args: cobra.ExactArgs(1),
	RunE: runReplacements,
}

func runReplacements(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	items, err := rt.eng.Replacements(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to list replacements: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No compatible replacements found")
		return nil
	}

	fmt.Printf("%-20s %-32s %-10s %s\n", "ID", "NAME", "UNIT", "RATE")
	for _, item := range items {
		fmt.Printf("%-20s %-32s %-10s %s\n", item.ID, item.Name, item.UnitCode, item.DefaultRate.StringFixed(2))
	}
	return nil
}
