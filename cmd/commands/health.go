package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check catalog connectivity",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.db != nil {
		if err := rt.db.Ping(ctx); err != nil {
			return fmt.Errorf("database unreachable: %w", err)
		}
	}

	items, err := rt.provider.CostItems(ctx)
	if err != nil {
		return fmt.Errorf("catalog unreachable: %w", err)
	}

	fmt.Printf("OK: catalog has %d cost items\n", len(items))
	return nil
}
