package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quote-engine",
	Short: "Interior quotation pricing engine",
	Long:  `Prices interior-work quotations and previews material swaps and percentage adjustments`,
}

// catalogFlag overrides the configured catalog file for one invocation
var catalogFlag string

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "Path to JSON catalog file (overrides configuration)")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(replacementsCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(serverCmd) // HTTP API server
}
