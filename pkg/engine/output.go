package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// OutputJSON writes the estimate as indented JSON to stdout
func (r *EstimateResult) OutputJSON() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.Estimate)
}

// OutputCLI writes a human-readable estimate to stdout
func (r *EstimateResult) OutputCLI() error {
	fmt.Println("\n============================================================")
	fmt.Println("              QUOTATION ESTIMATE")
	fmt.Println("============================================================")

	fmt.Printf("\nEstimate ID: %s\n", r.Estimate.ID)
	fmt.Printf("Quotation:   %s\n", r.Estimate.QuotationID)
	if r.Estimate.InputHash != "" {
		fmt.Printf("Input Hash:  %s\n", r.Estimate.InputHash)
	}

	fmt.Println("\n--- BY SPACE ----------------------------------------------")
	for _, sc := range r.Estimate.BySpace {
		fmt.Printf("  %-30s  %12s %s  (%d items)\n", sc.Name, sc.Amount.StringFixed(2), r.Estimate.Currency, sc.ItemCount)
	}

	fmt.Println("\n--- BY CATEGORY -------------------------------------------")
	for _, cc := range r.Estimate.ByCategory {
		fmt.Printf("  %-30s  %12s %s  (%d items)\n", cc.Name, cc.Amount.StringFixed(2), r.Estimate.Currency, cc.ItemCount)
	}

	fmt.Println("\n--- LINE ITEMS --------------------------------------------")
	for _, item := range r.Estimate.Items {
		fmt.Printf("  [%s / %s] %s\n", item.SpaceName, item.ComponentName, item.Explanation)
	}

	if len(r.Estimate.Warnings) > 0 {
		fmt.Println("\n--- WARNINGS ----------------------------------------------")
		for _, w := range r.Estimate.Warnings {
			fmt.Printf("  ! %s\n", w)
		}
	}

	if len(r.Estimate.Assumptions) > 0 {
		fmt.Println("\n--- ASSUMPTIONS -------------------------------------------")
		for _, a := range r.Estimate.Assumptions {
			fmt.Printf("  * %s\n", a)
		}
	}

	fmt.Println("\n============================================================")
	fmt.Printf("  TOTAL: %s %s\n", r.Estimate.Total.StringFixed(2), r.Estimate.Currency)
	fmt.Println("============================================================")
	fmt.Println()

	return nil
}

// OutputJSON writes the scenario result as indented JSON to stdout
func (r *ScenarioResult) OutputJSON() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// OutputCLI writes a human-readable scenario comparison to stdout
func (r *ScenarioResult) OutputCLI() error {
	fmt.Println("\n============================================================")
	fmt.Println("              SCENARIO COMPARISON")
	fmt.Println("============================================================")

	fmt.Printf("\nOriginal (in scope):  %s\n", r.Totals.Original.StringFixed(2))
	fmt.Printf("Final (in scope):     %s\n", r.Totals.Final.StringFixed(2))

	direction := "up"
	if r.Totals.Difference.IsNegative() {
		direction = "down"
	}
	fmt.Printf("Difference:           %s (%s %s%%)\n",
		r.Totals.Difference.StringFixed(2), direction, r.Totals.PercentageChange.Abs().StringFixed(1))

	fmt.Printf("\nQuotation total:      %s -> %s\n",
		r.Before.Total.StringFixed(2), r.After.Total.StringFixed(2))

	fmt.Println()
	return nil
}
